// Package dice implements troller.v1.DiceService.
package dice

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/louisbranch/troller/internal/dice"
	apperrors "github.com/louisbranch/troller/internal/platform/errors"
	"github.com/louisbranch/troller/internal/random"
	rollerv1 "github.com/louisbranch/troller/internal/services/roller/api/grpc/rollerv1"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service exposes dice rolling over gRPC.
type Service struct {
	rollerv1.UnimplementedDiceServiceServer
	engine      dice.Engine
	allowReplay bool
	seedFunc    func() (int64, error)
}

// NewService creates a dice service. Client seeds are honored only when
// allowReplay is set.
func NewService(engine dice.Engine, allowReplay bool) *Service {
	return &Service{
		engine:      engine,
		allowReplay: allowReplay,
		seedFunc:    random.NewSeed,
	}
}

// Roll evaluates a dice string with a resolved seed.
func (s *Service) Roll(ctx context.Context, in *rollerv1.RollRequest) (*rollerv1.RollResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "roll request is required")
	}
	if s == nil {
		return nil, status.Error(codes.Internal, "dice service is not configured")
	}
	// Offsets in syntax errors refer to the caller's text, so it is parsed as sent.
	text := in.Dice
	if strings.TrimSpace(text) == "" {
		return nil, status.Error(codes.InvalidArgument, "dice is required")
	}

	rngReq, err := rngRequestFromProto(in.Rng)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	seed, source, mode, err := random.ResolveSeed(rngReq, s.seedFunc, s.allowClientSeed)
	if err != nil {
		if errors.Is(err, random.ErrSeedOutOfRange()) {
			return nil, apperrors.Status(apperrors.Wrap(apperrors.CodeSeedOutOfRange, err))
		}
		return nil, status.Errorf(codes.Internal, "resolve seed: %v", err)
	}

	resp, err := s.engine.Roll(ctx, dice.Request{Text: text, Roller: random.NewRoller(seed)})
	if err != nil {
		return nil, s.diceError(text, err)
	}

	out := &rollerv1.RollResponse{
		Results:    make([]rollerv1.RollResult, 0, len(resp.Results)),
		Normalized: resp.Normalized,
		Rng:        rngResponseToProto(random.Response(seed, source, mode)),
	}
	for _, result := range resp.Results {
		out.Results = append(out.Results, rollerv1.RollResult{
			Name:  result.Name,
			Value: result.Value,
			Total: result.Total,
		})
	}
	return out, nil
}

func (s *Service) allowClientSeed(mode random.RollMode) bool {
	return s.allowReplay && mode != random.RollModeLive
}

func rngRequestFromProto(in *rollerv1.RngRequest) (*random.RngRequest, error) {
	if in == nil {
		return nil, nil
	}
	mode, err := random.ParseRollMode(in.RollMode)
	if err != nil {
		return nil, err
	}
	req := &random.RngRequest{RollMode: mode}
	if seedText := strings.TrimSpace(in.Seed); seedText != "" {
		seed, err := strconv.ParseUint(seedText, 10, 64)
		if err != nil {
			return nil, errors.New("seed must be an unsigned decimal integer")
		}
		req.Seed = &seed
	}
	return req, nil
}

func rngResponseToProto(in random.RngResponse) *rollerv1.RngResponse {
	return &rollerv1.RngResponse{
		SeedUsed:   strconv.FormatUint(in.SeedUsed, 10),
		RngAlgo:    in.RngAlgo,
		SeedSource: in.SeedSource,
		RollMode:   in.RollMode.String(),
	}
}
