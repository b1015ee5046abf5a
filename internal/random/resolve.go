package random

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const maxSeedInt64 = math.MaxInt64

const (
	// SeedSourceServer marks a seed generated by the server.
	SeedSourceServer = "SERVER"
	// SeedSourceClient marks a seed supplied by the caller for replay.
	SeedSourceClient = "CLIENT"
)

// RollMode selects where a roll's seed comes from.
type RollMode int

const (
	RollModeUnspecified RollMode = iota
	// RollModeLive always uses a fresh server seed.
	RollModeLive
	// RollModeReplay reuses a caller-provided seed.
	RollModeReplay
)

func (m RollMode) String() string {
	switch m {
	case RollModeLive:
		return "LIVE"
	case RollModeReplay:
		return "REPLAY"
	default:
		return "ROLL_MODE_UNSPECIFIED"
	}
}

// ParseRollMode reads a mode name. Empty input is unspecified.
func ParseRollMode(value string) (RollMode, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "", "ROLL_MODE_UNSPECIFIED":
		return RollModeUnspecified, nil
	case "LIVE":
		return RollModeLive, nil
	case "REPLAY":
		return RollModeReplay, nil
	default:
		return RollModeUnspecified, fmt.Errorf("unknown roll mode %q", value)
	}
}

// RngRequest carries the caller's seed preferences.
type RngRequest struct {
	Seed     *uint64
	RollMode RollMode
}

// RngResponse reports how a roll was seeded.
type RngResponse struct {
	SeedUsed   uint64
	RngAlgo    string
	SeedSource string
	RollMode   RollMode
}

var errSeedOutOfRange = errors.New("seed exceeds int64 range")

// ErrSeedOutOfRange returns the error for client seeds above MaxInt64.
func ErrSeedOutOfRange() error {
	return errSeedOutOfRange
}

// ResolveSeed picks the seed for a roll.
//
// A client seed is used only when the request carries one and allowClient
// approves the requested mode. Otherwise seedFunc supplies a server seed and
// the mode is LIVE.
func ResolveSeed(req *RngRequest, seedFunc func() (int64, error), allowClient func(RollMode) bool) (int64, string, RollMode, error) {
	if req != nil && req.Seed != nil && allowClient != nil && allowClient(req.RollMode) {
		if *req.Seed > maxSeedInt64 {
			return 0, "", RollModeUnspecified, errSeedOutOfRange
		}
		mode := req.RollMode
		if mode == RollModeUnspecified {
			mode = RollModeReplay
		}
		return int64(*req.Seed), SeedSourceClient, mode, nil
	}

	if seedFunc == nil {
		seedFunc = NewSeed
	}
	seed, err := seedFunc()
	if err != nil {
		return 0, "", RollModeUnspecified, fmt.Errorf("generate seed: %w", err)
	}
	return seed, SeedSourceServer, RollModeLive, nil
}

// Response builds the provenance record for a resolved seed.
func Response(seed int64, source string, mode RollMode) RngResponse {
	return RngResponse{
		SeedUsed:   uint64(seed),
		RngAlgo:    RngAlgo,
		SeedSource: source,
		RollMode:   mode,
	}
}
