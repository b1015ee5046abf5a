// Package clocks implements troller.v1.ClockService.
package clocks

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/troller/internal/clock"
	"github.com/louisbranch/troller/internal/clock/storage"
	rollerv1 "github.com/louisbranch/troller/internal/services/roller/api/grpc/rollerv1"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	defaultListClocksPageSize = 10
	maxListClocksPageSize     = 50
	maxRenderSize             = 2048
)

// Service exposes progress clocks over gRPC.
type Service struct {
	rollerv1.UnimplementedClockServiceServer
	store storage.ClockStore
	clock func() time.Time

	// mu serializes read-modify-write bumps.
	mu sync.Mutex
}

// NewService creates a clock service backed by store.
func NewService(store storage.ClockStore) *Service {
	return &Service{
		store: store,
		clock: time.Now,
	}
}

// CreateClock validates and persists a new clock.
func (s *Service) CreateClock(ctx context.Context, in *rollerv1.CreateClockRequest) (*rollerv1.CreateClockResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "create clock request is required")
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	record, err := clock.New(clock.CreateInput{
		Namespace: in.Namespace,
		Name:      in.Name,
		Segments:  in.Segments,
		Filled:    in.Filled,
		Ephemeral: in.Ephemeral,
		Color:     in.Color,
	}, s.clock())
	if err != nil {
		return nil, clockError(in.Name, err)
	}
	if err := s.store.CreateClock(ctx, record); err != nil {
		return nil, clockError(record.Name, err)
	}
	return &rollerv1.CreateClockResponse{Clock: clockToProto(record)}, nil
}

// GetClock returns one clock. Expired ephemeral clocks are reported as missing.
func (s *Service) GetClock(ctx context.Context, in *rollerv1.GetClockRequest) (*rollerv1.GetClockResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get clock request is required")
	}
	record, err := s.load(ctx, in.Namespace, in.Name)
	if err != nil {
		return nil, err
	}
	return &rollerv1.GetClockResponse{Clock: clockToProto(record)}, nil
}

// ListClocks returns one page of a namespace's clocks ordered by name.
func (s *Service) ListClocks(ctx context.Context, in *rollerv1.ListClocksRequest) (*rollerv1.ListClocksResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "list clocks request is required")
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	namespace := strings.TrimSpace(in.Namespace)
	if namespace == "" {
		return nil, clockError("", clock.ErrNamespaceRequired)
	}

	page, err := s.store.ListClocks(ctx, namespace, storage.ListOptions{
		PageSize:   listPageSize(in.PageSize),
		PageToken:  strings.TrimSpace(in.PageToken),
		Filter:     strings.TrimSpace(in.Filter),
		NamePrefix: strings.TrimSpace(in.NamePrefix),
	})
	if err != nil {
		return nil, clockError("", err)
	}

	now := s.clock()
	resp := &rollerv1.ListClocksResponse{
		Clocks:        make([]*rollerv1.Clock, 0, len(page.Clocks)),
		NextPageToken: page.NextPageToken,
	}
	for _, record := range page.Clocks {
		if record.Expired(now) {
			continue
		}
		resp.Clocks = append(resp.Clocks, clockToProto(record))
	}
	return resp, nil
}

// listPageSize applies the default to unset sizes and caps the rest.
func listPageSize(requested int32) int {
	switch {
	case requested <= 0:
		return defaultListClocksPageSize
	case requested > maxListClocksPageSize:
		return maxListClocksPageSize
	default:
		return int(requested)
	}
}

// BumpClock moves a clock by Amount segments, clamped to its bounds.
func (s *Service) BumpClock(ctx context.Context, in *rollerv1.BumpClockRequest) (*rollerv1.BumpClockResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "bump clock request is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.load(ctx, in.Namespace, in.Name)
	if err != nil {
		return nil, err
	}
	record = record.Bump(in.Amount)
	if err := s.store.UpdateClock(ctx, record); err != nil {
		return nil, clockError(record.Name, err)
	}
	return &rollerv1.BumpClockResponse{Clock: clockToProto(record)}, nil
}

// DeleteClock removes a clock.
func (s *Service) DeleteClock(ctx context.Context, in *rollerv1.DeleteClockRequest) (*rollerv1.DeleteClockResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "delete clock request is required")
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	namespace, name, err := clockKey(in.Namespace, in.Name)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteClock(ctx, namespace, name); err != nil {
		return nil, clockError(name, err)
	}
	return &rollerv1.DeleteClockResponse{}, nil
}

// RenderClock draws a clock as an SVG document.
func (s *Service) RenderClock(ctx context.Context, in *rollerv1.RenderClockRequest) (*rollerv1.RenderClockResponse, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "render clock request is required")
	}
	if in.Size < 0 || in.Size > maxRenderSize {
		return nil, status.Errorf(codes.InvalidArgument, "size must be between 0 and %d", maxRenderSize)
	}
	record, err := s.load(ctx, in.Namespace, in.Name)
	if err != nil {
		return nil, err
	}
	svg, err := clock.RenderSVG(record, in.Size)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "render clock: %v", err)
	}
	return &rollerv1.RenderClockResponse{Clock: clockToProto(record), Svg: string(svg)}, nil
}

// PurgeExpired removes ephemeral clocks past their lifetime.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	if s == nil || s.store == nil {
		return 0, nil
	}
	return s.store.PurgeExpired(ctx, s.clock())
}

func (s *Service) ready() error {
	if s == nil || s.store == nil {
		return status.Error(codes.Internal, "clock store is not configured")
	}
	return nil
}

func (s *Service) load(ctx context.Context, namespace, name string) (clock.ProgressClock, error) {
	if err := s.ready(); err != nil {
		return clock.ProgressClock{}, err
	}
	namespace, name, err := clockKey(namespace, name)
	if err != nil {
		return clock.ProgressClock{}, err
	}
	record, err := s.store.GetClock(ctx, namespace, name)
	if err != nil {
		return clock.ProgressClock{}, clockError(name, err)
	}
	if record.Expired(s.clock()) {
		return clock.ProgressClock{}, clockError(name, storage.ErrNotFound)
	}
	return record, nil
}

func clockKey(namespace, name string) (string, string, error) {
	namespace = strings.TrimSpace(namespace)
	name = strings.TrimSpace(name)
	if namespace == "" {
		return "", "", clockError(name, clock.ErrNamespaceRequired)
	}
	if name == "" {
		return "", "", clockError(name, clock.ErrNameRequired)
	}
	return namespace, name, nil
}

func clockToProto(c clock.ProgressClock) *rollerv1.Clock {
	return &rollerv1.Clock{
		Namespace: c.Namespace,
		Name:      c.Name,
		Title:     c.Title(),
		Segments:  c.Segments,
		Filled:    c.Filled,
		Complete:  c.Complete(),
		Ephemeral: c.Ephemeral,
		Color:     c.Color,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
