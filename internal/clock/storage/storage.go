// Package storage defines persistence contracts for progress clocks.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/troller/internal/clock"
)

var (
	// ErrNotFound indicates a requested clock is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a clock with the same namespace and name exists.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalidFilter indicates a listing filter could not be parsed.
	ErrInvalidFilter = errors.New("invalid filter")
)

// ListOptions narrows and pages a clock listing.
type ListOptions struct {
	PageSize   int
	PageToken  string
	Filter     string // AIP-160 expression over clock fields.
	NamePrefix string
}

// ClockPage stores one page of clocks ordered by name.
type ClockPage struct {
	Clocks        []clock.ProgressClock
	NextPageToken string
}

// ClockStore persists progress clocks.
type ClockStore interface {
	CreateClock(ctx context.Context, c clock.ProgressClock) error
	GetClock(ctx context.Context, namespace, name string) (clock.ProgressClock, error)
	ListClocks(ctx context.Context, namespace string, opts ListOptions) (ClockPage, error)
	UpdateClock(ctx context.Context, c clock.ProgressClock) error
	DeleteClock(ctx context.Context, namespace, name string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
