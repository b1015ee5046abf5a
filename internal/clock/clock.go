// Package clock models progress clocks: named, segmented goal trackers that
// fill one segment at a time and render as pie charts.
package clock

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// MaxSegments is the largest clock that can be created.
	MaxSegments = 255
	// EphemeralTTL is how long an ephemeral clock lives after creation.
	EphemeralTTL = 24 * time.Hour
	// MaxNameLength bounds clock names in bytes.
	MaxNameLength = 100
)

var (
	// ErrNamespaceRequired indicates a missing namespace.
	ErrNamespaceRequired = errors.New("clock namespace is required")
	// ErrNameRequired indicates a missing clock name.
	ErrNameRequired = errors.New("clock name is required")
	// ErrNameTooLong indicates a clock name above MaxNameLength.
	ErrNameTooLong = errors.New("clock name is too long")
	// ErrInvalidSegments indicates a segment count outside [1, MaxSegments].
	ErrInvalidSegments = errors.New("clock segments must be between 1 and 255")
	// ErrInvalidFilled indicates a filled count outside [0, segments].
	ErrInvalidFilled = errors.New("clock filled segments out of range")
	// ErrInvalidColor indicates an unknown color.
	ErrInvalidColor = errors.New("clock color must be an html color name or hex code")
)

// ProgressClock is a named clock owned by a namespace (a user or a group).
type ProgressClock struct {
	Namespace string
	Name      string
	Segments  int
	Filled    int
	Ephemeral bool
	Color     string
	CreatedAt time.Time
}

// CreateInput describes a new clock.
type CreateInput struct {
	Namespace string
	Name      string
	Segments  int
	Filled    int
	Ephemeral bool
	Color     string
}

// New validates input and returns a clock created at now.
func New(input CreateInput, now time.Time) (ProgressClock, error) {
	c := ProgressClock{
		Namespace: strings.TrimSpace(input.Namespace),
		Name:      strings.TrimSpace(input.Name),
		Segments:  input.Segments,
		Filled:    input.Filled,
		Ephemeral: input.Ephemeral,
		Color:     strings.ToLower(strings.TrimSpace(input.Color)),
		CreatedAt: now.UTC(),
	}
	if err := c.Validate(); err != nil {
		return ProgressClock{}, err
	}
	return c, nil
}

// Validate checks the clock invariants.
func (c ProgressClock) Validate() error {
	if c.Namespace == "" {
		return ErrNamespaceRequired
	}
	if c.Name == "" {
		return ErrNameRequired
	}
	if len(c.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if c.Segments < 1 || c.Segments > MaxSegments {
		return ErrInvalidSegments
	}
	if c.Filled < 0 || c.Filled > c.Segments {
		return fmt.Errorf("%w: %d of %d", ErrInvalidFilled, c.Filled, c.Segments)
	}
	if c.Color != "" {
		if _, ok := ParseColor(c.Color); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidColor, c.Color)
		}
	}
	return nil
}

// Bump moves the clock by n segments, clamped to [0, Segments].
func (c ProgressClock) Bump(n int) ProgressClock {
	c.Filled = min(max(c.Filled+n, 0), c.Segments)
	return c
}

// Complete reports whether every segment is filled.
func (c ProgressClock) Complete() bool {
	return c.Filled == c.Segments
}

// Expired reports whether an ephemeral clock has outlived EphemeralTTL.
func (c ProgressClock) Expired(now time.Time) bool {
	return c.Ephemeral && !now.Before(c.CreatedAt.Add(EphemeralTTL))
}

// Title returns the name with each word capitalized.
func (c ProgressClock) Title() string {
	return cases.Title(language.English).String(c.Name)
}
