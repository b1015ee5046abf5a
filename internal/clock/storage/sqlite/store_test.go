package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/troller/internal/clock"
	"github.com/louisbranch/troller/internal/clock/storage"
)

var testNow = time.Date(2026, time.February, 22, 16, 40, 0, 0, time.UTC)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestCreateGetClockRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	input := newClock(t, "crew", "the heist", 6, 2)
	input.Color = "#ff0000"
	input.Ephemeral = true
	if err := store.CreateClock(context.Background(), input); err != nil {
		t.Fatalf("create clock: %v", err)
	}

	got, err := store.GetClock(context.Background(), "crew", "the heist")
	if err != nil {
		t.Fatalf("get clock: %v", err)
	}
	if !got.CreatedAt.Equal(input.CreatedAt) {
		t.Fatalf("created at = %v, want %v", got.CreatedAt, input.CreatedAt)
	}
	got.CreatedAt = input.CreatedAt
	if got != input {
		t.Fatalf("clock = %+v, want %+v", got, input)
	}
}

func TestCreateClockReturnsAlreadyExistsOnDuplicate(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	input := newClock(t, "crew", "alarm", 4, 0)
	if err := store.CreateClock(context.Background(), input); err != nil {
		t.Fatalf("create initial clock: %v", err)
	}
	err := store.CreateClock(context.Background(), input)
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate create error = %v, want %v", err, storage.ErrAlreadyExists)
	}

	other := newClock(t, "other crew", "alarm", 4, 0)
	if err := store.CreateClock(context.Background(), other); err != nil {
		t.Fatalf("same name in another namespace: %v", err)
	}
}

func TestCreateClockRejectsInvalidClock(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	err := store.CreateClock(context.Background(), clock.ProgressClock{Namespace: "crew", Name: "x", Segments: 4, Filled: 9})
	if !errors.Is(err, clock.ErrInvalidFilled) {
		t.Fatalf("create error = %v, want %v", err, clock.ErrInvalidFilled)
	}
}

func TestGetClockReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.GetClock(context.Background(), "crew", "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get missing error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestUpdateAndDeleteClock(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	input := newClock(t, "crew", "alarm", 4, 1)
	if err := store.CreateClock(context.Background(), input); err != nil {
		t.Fatalf("create clock: %v", err)
	}

	bumped := input.Bump(2)
	if err := store.UpdateClock(context.Background(), bumped); err != nil {
		t.Fatalf("update clock: %v", err)
	}
	got, err := store.GetClock(context.Background(), "crew", "alarm")
	if err != nil {
		t.Fatalf("get clock: %v", err)
	}
	if got.Filled != 3 {
		t.Fatalf("filled = %d, want 3", got.Filled)
	}

	if err := store.DeleteClock(context.Background(), "crew", "alarm"); err != nil {
		t.Fatalf("delete clock: %v", err)
	}
	if err := store.DeleteClock(context.Background(), "crew", "alarm"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("second delete error = %v, want %v", err, storage.ErrNotFound)
	}
	if err := store.UpdateClock(context.Background(), bumped); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("update deleted error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestListClocksPaginates(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	for _, name := range []string{"delta", "alpha", "charlie", "bravo"} {
		if err := store.CreateClock(context.Background(), newClock(t, "crew", name, 4, 0)); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	if err := store.CreateClock(context.Background(), newClock(t, "rivals", "echo", 4, 0)); err != nil {
		t.Fatalf("create echo: %v", err)
	}

	first, err := store.ListClocks(context.Background(), "crew", storage.ListOptions{PageSize: 3})
	if err != nil {
		t.Fatalf("list first page: %v", err)
	}
	if names := clockNames(first.Clocks); !equalStrings(names, []string{"alpha", "bravo", "charlie"}) {
		t.Fatalf("first page = %v", names)
	}
	if first.NextPageToken != "charlie" {
		t.Fatalf("next page token = %q, want charlie", first.NextPageToken)
	}

	second, err := store.ListClocks(context.Background(), "crew", storage.ListOptions{PageSize: 3, PageToken: first.NextPageToken})
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if names := clockNames(second.Clocks); !equalStrings(names, []string{"delta"}) {
		t.Fatalf("second page = %v", names)
	}
	if second.NextPageToken != "" {
		t.Fatalf("expected empty next page token, got %q", second.NextPageToken)
	}
}

func TestListClocksFiltersAndPrefix(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	clocks := []clock.ProgressClock{
		newClock(t, "crew", "heist", 8, 2),
		newClock(t, "crew", "heat", 4, 4),
		newClock(t, "crew", "alarm", 6, 1),
		newClock(t, "crew", "he_llo", 6, 1),
	}
	for _, c := range clocks {
		if err := store.CreateClock(context.Background(), c); err != nil {
			t.Fatalf("create %s: %v", c.Name, err)
		}
	}

	page, err := store.ListClocks(context.Background(), "crew", storage.ListOptions{PageSize: 10, Filter: `segments >= 6`})
	if err != nil {
		t.Fatalf("list with filter: %v", err)
	}
	if names := clockNames(page.Clocks); !equalStrings(names, []string{"alarm", "he_llo", "heist"}) {
		t.Fatalf("filtered = %v", names)
	}

	page, err = store.ListClocks(context.Background(), "crew", storage.ListOptions{PageSize: 10, NamePrefix: "he"})
	if err != nil {
		t.Fatalf("list with prefix: %v", err)
	}
	if names := clockNames(page.Clocks); !equalStrings(names, []string{"he_llo", "heat", "heist"}) {
		t.Fatalf("prefixed = %v", names)
	}

	page, err = store.ListClocks(context.Background(), "crew", storage.ListOptions{PageSize: 10, NamePrefix: "he_"})
	if err != nil {
		t.Fatalf("list with literal underscore prefix: %v", err)
	}
	if names := clockNames(page.Clocks); !equalStrings(names, []string{"he_llo"}) {
		t.Fatalf("underscore prefix = %v", names)
	}

	_, err = store.ListClocks(context.Background(), "crew", storage.ListOptions{PageSize: 10, Filter: `owner = "x"`})
	if !errors.Is(err, storage.ErrInvalidFilter) {
		t.Fatalf("invalid filter error = %v, want %v", err, storage.ErrInvalidFilter)
	}
}

func TestPurgeExpiredRemovesOldEphemeralClocks(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	old := newClock(t, "crew", "old", 4, 0)
	old.Ephemeral = true
	old.CreatedAt = testNow.Add(-clock.EphemeralTTL - time.Minute)
	fresh := newClock(t, "crew", "fresh", 4, 0)
	fresh.Ephemeral = true
	kept := newClock(t, "crew", "kept", 4, 0)
	kept.CreatedAt = old.CreatedAt
	for _, c := range []clock.ProgressClock{old, fresh, kept} {
		if err := store.CreateClock(context.Background(), c); err != nil {
			t.Fatalf("create %s: %v", c.Name, err)
		}
	}

	removed, err := store.PurgeExpired(context.Background(), testNow)
	if err != nil {
		t.Fatalf("purge expired: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := store.GetClock(context.Background(), "crew", "old"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected old clock to be purged, got %v", err)
	}
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.GetClock(ctx, "crew", "alarm"); !errors.Is(err, context.Canceled) {
		t.Fatalf("get error = %v, want %v", err, context.Canceled)
	}
}

func newClock(t *testing.T, namespace, name string, segments, filled int) clock.ProgressClock {
	t.Helper()

	c, err := clock.New(clock.CreateInput{
		Namespace: namespace,
		Name:      name,
		Segments:  segments,
		Filled:    filled,
	}, testNow)
	if err != nil {
		t.Fatalf("new clock: %v", err)
	}
	return c
}

func clockNames(clocks []clock.ProgressClock) []string {
	names := make([]string, 0, len(clocks))
	for _, c := range clocks {
		names = append(names, c.Name)
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clocks.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
