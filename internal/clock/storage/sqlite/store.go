// Package sqlite provides a SQLite-backed progress clock store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/troller/internal/clock"
	"github.com/louisbranch/troller/internal/clock/filter"
	"github.com/louisbranch/troller/internal/clock/storage"
	"github.com/louisbranch/troller/internal/clock/storage/sqlite/migrations"
	sqlitemigrate "github.com/louisbranch/troller/internal/platform/storage/sqlitemigrate"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const clockColumns = `namespace, name, segments, filled, ephemeral, color, created_at`

// Store persists progress clocks in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite clock store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// CreateClock inserts one clock.
func (s *Store) CreateClock(ctx context.Context, c clock.ProgressClock) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	createdAt := c.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = s.now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO progress_clocks (
		   namespace, name, segments, filled, ephemeral, color, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Namespace,
		c.Name,
		c.Segments,
		c.Filled,
		c.Ephemeral,
		c.Color,
		toMillis(createdAt),
		toMillis(createdAt),
	)
	if err != nil {
		if isClockUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create clock: %w", err)
	}
	return nil
}

// GetClock returns one clock by namespace and name.
func (s *Store) GetClock(ctx context.Context, namespace, name string) (clock.ProgressClock, error) {
	if err := s.ready(ctx); err != nil {
		return clock.ProgressClock{}, err
	}
	namespace = strings.TrimSpace(namespace)
	name = strings.TrimSpace(name)
	if namespace == "" || name == "" {
		return clock.ProgressClock{}, fmt.Errorf("namespace and name are required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT `+clockColumns+`
		   FROM progress_clocks
		  WHERE namespace = ? AND name = ?`,
		namespace,
		name,
	)
	c, err := scanClock(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return clock.ProgressClock{}, storage.ErrNotFound
		}
		return clock.ProgressClock{}, fmt.Errorf("get clock: %w", err)
	}
	return c, nil
}

// ListClocks returns one page of clocks in a namespace ordered by name.
func (s *Store) ListClocks(ctx context.Context, namespace string, opts storage.ListOptions) (storage.ClockPage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.ClockPage{}, err
	}
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return storage.ClockPage{}, fmt.Errorf("namespace is required")
	}
	if opts.PageSize <= 0 {
		return storage.ClockPage{}, fmt.Errorf("page size must be greater than zero")
	}

	cond, err := filter.Parse(opts.Filter)
	if err != nil {
		return storage.ClockPage{}, fmt.Errorf("%w: %v", storage.ErrInvalidFilter, err)
	}

	clauses := []string{"namespace = ?"}
	params := []any{namespace}
	if token := strings.TrimSpace(opts.PageToken); token != "" {
		clauses = append(clauses, "name > ?")
		params = append(params, token)
	}
	if prefix := strings.TrimSpace(opts.NamePrefix); prefix != "" {
		clauses = append(clauses, `name LIKE ? ESCAPE '\'`)
		params = append(params, escapeLike(prefix)+"%")
	}
	if cond.SQL != "" {
		clauses = append(clauses, cond.SQL)
		params = append(params, cond.Args...)
	}
	params = append(params, opts.PageSize+1)

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT `+clockColumns+`
		   FROM progress_clocks
		  WHERE `+strings.Join(clauses, " AND ")+`
		  ORDER BY name ASC
		  LIMIT ?`,
		params...,
	)
	if err != nil {
		return storage.ClockPage{}, fmt.Errorf("list clocks: %w", err)
	}
	defer rows.Close()

	page := storage.ClockPage{Clocks: make([]clock.ProgressClock, 0, opts.PageSize)}
	for rows.Next() {
		c, err := scanClock(rows)
		if err != nil {
			return storage.ClockPage{}, fmt.Errorf("list clocks: %w", err)
		}
		page.Clocks = append(page.Clocks, c)
	}
	if err := rows.Err(); err != nil {
		return storage.ClockPage{}, fmt.Errorf("list clocks: %w", err)
	}
	if len(page.Clocks) > opts.PageSize {
		page.NextPageToken = page.Clocks[opts.PageSize-1].Name
		page.Clocks = page.Clocks[:opts.PageSize]
	}
	return page, nil
}

// UpdateClock replaces the mutable fields of an existing clock.
func (s *Store) UpdateClock(ctx context.Context, c clock.ProgressClock) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE progress_clocks
		    SET segments = ?, filled = ?, ephemeral = ?, color = ?, updated_at = ?
		  WHERE namespace = ? AND name = ?`,
		c.Segments,
		c.Filled,
		c.Ephemeral,
		c.Color,
		toMillis(s.now()),
		c.Namespace,
		c.Name,
	)
	if err != nil {
		return fmt.Errorf("update clock: %w", err)
	}
	return requireRow(result, "update clock")
}

// DeleteClock removes one clock.
func (s *Store) DeleteClock(ctx context.Context, namespace, name string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM progress_clocks WHERE namespace = ? AND name = ?`,
		strings.TrimSpace(namespace),
		strings.TrimSpace(name),
	)
	if err != nil {
		return fmt.Errorf("delete clock: %w", err)
	}
	return requireRow(result, "delete clock")
}

// PurgeExpired deletes ephemeral clocks created at least clock.EphemeralTTL
// before now and returns how many were removed.
func (s *Store) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM progress_clocks WHERE ephemeral = 1 AND created_at <= ?`,
		toMillis(now.Add(-clock.EphemeralTTL)),
	)
	if err != nil {
		return 0, fmt.Errorf("purge expired clocks: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge expired clocks: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClock(row rowScanner) (clock.ProgressClock, error) {
	var c clock.ProgressClock
	var createdAt int64
	if err := row.Scan(
		&c.Namespace,
		&c.Name,
		&c.Segments,
		&c.Filled,
		&c.Ephemeral,
		&c.Color,
		&createdAt,
	); err != nil {
		return clock.ProgressClock{}, err
	}
	c.CreatedAt = fromMillis(createdAt)
	return c, nil
}

func requireRow(result sql.Result, op string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

func isClockUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "progress_clocks.")
}

var _ storage.ClockStore = (*Store)(nil)
