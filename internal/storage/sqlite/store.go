// Package sqlite provides a SQLite-backed ledger slot store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"crowdfund/internal/domain"
	"crowdfund/internal/sqlinline"
)

// Store persists ledger slots in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens (creating if needed) the database at path and applies the schema.
// Write transactions take the database lock up front so concurrent
// read-modify-write cycles serialize instead of failing on upgrade.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure sqlite dir: %w", err)
		}
	}
	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	s := New(sqlDB)
	if err := s.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an already opened handle. The schema is not applied.
func New(sqlDB *sql.DB) *Store {
	return &Store{sqlDB: sqlDB, now: time.Now}
}

// Migrate creates the ledger_slots table when missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.sqlDB.ExecContext(ctx, sqlinline.QSQLiteSchema); err != nil {
		return fmt.Errorf("apply sqlite schema: %w", err)
	}
	return nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Load(ctx context.Context, key string) (domain.Amount, error) {
	if s == nil || s.sqlDB == nil {
		return domain.Amount{}, domain.ErrStoreUnavailable
	}
	return readSlot(s.sqlDB.QueryRowContext(ctx, sqlinline.QSQLiteSelectSlot, key), key)
}

func (s *Store) Update(ctx context.Context, key string, fn func(domain.Amount) (domain.Amount, error)) (domain.Amount, error) {
	if s == nil || s.sqlDB == nil {
		return domain.Amount{}, domain.ErrStoreUnavailable
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return domain.Amount{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := readSlot(tx.QueryRowContext(ctx, sqlinline.QSQLiteSelectSlot, key), key)
	if err != nil {
		return domain.Amount{}, err
	}
	next, err := fn(current)
	if err != nil {
		return domain.Amount{}, err
	}
	if _, err := tx.ExecContext(ctx, sqlinline.QSQLiteUpsertSlot, key, next.String(), s.now().UTC().UnixMilli()); err != nil {
		return domain.Amount{}, fmt.Errorf("write slot %s: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Amount{}, fmt.Errorf("commit slot %s: %w", key, err)
	}
	return next, nil
}

func readSlot(row *sql.Row, key string) (domain.Amount, error) {
	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Amount{}, nil
		}
		return domain.Amount{}, fmt.Errorf("read slot %s: %w", key, err)
	}
	v, err := domain.ParseAmount(raw)
	if err != nil {
		return domain.Amount{}, fmt.Errorf("slot %s holds %q: %w", key, raw, err)
	}
	return v, nil
}

var _ domain.TotalStore = (*Store)(nil)
