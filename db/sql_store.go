package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Dialect selects placeholder and column type syntax
type Dialect int

const (
	DialectPostgres Dialect = iota
	DialectSQLite
)

// SQLStore implements Store on a single kv_store table.
// Works with Postgres (pgx) and SQLite (modernc).
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// Ensure SQLStore implements Store
var _ Store = (*SQLStore)(nil)

// NewSQLStore wraps an open database. Call Migrate before first use.
func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// Migrate creates the kv_store table if it does not exist
func (s *SQLStore) Migrate(ctx context.Context) error {
	blobType, timeType := "BYTEA", "TIMESTAMPTZ"
	if s.dialect == DialectSQLite {
		blobType, timeType = "BLOB", "DATETIME"
	}
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS kv_store (
			store_key TEXT PRIMARY KEY,
			store_value %s NOT NULL,
			updated_at %s NOT NULL
		)`, blobType, timeType)
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// bind rewrites $N placeholders to ? for SQLite
func (s *SQLStore) bind(query string) string {
	if s.dialect != DialectSQLite {
		return query
	}
	for i := 3; i >= 1; i-- {
		query = strings.ReplaceAll(query, fmt.Sprintf("$%d", i), "?")
	}
	return query
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.bind(`SELECT store_value FROM kv_store WHERE store_key = $1`), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	query := s.bind(`INSERT INTO kv_store (store_key, store_value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (store_key) DO UPDATE SET store_value = excluded.store_value, updated_at = excluded.updated_at`)
	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.bind(`DELETE FROM kv_store WHERE store_key = $1`), key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error { return s.db.Close() }
