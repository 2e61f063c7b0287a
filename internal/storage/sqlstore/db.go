// Package sqlstore is the content store: rendered documents and per-collection
// sync state in SQLite or PostgreSQL.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const postsTable = "seconddraft_posts"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS seconddraft_posts (
		id TEXT PRIMARY KEY NOT NULL,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		body TEXT NOT NULL,
		post_id TEXT NOT NULL,
		collection_id TEXT NOT NULL,
		collection_name TEXT NOT NULL,
		description TEXT NOT NULL,
		published_at TEXT NOT NULL,
		content_hash TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_collection_post
		ON seconddraft_posts (collection_id, post_id)`,
	`CREATE TABLE IF NOT EXISTS sync_state (
		collection_id TEXT PRIMARY KEY NOT NULL,
		last_synced_at TIMESTAMP NOT NULL,
		post_count BIGINT NOT NULL DEFAULT 0,
		total_synced BIGINT NOT NULL DEFAULT 0,
		last_run_id TEXT NOT NULL DEFAULT ''
	)`,
}

// Open connects to driver ("sqlite" or "postgres") and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	return db, nil
}

// Schema creates tables and indexes on first use. Creation is idempotent, so
// a failed attempt is retried by the next caller. Ensure always runs outside
// any transaction carried by ctx.
type Schema struct {
	db    *sqlx.DB
	mu    sync.Mutex
	ready bool
}

func NewSchema(db *sqlx.DB) *Schema {
	return &Schema{db: db}
}

func (s *Schema) Ensure(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	s.ready = true
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
