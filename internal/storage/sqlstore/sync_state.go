package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"seconddraft/internal/domain"
)

type SyncStateStore struct {
	db     *sqlx.DB
	schema *Schema
}

func NewSyncStateStore(db *sqlx.DB, schema *Schema) *SyncStateStore {
	return &SyncStateStore{db: db, schema: schema}
}

func (s *SyncStateStore) Get(ctx context.Context, collectionID string) (*domain.SyncState, error) {
	if err := s.schema.Ensure(ctx); err != nil {
		return nil, err
	}

	var state domain.SyncState
	query := `
		SELECT collection_id, last_synced_at, post_count, total_synced, last_run_id
		FROM sync_state
		WHERE collection_id = ?`

	exec := GetExecutor(ctx, s.db)
	err := sqlx.GetContext(ctx, exec, &state, exec.Rebind(query), collectionID)
	if errors.Is(err, sql.ErrNoRows) {
		// Return empty state for collections never synced
		return &domain.SyncState{CollectionID: collectionID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get sync state %s: %w", collectionID, err)
	}
	return &state, nil
}

func (s *SyncStateStore) Update(ctx context.Context, state *domain.SyncState) error {
	if err := s.schema.Ensure(ctx); err != nil {
		return err
	}

	query := `
		INSERT INTO sync_state (collection_id, last_synced_at, post_count, total_synced, last_run_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (collection_id) DO UPDATE SET
			last_synced_at = excluded.last_synced_at,
			post_count = excluded.post_count,
			total_synced = excluded.total_synced,
			last_run_id = excluded.last_run_id`

	exec := GetExecutor(ctx, s.db)
	_, err := exec.ExecContext(ctx, exec.Rebind(query),
		state.CollectionID,
		state.LastSyncedAt.UTC(),
		state.PostCount,
		state.TotalSynced,
		state.LastRunID,
	)
	if err != nil {
		return fmt.Errorf("update sync state %s: %w", state.CollectionID, err)
	}
	return nil
}
