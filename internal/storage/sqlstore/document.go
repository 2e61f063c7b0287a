package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"seconddraft/internal/domain"
)

var documentColumns = []string{
	"id", "title", "author", "body", "post_id", "collection_id",
	"collection_name", "description", "published_at", "content_hash",
}

// documentRow keeps body as text so both drivers scan it the same way.
type documentRow struct {
	ID             string `db:"id"`
	Title          string `db:"title"`
	Author         string `db:"author"`
	Body           string `db:"body"`
	PostID         string `db:"post_id"`
	CollectionID   string `db:"collection_id"`
	CollectionName string `db:"collection_name"`
	Description    string `db:"description"`
	PublishedAt    string `db:"published_at"`
	ContentHash    string `db:"content_hash"`
}

func (r documentRow) document() *domain.RenderedDocument {
	return &domain.RenderedDocument{
		PostMetadata: domain.PostMetadata{
			Title:          r.Title,
			PostID:         r.PostID,
			PublishedAt:    r.PublishedAt,
			Author:         r.Author,
			CollectionName: r.CollectionName,
			CollectionID:   r.CollectionID,
		},
		ID:          r.ID,
		Body:        json.RawMessage(r.Body),
		Description: r.Description,
		ContentHash: r.ContentHash,
	}
}

func documentArgs(doc *domain.RenderedDocument) []any {
	id := doc.ID
	if id == "" {
		id = domain.DocumentID(doc.CollectionID, doc.PostID)
	}
	return []any{
		id,
		doc.Title,
		doc.Author,
		string(doc.Body),
		doc.PostID,
		doc.CollectionID,
		doc.CollectionName,
		doc.Description,
		doc.PublishedAt,
		doc.ContentHash,
	}
}

// DocumentStore persists rendered documents keyed by (collection_id, post_id).
type DocumentStore struct {
	db     *sqlx.DB
	schema *Schema
}

func NewDocumentStore(db *sqlx.DB, schema *Schema) *DocumentStore {
	return &DocumentStore{db: db, schema: schema}
}

// Insert adds a document and fails with domain.ErrDuplicatePost when the
// (collection_id, post_id) pair is already stored.
func (s *DocumentStore) Insert(ctx context.Context, doc *domain.RenderedDocument) error {
	if err := s.schema.Ensure(ctx); err != nil {
		return err
	}

	query, args, err := sq.Insert(postsTable).
		Columns(documentColumns...).
		Values(documentArgs(doc)...).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	exec := GetExecutor(ctx, s.db)
	if _, err := exec.ExecContext(ctx, exec.Rebind(query), args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert %s/%s: %w", doc.CollectionID, doc.PostID, domain.ErrDuplicatePost)
		}
		return fmt.Errorf("insert %s/%s: %w", doc.CollectionID, doc.PostID, err)
	}
	return nil
}

// Upsert inserts a document or replaces the stored one for the same
// (collection_id, post_id).
func (s *DocumentStore) Upsert(ctx context.Context, doc *domain.RenderedDocument) error {
	if err := s.schema.Ensure(ctx); err != nil {
		return err
	}

	query := `
		INSERT INTO seconddraft_posts (
			id, title, author, body, post_id, collection_id,
			collection_name, description, published_at, content_hash
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (collection_id, post_id) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			body = excluded.body,
			collection_name = excluded.collection_name,
			description = excluded.description,
			published_at = excluded.published_at,
			content_hash = excluded.content_hash`

	exec := GetExecutor(ctx, s.db)
	if _, err := exec.ExecContext(ctx, exec.Rebind(query), documentArgs(doc)...); err != nil {
		return fmt.Errorf("upsert %s/%s: %w", doc.CollectionID, doc.PostID, err)
	}
	return nil
}

// Get returns nil, nil when the document is not stored.
func (s *DocumentStore) Get(ctx context.Context, collectionID, postID string) (*domain.RenderedDocument, error) {
	if err := s.schema.Ensure(ctx); err != nil {
		return nil, err
	}

	query, args, err := sq.Select(documentColumns...).
		From(postsTable).
		Where(sq.Eq{"collection_id": collectionID, "post_id": postID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	exec := GetExecutor(ctx, s.db)
	var row documentRow
	err = sqlx.GetContext(ctx, exec, &row, exec.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collectionID, postID, err)
	}
	return row.document(), nil
}

// ListByCollection returns a collection's documents, newest first.
func (s *DocumentStore) ListByCollection(ctx context.Context, collectionID string) ([]*domain.RenderedDocument, error) {
	if err := s.schema.Ensure(ctx); err != nil {
		return nil, err
	}

	query, args, err := sq.Select(documentColumns...).
		From(postsTable).
		Where(sq.Eq{"collection_id": collectionID}).
		OrderBy("published_at DESC", "post_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	exec := GetExecutor(ctx, s.db)
	var rows []documentRow
	if err := sqlx.SelectContext(ctx, exec, &rows, exec.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", collectionID, err)
	}

	docs := make([]*domain.RenderedDocument, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, r.document())
	}
	return docs, nil
}

// ExistingPostIDs returns the subset of ids already stored for a collection.
func (s *DocumentStore) ExistingPostIDs(ctx context.Context, collectionID string, ids []string) (map[string]struct{}, error) {
	result := make(map[string]struct{})
	if len(ids) == 0 {
		return result, nil
	}
	if err := s.schema.Ensure(ctx); err != nil {
		return nil, err
	}

	query, args, err := sq.Select("post_id").
		From(postsTable).
		Where(sq.Eq{"collection_id": collectionID, "post_id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	exec := GetExecutor(ctx, s.db)
	var found []string
	if err := sqlx.SelectContext(ctx, exec, &found, exec.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("existing posts %s: %w", collectionID, err)
	}

	for _, id := range found {
		result[id] = struct{}{}
	}
	return result, nil
}
