// Package content serves rendered posts. The content store is a cache in
// front of the markup files, which stay the source of truth.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"seconddraft/internal/domain"
)

type DocumentStore interface {
	Get(ctx context.Context, collectionID, postID string) (*domain.RenderedDocument, error)
	Upsert(ctx context.Context, doc *domain.RenderedDocument) error
}

type PostFiles interface {
	ReadPost(collectionID, postID string) ([]byte, error)
	ListPostIDs(collectionID string) ([]string, error)
}

type Renderer interface {
	Render(source string) (*domain.RenderedDocument, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Reader struct {
	store    DocumentStore
	files    PostFiles
	renderer Renderer
	tx       TransactionManager
	logger   *slog.Logger
}

func NewReader(
	store DocumentStore,
	files PostFiles,
	renderer Renderer,
	tx TransactionManager,
	logger *slog.Logger,
) *Reader {
	return &Reader{
		store:    store,
		files:    files,
		renderer: renderer,
		tx:       tx,
		logger:   logger.With("component", "content"),
	}
}

// Get returns the stored document, rendering and caching it on a miss. A
// failing store is treated like a miss.
func (r *Reader) Get(ctx context.Context, collectionID, postID string) (*domain.RenderedDocument, error) {
	doc, err := r.store.Get(ctx, collectionID, postID)
	if err != nil {
		r.logger.Warn("content store lookup failed, rendering from file",
			"collection_id", collectionID,
			"post_id", postID,
			"error", err,
		)
	} else if doc != nil {
		return doc, nil
	}

	doc, err = r.renderFile(collectionID, postID)
	if err != nil {
		return nil, err
	}

	if err := r.store.Upsert(ctx, doc); err != nil {
		r.logger.Warn("failed to cache rendered document",
			"collection_id", collectionID,
			"post_id", postID,
			"error", err,
		)
	}
	return doc, nil
}

// Warm renders every markup file of a collection and stores the results in
// one transaction. Files that fail to render are skipped.
func (r *Reader) Warm(ctx context.Context, collectionID string) (int, error) {
	ids, err := r.files.ListPostIDs(collectionID)
	if err != nil {
		return 0, fmt.Errorf("list posts: %w", err)
	}

	docs := make([]*domain.RenderedDocument, 0, len(ids))
	for _, id := range ids {
		doc, err := r.renderFile(collectionID, id)
		if err != nil {
			r.logger.Error("failed to render post",
				"collection_id", collectionID,
				"post_id", id,
				"error", err,
			)
			continue
		}
		docs = append(docs, doc)
	}

	err = r.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for _, doc := range docs {
			if err := r.store.Upsert(ctx, doc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("store rendered posts: %w", err)
	}

	r.logger.Info("collection warmed",
		"collection_id", collectionID,
		"rendered", len(docs),
		"skipped", len(ids)-len(docs),
	)
	return len(docs), nil
}

func (r *Reader) renderFile(collectionID, postID string) (*domain.RenderedDocument, error) {
	data, err := r.files.ReadPost(collectionID, postID)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s/%s: %w", collectionID, postID, domain.ErrPostNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read post: %w", err)
	}

	doc, err := r.renderer.Render(string(data))
	if err != nil {
		return nil, fmt.Errorf("render %s/%s: %w", collectionID, postID, err)
	}

	// The file location is authoritative for identity.
	doc.CollectionID = collectionID
	doc.PostID = postID
	doc.ID = domain.DocumentID(collectionID, postID)
	return doc, nil
}
