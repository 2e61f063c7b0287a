package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"seconddraft/internal/domain"
	"seconddraft/internal/markup"
)

const (
	ResultCompleted     = "Sync completed"
	ResultNoCollections = "No collections to sync"

	lastSyncLayout = "2006-01-02T15:04:05.000Z07:00"
)

// SourceFactory builds a Source authenticated with the run's session cookie.
type SourceFactory func(sessionCookie string) Source

// SyncService mirrors the configured collections into the content directory.
// index, syncState, locker, publisher and archiver are optional and may be nil.
type SyncService struct {
	apps       AppConfigLoader
	sources    SourceFactory
	translator Translator
	html       HTMLConverter
	files      FileStore
	index      ContentIndex
	syncState  SyncStateStore
	locker     Locker
	publisher  Publisher
	archiver   Archiver
	logger     *slog.Logger
	now        func() time.Time
}

func NewSyncService(
	apps AppConfigLoader,
	sources SourceFactory,
	translator Translator,
	html HTMLConverter,
	files FileStore,
	index ContentIndex,
	syncState SyncStateStore,
	locker Locker,
	publisher Publisher,
	archiver Archiver,
	logger *slog.Logger,
) *SyncService {
	return &SyncService{
		apps:       apps,
		sources:    sources,
		translator: translator,
		html:       html,
		files:      files,
		index:      index,
		syncState:  syncState,
		locker:     locker,
		publisher:  publisher,
		archiver:   archiver,
		logger:     logger.With("component", "sync"),
		now:        time.Now,
	}
}

// Sync runs every configured collection in order.
func (s *SyncService) Sync(ctx context.Context) (*domain.SyncSummary, error) {
	return s.run(ctx, nil)
}

// SyncOnly runs the configured collections whose id is listed.
func (s *SyncService) SyncOnly(ctx context.Context, collectionIDs []string) (*domain.SyncSummary, error) {
	only := make(map[string]struct{}, len(collectionIDs))
	for _, id := range collectionIDs {
		only[id] = struct{}{}
	}
	return s.run(ctx, only)
}

func (s *SyncService) run(ctx context.Context, only map[string]struct{}) (*domain.SyncSummary, error) {
	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)

	app, err := s.apps.LoadApp()
	if err != nil {
		return nil, fmt.Errorf("load app config: %w", err)
	}

	collections := app.Patreon.Collections
	if len(collections) == 0 {
		logger.Warn("no collections configured")
		return &domain.SyncSummary{Result: ResultNoCollections, RunID: runID}, nil
	}

	if only != nil {
		selected := make([]domain.Collection, 0, len(only))
		for _, col := range collections {
			if _, ok := only[col.ID]; ok {
				selected = append(selected, col)
			}
		}
		collections = selected
	}

	source := s.sources(app.Patreon.SessionCookie)
	logger.Info("starting sync",
		"source_name", source.Name(),
		"collections", len(collections),
	)

	summary := &domain.SyncSummary{
		Result:      ResultCompleted,
		Collections: len(collections),
		RunID:       runID,
	}

	for _, col := range collections {
		if col.Complete {
			logger.Info("skipping complete collection", "collection_id", col.ID, "name", col.Name)
			continue
		}

		stats, err := s.SyncCollection(ctx, source, col, runID)
		if errors.Is(err, domain.ErrCollectionBusy) {
			logger.Warn("collection is being synced elsewhere, skipping", "collection_id", col.ID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("sync collection %s: %w", col.ID, err)
		}
		summary.Stats = append(summary.Stats, *stats)
	}

	logger.Info("sync run finished", "collections", summary.Collections, "synced", len(summary.Stats))
	return summary, nil
}

// SyncCollection downloads the viewable posts of one collection that are not
// on disk or in the content store yet, then rewrites its index.json.
func (s *SyncService) SyncCollection(ctx context.Context, source Source, col domain.Collection, runID string) (*domain.SyncStats, error) {
	startTime := s.now()
	logger := s.logger.With("run_id", runID, "collection_id", col.ID)

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, "collection:"+col.ID)
		if err != nil {
			return nil, fmt.Errorf("lock collection: %w", err)
		}
		defer func() {
			if err := unlock(); err != nil {
				logger.Warn("failed to release collection lock", "error", err)
			}
		}()
	}

	logger.Info("syncing collection", "name", col.Name, "campaign_id", col.CampaignID)

	creator, err := source.CreatorName(ctx, col.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("fetch campaign: %w", err)
	}
	if creator == "" {
		creator = domain.UnknownCreator
	}

	posts, err := source.CollectionPosts(ctx, col.ID, col.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}

	viewable := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if p.CanView {
			viewable = append(viewable, p)
		}
	}

	downloaded, err := s.downloadedPostIDs(ctx, col.ID, viewable)
	if err != nil {
		return nil, fmt.Errorf("list downloaded posts: %w", err)
	}

	stats := &domain.SyncStats{
		CollectionID: col.ID,
		Fetched:      len(posts),
		Viewable:     len(viewable),
		Existing:     len(downloaded),
	}

	listing := make([]domain.PostMetadata, 0, len(viewable))
	for _, post := range viewable {
		meta := post.Metadata(col.ID, col.Name, creator)
		listing = append(listing, meta)

		if _, ok := downloaded[post.ID]; ok {
			continue
		}

		event, data, err := s.savePost(post, meta)
		if err != nil {
			stats.Errors++
			logger.Error("failed to save post", "post_id", post.ID, "error", err)
			continue
		}
		stats.New++
		event.RunID = runID

		if s.archiver != nil {
			if err := s.archiver.Upload(ctx, domain.DocumentID(col.ID, post.ID), data); err != nil {
				stats.Errors++
				logger.Warn("failed to archive post", "post_id", post.ID, "error", err)
			} else {
				stats.Archived++
			}
		}

		if s.publisher != nil {
			if err := s.publisher.Publish(ctx, event); err != nil {
				stats.Errors++
				logger.Warn("failed to publish post event", "post_id", post.ID, "error", err)
			} else {
				stats.Published++
			}
		}
	}

	stats.PostCount = stats.Existing + stats.New
	syncedAt := s.now()

	err = s.files.WriteCollectionMetadata(&domain.CollectionMetadata{
		ID:         col.ID,
		Name:       col.Name,
		CampaignID: col.CampaignID,
		LastSync:   syncedAt.UTC().Format(lastSyncLayout),
		PostCount:  stats.PostCount,
		Posts:      listing,
	})
	if err != nil {
		return stats, fmt.Errorf("write collection metadata: %w", err)
	}

	if err := s.updateSyncState(ctx, col.ID, runID, syncedAt, stats); err != nil {
		return stats, fmt.Errorf("update sync state: %w", err)
	}

	stats.Duration = s.now().Sub(startTime)

	logger.Info("collection synced",
		"viewable", stats.Viewable,
		"existing", stats.Existing,
		"new", stats.New,
		"errors", stats.Errors,
		"post_count", stats.PostCount,
		"duration", stats.Duration,
	)

	return stats, nil
}

// downloadedPostIDs merges the markup files on disk with the posts the content
// store already holds.
func (s *SyncService) downloadedPostIDs(ctx context.Context, collectionID string, posts []domain.Post) (map[string]struct{}, error) {
	downloaded, err := s.files.DownloadedPostIDs(collectionID)
	if err != nil {
		return nil, err
	}
	if downloaded == nil {
		downloaded = make(map[string]struct{})
	}

	if s.index == nil || len(posts) == 0 {
		return downloaded, nil
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	stored, err := s.index.ExistingPostIDs(ctx, collectionID, ids)
	if err != nil {
		s.logger.Warn("content store unavailable, using directory scan only",
			"collection_id", collectionID,
			"error", err,
		)
		return downloaded, nil
	}

	for id := range stored {
		downloaded[id] = struct{}{}
	}
	return downloaded, nil
}

// savePost converts a post and writes its markup file. The rich-text document
// is preferred; the HTML body is used when it is missing or yields nothing.
func (s *SyncService) savePost(post domain.Post, meta domain.PostMetadata) (*domain.PostEvent, []byte, error) {
	var body string
	source := domain.ContentSourceJSON

	ok := false
	if post.ContentJSON != nil {
		body, ok = s.translator.ToMarkdown(*post.ContentJSON)
	}
	if !ok {
		source = domain.ContentSourceHTML
		var err error
		body, err = s.html.Convert(post.HTML)
		if err != nil {
			return nil, nil, fmt.Errorf("convert html: %w", err)
		}
	}

	data := []byte(markup.Write(meta, body))
	path, err := s.files.WritePost(meta.CollectionID, post.ID, data)
	if err != nil {
		return nil, nil, fmt.Errorf("write post: %w", err)
	}

	s.logger.Debug("saved post",
		"collection_id", meta.CollectionID,
		"post_id", post.ID,
		"source", source,
		"path", path,
	)

	return &domain.PostEvent{
		Post:     meta,
		Path:     path,
		Source:   source,
		Bytes:    len(data),
		SyncedAt: s.now().UTC(),
	}, data, nil
}

func (s *SyncService) updateSyncState(ctx context.Context, collectionID, runID string, syncedAt time.Time, stats *domain.SyncStats) error {
	if s.syncState == nil {
		return nil
	}

	state, err := s.syncState.Get(ctx, collectionID)
	if err != nil {
		return err
	}

	state.CollectionID = collectionID
	state.LastSyncedAt = syncedAt
	state.PostCount = int64(stats.PostCount)
	state.TotalSynced += int64(stats.New)
	state.LastRunID = runID

	return s.syncState.Update(ctx, state)
}
