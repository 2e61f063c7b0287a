package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"seconddraft/internal/config"
	"seconddraft/internal/domain"
)

// AppConfigLoader reads config.json. It is called once per run so edits made
// by the operator between runs take effect.
type AppConfigLoader interface {
	LoadApp() (*config.AppConfig, error)
}

type Source interface {
	Name() string
	CreatorName(ctx context.Context, campaignID string) (string, error)
	CollectionPosts(ctx context.Context, collectionID, campaignID string) ([]domain.Post, error)
}

type Translator interface {
	ToMarkdown(raw string) (string, bool)
}

type HTMLConverter interface {
	Convert(html string) (string, error)
}

type FileStore interface {
	DownloadedPostIDs(collectionID string) (map[string]struct{}, error)
	WritePost(collectionID, postID string, data []byte) (string, error)
	WriteCollectionMetadata(meta *domain.CollectionMetadata) error
}

// ContentIndex reports which posts already have a rendered document.
type ContentIndex interface {
	ExistingPostIDs(ctx context.Context, collectionID string, ids []string) (map[string]struct{}, error)
}

type SyncStateStore interface {
	Get(ctx context.Context, collectionID string) (*domain.SyncState, error)
	Update(ctx context.Context, state *domain.SyncState) error
}

type Locker interface {
	Lock(ctx context.Context, key string) (unlock func() error, err error)
}

type Publisher interface {
	Publish(ctx context.Context, event *domain.PostEvent) error
	Close() error
}

type Archiver interface {
	Upload(ctx context.Context, key string, data []byte) error
}
