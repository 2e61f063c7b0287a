package domain

import "time"

// CollectionMetadata is the content of content/{collectionId}/index.json.
type CollectionMetadata struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	CampaignID string         `json:"campaignId"`
	LastSync   string         `json:"lastSync"`
	PostCount  int            `json:"postCount"`
	Posts      []PostMetadata `json:"posts"`
}

// Collection is one configured remote source to mirror.
type Collection struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	CampaignID string `json:"campaignId" validate:"required"`
	Complete   bool   `json:"complete,omitempty"`
}

// SyncState is the per-collection bookkeeping row kept next to the content store.
type SyncState struct {
	CollectionID string    `db:"collection_id"`
	LastSyncedAt time.Time `db:"last_synced_at"`
	PostCount    int64     `db:"post_count"`
	TotalSynced  int64     `db:"total_synced"`
	LastRunID    string    `db:"last_run_id"`
}
