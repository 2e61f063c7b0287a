package domain

import "time"

// SyncStats holds statistics about a single collection sync.
type SyncStats struct {
	CollectionID string
	Fetched      int
	Viewable     int
	Existing     int
	New          int
	Errors       int
	Published    int
	Archived     int
	PostCount    int
	Duration     time.Duration
}

// SyncSummary is the result of a whole sync run.
type SyncSummary struct {
	Result      string      `json:"result"`
	Collections int         `json:"collections"`
	RunID       string      `json:"runId,omitempty"`
	Stats       []SyncStats `json:"-"`
}

const (
	ContentSourceJSON = "json"
	ContentSourceHTML = "html"
)

// PostEvent announces a markup file written by a sync run.
type PostEvent struct {
	RunID    string       `json:"runId"`
	Post     PostMetadata `json:"post"`
	Path     string       `json:"path"`
	Source   string       `json:"source"`
	Bytes    int          `json:"bytes"`
	SyncedAt time.Time    `json:"syncedAt"`
}
