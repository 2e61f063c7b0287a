package domain

import "encoding/json"

const (
	UntitledPost   = "Untitled Post"
	UnknownCreator = "Unknown Creator"
)

// PostMetadata is written into the frontmatter of every markup file and
// listed in the collection index.
type PostMetadata struct {
	Title          string `json:"title" yaml:"title" db:"title"`
	PostID         string `json:"postId" yaml:"postId" db:"post_id"`
	PublishedAt    string `json:"publishedAt" yaml:"publishedAt" db:"published_at"`
	Author         string `json:"author" yaml:"author" db:"author"`
	CollectionName string `json:"collectionName" yaml:"collectionName" db:"collection_name"`
	CollectionID   string `json:"collectionId" yaml:"collectionId" db:"collection_id"`
}

// Post is a remote post reduced to the fields the mirror consumes.
type Post struct {
	ID          string
	Title       string
	HTML        string
	ContentJSON *string
	PublishedAt string
	URL         string
	PostType    string
	CanView     bool
	CampaignID  string
	UserID      string
}

// Metadata builds the frontmatter record for a post of a collection.
func (p Post) Metadata(collectionID, collectionName, author string) PostMetadata {
	title := p.Title
	if title == "" {
		title = UntitledPost
	}

	return PostMetadata{
		Title:          title,
		PostID:         p.ID,
		PublishedAt:    p.PublishedAt,
		Author:         author,
		CollectionName: collectionName,
		CollectionID:   collectionID,
	}
}

// RenderedDocument is a parsed markup file ready to be served.
type RenderedDocument struct {
	PostMetadata
	ID          string          `json:"id" db:"id"`
	Body        json.RawMessage `json:"body" db:"body"`
	Description string          `json:"description" db:"description"`
	ContentHash string          `json:"contentHash" db:"content_hash"`
}

// DocumentID is the storage key of a rendered post.
func DocumentID(collectionID, postID string) string {
	return "content/" + collectionID + "/posts/" + postID + ".md"
}
