package patreon

import "seconddraft/internal/domain"

// ResourceRef points at another JSON:API resource.
type ResourceRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type Relationship struct {
	Data *ResourceRef `json:"data"`
}

// IncludedResource is a side-loaded resource of a response.
type IncludedResource struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Attributes map[string]any `json:"attributes"`
}

type PostAttributes struct {
	Title              string  `json:"title"`
	Content            string  `json:"content"`
	ContentJSONString  *string `json:"content_json_string"`
	PublishedAt        string  `json:"published_at"`
	URL                string  `json:"url"`
	PostType           string  `json:"post_type"`
	CurrentUserCanView bool    `json:"current_user_can_view"`
}

type PostRelationships struct {
	Campaign Relationship `json:"campaign"`
	User     Relationship `json:"user"`
}

type Post struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	Attributes    PostAttributes    `json:"attributes"`
	Relationships PostRelationships `json:"relationships"`
}

// Domain reduces an API post to the fields the mirror uses.
func (p Post) Domain() domain.Post {
	post := domain.Post{
		ID:          p.ID,
		Title:       p.Attributes.Title,
		HTML:        p.Attributes.Content,
		ContentJSON: p.Attributes.ContentJSONString,
		PublishedAt: p.Attributes.PublishedAt,
		URL:         p.Attributes.URL,
		PostType:    p.Attributes.PostType,
		CanView:     p.Attributes.CurrentUserCanView,
	}
	if ref := p.Relationships.Campaign.Data; ref != nil {
		post.CampaignID = ref.ID
	}
	if ref := p.Relationships.User.Data; ref != nil {
		post.UserID = ref.ID
	}
	return post
}

// PostDocument is the response of the single post endpoint.
type PostDocument struct {
	Data     Post               `json:"data"`
	Included []IncludedResource `json:"included"`
}

// PostsPage is one page of the post listing endpoint.
type PostsPage struct {
	Data     []Post             `json:"data"`
	Included []IncludedResource `json:"included"`
	Meta     *Meta              `json:"meta"`
}

type Meta struct {
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Total   int      `json:"total"`
	Cursors *Cursors `json:"cursors"`
}

type Cursors struct {
	Next *string `json:"next"`
}

// NextCursor returns the continuation token, or "" on the last page.
func (p *PostsPage) NextCursor() string {
	if p.Meta == nil || p.Meta.Pagination.Cursors == nil || p.Meta.Pagination.Cursors.Next == nil {
		return ""
	}
	return *p.Meta.Pagination.Cursors.Next
}

type CampaignAttributes struct {
	CreatedAt    string `json:"created_at"`
	CreationName string `json:"creation_name"`
	PatronCount  int    `json:"patron_count"`
	URL          string `json:"url"`
}

type CampaignRelationships struct {
	Creator Relationship `json:"creator"`
}

type CampaignData struct {
	ID            string                `json:"id"`
	Type          string                `json:"type"`
	Attributes    CampaignAttributes    `json:"attributes"`
	Relationships CampaignRelationships `json:"relationships"`
}

// Campaign is the response of the campaign endpoint.
type Campaign struct {
	Data     CampaignData       `json:"data"`
	Included []IncludedResource `json:"included"`
}

// CreatorID returns the id of the campaign owner, or "".
func (c *Campaign) CreatorID() string {
	if c.Data.Relationships.Creator.Data == nil {
		return ""
	}
	return c.Data.Relationships.Creator.Data.ID
}

type User struct {
	FullName string
	URL      string
}
