package patreon

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL   = "https://www.patreon.com/api"
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:147.0) Gecko/20100101 Firefox/147.0"
	MaxPageSize      = 100

	postFields = "title,content,content_json_string,published_at,url,post_type,current_user_can_view"
	userFields = "full_name,url"
)

// Config holds Patreon client configuration.
type Config struct {
	BaseURL       string
	SessionCookie string
	UserAgent     string
	PageSize      int
	Timeout       time.Duration
	RequestDelay  time.Duration
	// Limiter overrides the delay based limiter built from RequestDelay.
	Limiter Limiter
}

// APIError is returned for every non-2xx response. The client never retries.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("patreon api error: %s\n%s", e.Status, e.Body)
}

// Client talks to the Patreon web API with a browser session cookie.
type Client struct {
	http     *resty.Client
	limiter  Limiter
	pageSize int
	logger   *slog.Logger
}

// New creates a new Patreon client.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.PageSize <= 0 || cfg.PageSize > MaxPageSize {
		cfg.PageSize = MaxPageSize
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	limiter := cfg.Limiter
	if limiter == nil {
		limiter = NewRateLimiter(cfg.RequestDelay)
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Cookie", cfg.SessionCookie).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Referer", "https://www.patreon.com/home")

	return &Client{
		http:     httpClient,
		limiter:  limiter,
		pageSize: cfg.PageSize,
		logger:   logger.With("source", "patreon"),
	}
}

func (c *Client) request(ctx context.Context, endpoint string, params map[string]string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(endpoint)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}

	if !resp.IsSuccess() {
		return &APIError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       resp.String(),
		}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// GetCampaign fetches a campaign with its creator side-loaded.
func (c *Client) GetCampaign(ctx context.Context, campaignID string) (*Campaign, error) {
	var campaign Campaign
	err := c.request(ctx, "/campaigns/"+campaignID, map[string]string{
		"include":          "creator,channels",
		"fields[campaign]": "created_at,creation_name,patron_count,url",
		"fields[user]":     userFields,
	}, &campaign)
	if err != nil {
		return nil, fmt.Errorf("get campaign %s: %w", campaignID, err)
	}
	return &campaign, nil
}

// GetCampaignPosts follows the listing cursor until the server stops returning one.
func (c *Client) GetCampaignPosts(ctx context.Context, collectionID, campaignID string) ([]Post, error) {
	posts := make([]Post, 0)
	cursor := ""

	for page := 0; ; page++ {
		params := map[string]string{
			"filter[collection_id]": collectionID,
			"filter[campaign_id]":   campaignID,
			"include":               "user,campaign",
			"fields[post]":          postFields,
			"fields[user]":          userFields,
			"page[count]":           fmt.Sprintf("%d", c.pageSize),
		}
		if cursor != "" {
			params["page[cursor]"] = cursor
		}

		var resp PostsPage
		if err := c.request(ctx, "/posts", params, &resp); err != nil {
			return posts, fmt.Errorf("fetch page %d: %w", page, err)
		}

		posts = append(posts, resp.Data...)

		c.logger.Debug("fetched page",
			"collection_id", collectionID,
			"page", page,
			"posts", len(resp.Data),
			"total", len(posts),
		)

		cursor = resp.NextCursor()
		if cursor == "" {
			break
		}
	}

	return posts, nil
}

// GetPost fetches a single post.
func (c *Client) GetPost(ctx context.Context, postID string) (*PostDocument, error) {
	var doc PostDocument
	err := c.request(ctx, "/posts/"+postID, map[string]string{
		"include":      "user,campaign",
		"fields[post]": postFields,
		"fields[user]": userFields,
	}, &doc)
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", postID, err)
	}
	return &doc, nil
}

// ExtractUserFromIncluded finds a side-loaded user, or returns nil.
func ExtractUserFromIncluded(included []IncludedResource, userID string) *User {
	for _, item := range included {
		if item.Type != "user" || item.ID != userID {
			continue
		}

		user := &User{FullName: "Unknown"}
		if name, ok := item.Attributes["full_name"].(string); ok && name != "" {
			user.FullName = name
		}
		if url, ok := item.Attributes["url"].(string); ok {
			user.URL = url
		}
		return user
	}
	return nil
}
