package patreon

import (
	"context"

	"seconddraft/internal/domain"
)

const SourceName = "Patreon"

// Source adapts a Client to the domain types used by the sync engine.
type Source struct {
	client *Client
}

// NewSource wraps an existing client.
func NewSource(client *Client) *Source {
	return &Source{client: client}
}

// Name returns human-readable name.
func (s *Source) Name() string {
	return SourceName
}

// CreatorName resolves the display name of the campaign owner. It returns ""
// when the campaign does not side-load its creator.
func (s *Source) CreatorName(ctx context.Context, campaignID string) (string, error) {
	campaign, err := s.client.GetCampaign(ctx, campaignID)
	if err != nil {
		return "", err
	}

	user := ExtractUserFromIncluded(campaign.Included, campaign.CreatorID())
	if user == nil {
		return "", nil
	}
	return user.FullName, nil
}

// CollectionPosts lists every post of a collection, viewable or not.
func (s *Source) CollectionPosts(ctx context.Context, collectionID, campaignID string) ([]domain.Post, error) {
	posts, err := s.client.GetCampaignPosts(ctx, collectionID, campaignID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Post, len(posts))
	for i, p := range posts {
		out[i] = p.Domain()
	}
	return out, nil
}
