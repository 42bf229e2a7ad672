package platform

import (
	"context"
	"time"
)

// Competitor represents a tracked competitor.
type Competitor struct {
	ID           string    `json:"id"`
	OrgID        string    `json:"org_id"`
	Name         string    `json:"name"`
	Domain       string    `json:"domain"`
	AdSpend      float64   `json:"ad_spend"`
	ShareOfVoice float64   `json:"share_of_voice"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Insight represents a competitive or market insight.
type Insight struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Severity  string    `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

// BrandProfile summarizes how the platform sees the organization's brand.
type BrandProfile struct {
	OrgID      string   `json:"org_id"`
	Voice      string   `json:"voice"`
	Keywords   []string `json:"keywords"`
	Sentiment  float64  `json:"sentiment"`
	Mentions30 int      `json:"mentions_30d"`
}

// ListCompetitors retrieves the tracked competitors for an organization.
func (c *Client) ListCompetitors(ctx context.Context, orgID string) ([]Competitor, error) {
	var competitors []Competitor
	if err := c.get(ctx, "/api/v1/intelligence/competitors"+orgQuery(orgID), &competitors); err != nil {
		return nil, err
	}
	return competitors, nil
}

// ListInsights retrieves recent market insights for an organization.
func (c *Client) ListInsights(ctx context.Context, orgID string) ([]Insight, error) {
	var insights []Insight
	if err := c.get(ctx, "/api/v1/intelligence/insights"+orgQuery(orgID), &insights); err != nil {
		return nil, err
	}
	return insights, nil
}

// GetBrandProfile retrieves the organization's brand profile.
func (c *Client) GetBrandProfile(ctx context.Context, orgID string) (*BrandProfile, error) {
	var profile BrandProfile
	if err := c.get(ctx, "/api/v1/intelligence/brand"+orgQuery(orgID), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
