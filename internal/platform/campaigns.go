package platform

import (
	"context"
	"fmt"
	"time"
)

// Campaign represents a marketing campaign.
type Campaign struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id"`
	Name      string    `json:"name"`
	Objective string    `json:"objective"`
	Channel   string    `json:"channel"`
	Status    string    `json:"status"`
	Budget    float64   `json:"budget"`
	Spend     float64   `json:"spend"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCampaignRequest represents a request to create a campaign.
type CreateCampaignRequest struct {
	OrgID     string  `json:"org_id"`
	Name      string  `json:"name"`
	Objective string  `json:"objective"`
	Channel   string  `json:"channel"`
	Budget    float64 `json:"budget,omitempty"`
}

// ListCampaigns retrieves all campaigns for an organization.
func (c *Client) ListCampaigns(ctx context.Context, orgID string) ([]Campaign, error) {
	var campaigns []Campaign
	if err := c.get(ctx, "/api/v1/campaigns"+orgQuery(orgID), &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

// CreateCampaign creates a new campaign.
func (c *Client) CreateCampaign(ctx context.Context, req CreateCampaignRequest) (*Campaign, error) {
	var campaign Campaign
	if err := c.post(ctx, "/api/v1/campaigns", req, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

// GetCampaign retrieves a campaign by ID.
func (c *Client) GetCampaign(ctx context.Context, campaignID string) (*Campaign, error) {
	path := fmt.Sprintf("/api/v1/campaigns/%s", campaignID)

	var campaign Campaign
	if err := c.get(ctx, path, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}
