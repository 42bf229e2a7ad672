package platform

import (
	"context"
	"time"
)

// AttributionOverview holds aggregate attribution metrics per channel.
type AttributionOverview struct {
	Model    string             `json:"model"`
	Revenue  float64            `json:"revenue"`
	Channels []ChannelBreakdown `json:"channels"`
}

// ChannelBreakdown attributes revenue and conversions to one channel.
type ChannelBreakdown struct {
	Channel     string  `json:"channel"`
	Revenue     float64 `json:"revenue"`
	Conversions int     `json:"conversions"`
	Share       float64 `json:"share"`
}

// Journey represents a single customer journey across touchpoints.
type Journey struct {
	ID          string     `json:"id"`
	ContactID   string     `json:"contact_id"`
	Touchpoints []string   `json:"touchpoints"`
	Converted   bool       `json:"converted"`
	Revenue     float64    `json:"revenue"`
	StartedAt   time.Time  `json:"started_at"`
	ConvertedAt *time.Time `json:"converted_at,omitempty"`
}

// GetAttributionOverview retrieves the attribution summary for an
// organization.
func (c *Client) GetAttributionOverview(ctx context.Context, orgID string) (*AttributionOverview, error) {
	var overview AttributionOverview
	if err := c.get(ctx, "/api/v1/attribution/overview"+orgQuery(orgID), &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// ListJourneys retrieves recent customer journeys for an organization.
func (c *Client) ListJourneys(ctx context.Context, orgID string) ([]Journey, error) {
	var journeys []Journey
	if err := c.get(ctx, "/api/v1/attribution/journeys"+orgQuery(orgID), &journeys); err != nil {
		return nil, err
	}
	return journeys, nil
}
