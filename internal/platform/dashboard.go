package platform

import "context"

// DashboardStats holds the aggregate counters shown on the dashboard.
type DashboardStats struct {
	ActiveCampaigns   int     `json:"active_campaigns"`
	TotalSpend        float64 `json:"total_spend"`
	TotalConversions  int     `json:"total_conversions"`
	AttributedRevenue float64 `json:"attributed_revenue"`
	AudienceSize      int     `json:"audience_size"`
	UnreadInsights    int     `json:"unread_insights"`
}

// Dashboard represents the aggregate dashboard payload.
type Dashboard struct {
	Stats           DashboardStats `json:"stats"`
	RecentCampaigns []Campaign     `json:"recent_campaigns"`
}

// GetDashboard retrieves aggregate stats and recent campaigns for an
// organization. The trailing slash matches the platform's route.
func (c *Client) GetDashboard(ctx context.Context, orgID string) (*Dashboard, error) {
	var dash Dashboard
	if err := c.get(ctx, "/api/v1/dashboard/"+orgQuery(orgID), &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}
