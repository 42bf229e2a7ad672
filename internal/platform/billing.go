package platform

import "context"

// Plan represents a subscription plan tier.
type Plan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	PriceMonthly float64  `json:"price_monthly"`
	Features     []string `json:"features"`
}

// Subscription represents an organization's active subscription.
type Subscription struct {
	OrgID            string `json:"org_id"`
	PlanID           string `json:"plan_id"`
	Status           string `json:"status"`
	CurrentPeriodEnd string `json:"current_period_end"`
	CancelAtEnd      bool   `json:"cancel_at_period_end"`
}

// Usage represents metered usage against plan limits.
type Usage struct {
	OrgID            string `json:"org_id"`
	CampaignsUsed    int    `json:"campaigns_used"`
	CampaignsLimit   int    `json:"campaigns_limit"`
	CopilotMessages  int    `json:"copilot_messages"`
	CopilotLimit     int    `json:"copilot_limit"`
	AuditRunsUsed    int    `json:"audit_runs_used"`
	AuditRunsLimit   int    `json:"audit_runs_limit"`
}

// CheckoutRequest represents a checkout session request.
type CheckoutRequest struct {
	OrgID  string `json:"org_id"`
	PlanID string `json:"plan_id"`
}

// PortalRequest represents a billing portal session request.
type PortalRequest struct {
	OrgID string `json:"org_id"`
}

// RedirectSession carries the URL the user opens in a browser to finish
// a billing flow.
type RedirectSession struct {
	URL string `json:"url"`
}

// ListPlans retrieves the available subscription plans.
func (c *Client) ListPlans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := c.get(ctx, "/api/v1/billing/plans", &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// GetSubscription retrieves the organization's subscription.
func (c *Client) GetSubscription(ctx context.Context, orgID string) (*Subscription, error) {
	var sub Subscription
	if err := c.get(ctx, "/api/v1/billing/subscription"+orgQuery(orgID), &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetUsage retrieves metered usage for the organization.
func (c *Client) GetUsage(ctx context.Context, orgID string) (*Usage, error) {
	var usage Usage
	if err := c.get(ctx, "/api/v1/billing/usage"+orgQuery(orgID), &usage); err != nil {
		return nil, err
	}
	return &usage, nil
}

// CreateCheckout creates a checkout session for a plan upgrade.
func (c *Client) CreateCheckout(ctx context.Context, orgID, planID string) (*RedirectSession, error) {
	req := CheckoutRequest{
		OrgID:  orgID,
		PlanID: planID,
	}

	var session RedirectSession
	if err := c.post(ctx, "/api/v1/billing/checkout", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// CreatePortal creates a billing portal session.
func (c *Client) CreatePortal(ctx context.Context, orgID string) (*RedirectSession, error) {
	req := PortalRequest{OrgID: orgID}

	var session RedirectSession
	if err := c.post(ctx, "/api/v1/billing/portal", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
