package platform

import "context"

// Organization represents a tenant workspace scoping resource ownership.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Plan string `json:"plan"`
}

// CreateOrganizationRequest represents a request to create an organization.
type CreateOrganizationRequest struct {
	Name string `json:"name"`
}

// ListOrganizations retrieves the organizations the authenticated user
// belongs to.
func (c *Client) ListOrganizations(ctx context.Context) ([]Organization, error) {
	var orgs []Organization
	if err := c.get(ctx, "/api/v1/organizations", &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// CreateOrganization creates a new organization owned by the
// authenticated user. This is the onboarding step for users with no
// organization yet.
func (c *Client) CreateOrganization(ctx context.Context, name string) (*Organization, error) {
	req := CreateOrganizationRequest{Name: name}

	var org Organization
	if err := c.post(ctx, "/api/v1/organizations", req, &org); err != nil {
		return nil, err
	}
	return &org, nil
}
