package platform

import (
	"context"
	"fmt"
	"time"
)

// Asset represents a creative asset (copy, image, video reference).
type Asset struct {
	ID          string    `json:"id"`
	OrgID       string    `json:"org_id"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	ContentURL  string    `json:"content_url,omitempty"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	SizeBytes   int64     `json:"size_bytes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateAssetRequest represents a request to register an asset.
// Fingerprint is the BLAKE3 hex digest of the asset content, used by the
// platform for deduplication.
type CreateAssetRequest struct {
	OrgID       string `json:"org_id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	ContentURL  string `json:"content_url,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`
}

// ListAssets retrieves all assets for an organization.
func (c *Client) ListAssets(ctx context.Context, orgID string) ([]Asset, error) {
	var assets []Asset
	if err := c.get(ctx, "/api/v1/assets"+orgQuery(orgID), &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// GetAsset retrieves an asset by ID.
func (c *Client) GetAsset(ctx context.Context, assetID string) (*Asset, error) {
	path := fmt.Sprintf("/api/v1/assets/%s", assetID)

	var asset Asset
	if err := c.get(ctx, path, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// CreateAsset registers a new asset.
func (c *Client) CreateAsset(ctx context.Context, req CreateAssetRequest) (*Asset, error) {
	var asset Asset
	if err := c.post(ctx, "/api/v1/assets", req, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}
