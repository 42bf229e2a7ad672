package health

import (
	"context"
	"fmt"
	"os"

	"github.com/neurocron/neurocron/internal/session"
)

// CredentialsChecker verifies the persisted session: file presence,
// permissions, and readability.
type CredentialsChecker struct {
	store *session.Store
}

// NewCredentialsChecker creates a new credential store health checker.
func NewCredentialsChecker(store *session.Store) *CredentialsChecker {
	return &CredentialsChecker{store: store}
}

// Name returns the name of this health check.
func (c *CredentialsChecker) Name() string {
	return "credentials"
}

// Check inspects the credential store.
// Returns:
//   - Healthy if a readable session record with an access token exists
//   - Degraded if no session exists or permissions are loose
//   - Unhealthy if the record exists but cannot be read
func (c *CredentialsChecker) Check(ctx context.Context) *Result {
	path := c.store.Path()

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return Degraded("not logged in").
			WithDetail("path", path).
			WithDetail("suggestion", "Run 'neurocron auth login'")
	}
	if err != nil {
		return Unhealthy("cannot stat credentials file").
			WithDetail("path", path).
			WithDetail("error", err.Error())
	}

	if perm := info.Mode().Perm(); perm != 0600 {
		return Degraded("credentials file permissions are too open").
			WithDetail("path", path).
			WithDetail("mode", fmt.Sprintf("%04o", perm)).
			WithDetail("suggestion", fmt.Sprintf("Run 'chmod 600 %s'", path))
	}

	creds, err := c.store.Load()
	if err != nil {
		return Unhealthy("credentials file is unreadable").
			WithDetail("path", path).
			WithDetail("error", err.Error()).
			WithDetail("suggestion", "Run 'neurocron auth login' to replace it")
	}

	if creds.AccessToken == "" {
		return Degraded("credentials file has no access token").
			WithDetail("path", path).
			WithDetail("suggestion", "Run 'neurocron auth login'")
	}

	return Healthy("session credentials present").
		WithDetail("path", path).
		WithDetail("email", creds.Email).
		WithDetail("saved_at", creds.SavedAt.String())
}
