package session

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/neurocron/neurocron/internal/errors"
	"github.com/neurocron/neurocron/internal/log"
	"github.com/neurocron/neurocron/internal/platform"
)

// Destination is where the caller should take the user after a session
// transition.
type Destination string

const (
	DestDashboard  Destination = "dashboard"
	DestOnboarding Destination = "onboarding"
	DestLogin      Destination = "login"
)

// LoginResult reports the outcome of a login or registration attempt.
// Auth failures are reported here, not as returned errors; only
// transport-level failures surface as errors.
type LoginResult struct {
	OK          bool
	Destination Destination
	Message     string
}

// Manager is the single source of truth for the authenticated session.
// All state transitions go through its methods; every method takes the
// mutex, so callers never observe a half-applied transition.
type Manager struct {
	client *platform.Client
	store  *Store
	logger *log.Logger

	mu       sync.Mutex
	user     *platform.User
	org      *platform.Organization
	orgErr   error
	loading  bool
	resolved chan struct{}
	once     sync.Once
}

// NewManager creates a session manager. The manager starts in the
// loading state until Restore resolves it.
func NewManager(client *platform.Client, store *Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		client:   client,
		store:    store,
		logger:   logger.With("component", "session"),
		loading:  true,
		resolved: make(chan struct{}),
	}
}

// User returns the current user, or nil when unauthenticated.
func (m *Manager) User() *platform.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Organization returns the resolved organization. nil means either "no
// organization" (onboarding) or "lookup failed"; OrgErr distinguishes
// the two.
func (m *Manager) Organization() *platform.Organization {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.org
}

// OrgErr returns the error from the most recent organization lookup,
// or nil when the lookup succeeded (even with zero organizations).
func (m *Manager) OrgErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orgErr
}

// IsLoading reports whether the initial session restoration is still in
// flight.
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// IsLoggedIn reports whether a user is authenticated.
func (m *Manager) IsLoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

// Login authenticates with the platform. On success it persists the
// token pair, fetches the profile and organization list, and reports
// the destination: dashboard when at least one organization exists,
// onboarding otherwise. Invalid credentials leave the session state
// untouched and report destination login.
func (m *Manager) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	tokens, err := m.client.Login(ctx, email, password)
	if err != nil {
		if status := platform.StatusOf(err); status != 0 {
			m.logger.Debug("login rejected", "status", status)
			return &LoginResult{
				OK:          false,
				Destination: DestLogin,
				Message:     err.Error(),
			}, nil
		}
		return nil, errors.NewNetworkError(err)
	}

	if err := m.persistTokens(tokens, email, nil); err != nil {
		m.logger.Warn("failed to persist session", "error", err)
	}

	user, err := m.client.GetCurrentUser(ctx)
	if err != nil {
		// The login itself succeeded; degrade to a minimal user and
		// let onboarding sort the profile out.
		m.logger.Warn("profile fetch failed after login", "error", err)
		user = synthesizeUser(email)
		m.setSession(user, nil, nil)
		return &LoginResult{OK: true, Destination: DestOnboarding}, nil
	}

	if err := m.persistTokens(tokens, email, user); err != nil {
		m.logger.Warn("failed to persist session", "error", err)
	}

	org, orgErr := m.resolveOrganization(ctx)
	m.setSession(user, org, orgErr)

	dest := DestOnboarding
	if org != nil {
		dest = DestDashboard
	}
	return &LoginResult{OK: true, Destination: dest}, nil
}

// Register creates an account and logs in with the same credentials.
// A freshly fetched profile is preferred over the registration
// response's embedded user. New users always route to onboarding.
func (m *Manager) Register(ctx context.Context, fullName, email, password string) (*LoginResult, error) {
	if _, err := m.client.Register(ctx, fullName, email, password); err != nil {
		if status := platform.StatusOf(err); status != 0 {
			return &LoginResult{
				OK:          false,
				Destination: DestLogin,
				Message:     err.Error(),
			}, nil
		}
		return nil, errors.NewNetworkError(err)
	}

	result, err := m.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !result.OK {
		return result, nil
	}
	return &LoginResult{OK: true, Destination: DestOnboarding}, nil
}

// Logout clears the session. The server-side logout is best-effort:
// failures are logged, never returned, and local state is cleared
// regardless.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.client.Logout(ctx); err != nil {
		m.logger.Warn("server logout failed", "error", err)
	}

	m.client.SetToken("")
	m.setSession(nil, nil, nil)

	if err := m.store.Clear(); err != nil {
		return err
	}
	return nil
}

// RefreshUser re-fetches the profile and organization list, overwriting
// local state. Manual reconciliation; nothing calls this on a timer.
func (m *Manager) RefreshUser(ctx context.Context) error {
	user, err := m.client.GetCurrentUser(ctx)
	if err != nil {
		return err
	}

	org, orgErr := m.resolveOrganization(ctx)
	m.setSession(user, org, orgErr)

	if creds, loadErr := m.store.Load(); loadErr == nil {
		creds.User = user
		if err := m.store.Save(creds); err != nil {
			m.logger.Warn("failed to update cached user", "error", err)
		}
	}

	return nil
}

// Restore hydrates the session from the credential store at startup.
// It adopts the cached user when present, else fetches the profile; a
// rejected token clears the store. Loading is marked complete in every
// path.
func (m *Manager) Restore(ctx context.Context) error {
	defer m.finishLoading()

	creds, err := m.store.Load()
	if err != nil {
		if ncErr, ok := err.(*errors.NeuroCronError); ok && ncErr.Code == errors.ErrCodeAuthNotLoggedIn {
			return nil
		}
		return err
	}

	m.client.SetToken(creds.AccessToken)

	user := creds.User
	if user == nil {
		user, err = m.client.GetCurrentUser(ctx)
		if err != nil {
			if isTokenRejected(err) {
				return m.rejectStoredToken(err)
			}
			return err
		}
	}

	org, orgErr := m.resolveOrganization(ctx)
	if isTokenRejected(orgErr) {
		return m.rejectStoredToken(orgErr)
	}
	m.setSession(user, org, orgErr)
	return nil
}

// rejectStoredToken clears the persisted session after the platform
// refused the stored access token.
func (m *Manager) rejectStoredToken(cause error) error {
	m.logger.Info("stored token rejected, clearing session")
	m.client.SetToken("")
	m.setSession(nil, nil, nil)
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("failed to clear credentials", "error", err)
	}
	return errors.NewTokenRejectedError(cause)
}

func isTokenRejected(err error) bool {
	status := platform.StatusOf(err)
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

// RenewAccessToken exchanges the stored refresh token for a new token
// pair and persists it.
func (m *Manager) RenewAccessToken(ctx context.Context) error {
	creds, err := m.store.Load()
	if err != nil {
		return err
	}
	if creds.RefreshToken == "" {
		return errors.NewRefreshFailedError(nil)
	}

	tokens, err := m.client.RefreshSession(ctx, creds.RefreshToken)
	if err != nil {
		return errors.NewRefreshFailedError(err)
	}

	creds.AccessToken = tokens.AccessToken
	if tokens.RefreshToken != "" {
		creds.RefreshToken = tokens.RefreshToken
	}
	return m.store.Save(creds)
}

// resolveOrganization returns the first organization for the current
// user. A failed lookup returns a non-nil error distinct from the
// genuine zero-organizations case, so outages are never masked as
// onboarding.
func (m *Manager) resolveOrganization(ctx context.Context) (*platform.Organization, error) {
	orgs, err := m.client.ListOrganizations(ctx)
	if err != nil {
		m.logger.Warn("organization lookup failed", "error", err)
		return nil, errors.NewOrgLookupError(err)
	}
	if len(orgs) == 0 {
		return nil, nil
	}
	return &orgs[0], nil
}

// persistTokens writes the token pair and optional cached user to the
// credential store.
func (m *Manager) persistTokens(tokens *platform.LoginResponse, email string, user *platform.User) error {
	return m.store.Save(&Credentials{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Email:        email,
		User:         user,
	})
}

func (m *Manager) setSession(user *platform.User, org *platform.Organization, orgErr error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
	m.org = org
	m.orgErr = orgErr
}

func (m *Manager) finishLoading() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
	m.once.Do(func() { close(m.resolved) })
}

// Resolved returns a channel closed once the initial restoration has
// completed. The route guard blocks on it.
func (m *Manager) Resolved() <-chan struct{} {
	return m.resolved
}

// synthesizeUser builds the minimal fallback user adopted when the
// profile fetch fails after a successful login.
func synthesizeUser(email string) *platform.User {
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return &platform.User{
		ID:       "temp",
		Email:    email,
		FullName: name,
		IsActive: true,
	}
}
