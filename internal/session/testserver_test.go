package session

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/neurocron/neurocron/internal/platform"
)

// newTestServer starts an HTTP server bound to IPv4-only loopback so tests work
// inside restricted sandboxes that forbid IPv6 listeners.
func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("unable to start test server: %v", err)
	}

	server := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	server.Start()
	t.Cleanup(server.Close)
	return server
}

// backend is a scriptable platform stub covering the auth and
// organization endpoints the session manager touches.
type backend struct {
	orgs         []platform.Organization
	orgStatus    int
	userStatus   int
	logoutStatus int
	loginCalls   int
	logoutCalls  int
	user         platform.User
}

func newBackend() *backend {
	return &backend{
		orgs: []platform.Organization{
			{ID: "org-1", Name: "Acme", Slug: "acme", Plan: "growth"},
		},
		user: platform.User{
			ID:         "user-1",
			Email:      "demo@neurocron.com",
			FullName:   "Demo User",
			IsActive:   true,
			IsVerified: true,
		},
	}
}

func (b *backend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v1/auth/login" && r.Method == "POST":
			b.loginCalls++
			var req platform.LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Email == "demo@neurocron.com" && req.Password == "demo123" {
				_ = json.NewEncoder(w).Encode(platform.LoginResponse{
					AccessToken:  "access-token",
					RefreshToken: "refresh-token",
					TokenType:    "bearer",
				})
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid email or password"}`))

		case r.URL.Path == "/api/v1/auth/register" && r.Method == "POST":
			_ = json.NewEncoder(w).Encode(platform.RegisterResponse{
				ID:    "user-1",
				Email: "demo@neurocron.com",
			})

		case r.URL.Path == "/api/v1/auth/logout" && r.Method == "POST":
			b.logoutCalls++
			if b.logoutStatus != 0 {
				w.WriteHeader(b.logoutStatus)
				_, _ = w.Write([]byte(`{"detail":"session already revoked"}`))
				return
			}
			w.WriteHeader(http.StatusOK)

		case r.URL.Path == "/api/v1/auth/refresh" && r.Method == "POST":
			var req platform.RefreshRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.RefreshToken != "refresh-token" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"detail":"Invalid refresh token"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(platform.LoginResponse{
				AccessToken:  "access-token-2",
				RefreshToken: "refresh-token-2",
				TokenType:    "bearer",
			})

		case r.URL.Path == "/api/v1/users/me" && r.Method == "GET":
			if b.userStatus != 0 {
				w.WriteHeader(b.userStatus)
				_, _ = w.Write([]byte(`{"detail":"Invalid token"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(b.user)

		case r.URL.Path == "/api/v1/organizations" && r.Method == "GET":
			if b.orgStatus != 0 {
				w.WriteHeader(b.orgStatus)
				_, _ = w.Write([]byte(`{"detail":"upstream unavailable"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(b.orgs)

		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"not found"}`))
		}
	})
}

// newTestManager wires a manager against the stub backend with an
// isolated on-disk store.
func newTestManager(t *testing.T, b *backend) (*Manager, *Store) {
	t.Helper()

	server := newTestServer(t, b.handler())
	client := platform.NewClient(server.URL)
	store := NewStoreAt(t.TempDir() + "/credentials.json")
	return NewManager(client, store, nil), store
}
