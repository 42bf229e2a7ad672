package platform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestParseResponse_ErrorDetail(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid token"}`))
	}))

	client := NewClient(server.URL)
	client.SetToken("stale-token")

	_, err := client.GetCurrentUser(context.Background())
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if err.Error() != "Invalid token" {
		t.Errorf("expected error message 'Invalid token', got %q", err.Error())
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.Status)
	}
	if StatusOf(err) != http.StatusUnauthorized {
		t.Errorf("StatusOf() = %d, want 401", StatusOf(err))
	}
}

func TestParseResponse_FallbackMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "non-JSON body",
			status:  http.StatusInternalServerError,
			body:    "upstream exploded",
			wantMsg: "request failed with status 500: upstream exploded",
		},
		{
			name:    "JSON without detail field",
			status:  http.StatusBadGateway,
			body:    `{"error":"nope"}`,
			wantMsg: `request failed with status 502: {"error":"nope"}`,
		},
		{
			name:    "empty body",
			status:  http.StatusServiceUnavailable,
			body:    "",
			wantMsg: "request failed with status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			client := NewClient(server.URL)
			_, err := client.ListOrganizations(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("expected %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestDoRequest_Headers(t *testing.T) {
	var gotAuth, gotContentType, gotRequestID string
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(User{ID: "u1", Email: "a@b.c"})
	}))

	client := NewClient(server.URL)
	client.SetToken("tok-123")

	if _, err := client.GetCurrentUser(context.Background()); err != nil {
		t.Fatalf("GetCurrentUser() error = %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("unexpected Authorization header: %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("unexpected Content-Type header: %q", gotContentType)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header not set")
	}
}

func TestDoRequest_NoTokenNoAuthHeader(t *testing.T) {
	var hadAuth bool
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		json.NewEncoder(w).Encode(LoginResponse{AccessToken: "at", RefreshToken: "rt", TokenType: "bearer"})
	}))

	client := NewClient(server.URL)
	if _, err := client.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if hadAuth {
		t.Error("Authorization header sent without a token")
	}
}

func TestLogin_SetsToken(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Email != "demo@neurocron.com" || req.Password != "demo123" {
			t.Errorf("unexpected credentials: %s / %s", req.Email, req.Password)
		}
		json.NewEncoder(w).Encode(LoginResponse{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			TokenType:    "bearer",
		})
	}))

	client := NewClient(server.URL)
	resp, err := client.Login(context.Background(), "demo@neurocron.com", "demo123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.AccessToken != "access-1" {
		t.Errorf("unexpected access token: %s", resp.AccessToken)
	}
	if client.Token != "access-1" {
		t.Errorf("client token not set after login, got %q", client.Token)
	}
}

func TestRefreshSession(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/refresh" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.RefreshToken != "refresh-1" {
			t.Errorf("unexpected refresh token: %s", req.RefreshToken)
		}
		json.NewEncoder(w).Encode(LoginResponse{
			AccessToken:  "access-2",
			RefreshToken: "refresh-2",
			TokenType:    "bearer",
		})
	}))

	client := NewClient(server.URL)
	resp, err := client.RefreshSession(context.Background(), "refresh-1")
	if err != nil {
		t.Fatalf("RefreshSession() error = %v", err)
	}
	if resp.AccessToken != "access-2" || client.Token != "access-2" {
		t.Errorf("refreshed token not applied: resp=%s client=%s", resp.AccessToken, client.Token)
	}
}

func TestOrgScopedQuery(t *testing.T) {
	var gotOrgID string
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOrgID = r.URL.Query().Get("org_id")
		json.NewEncoder(w).Encode([]Campaign{})
	}))

	client := NewClient(server.URL)
	if _, err := client.ListCampaigns(context.Background(), "org-42"); err != nil {
		t.Fatalf("ListCampaigns() error = %v", err)
	}
	if gotOrgID != "org-42" {
		t.Errorf("expected org_id query 'org-42', got %q", gotOrgID)
	}
}

func TestNetworkErrorIsNotAPIError(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url)
	_, err := client.ListOrganizations(context.Background())
	if err == nil {
		t.Fatal("expected error against closed server")
	}
	if StatusOf(err) != 0 {
		t.Errorf("transport failure should not carry an HTTP status, got %d", StatusOf(err))
	}
	if !strings.Contains(err.Error(), "failed to perform request") {
		t.Errorf("expected transport error wrapping, got %q", err.Error())
	}
}

func TestGetDashboard(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/dashboard/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Dashboard{
			Stats: DashboardStats{ActiveCampaigns: 3, TotalSpend: 1250.5},
			RecentCampaigns: []Campaign{
				{ID: "c1", Name: "Summer launch", Status: "active"},
			},
		})
	}))

	client := NewClient(server.URL)
	dash, err := client.GetDashboard(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("GetDashboard() error = %v", err)
	}
	if dash.Stats.ActiveCampaigns != 3 {
		t.Errorf("unexpected active campaigns: %d", dash.Stats.ActiveCampaigns)
	}
	if len(dash.RecentCampaigns) != 1 || dash.RecentCampaigns[0].ID != "c1" {
		t.Errorf("unexpected recent campaigns: %+v", dash.RecentCampaigns)
	}
}

func TestContextCancellation(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	client := NewClient(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.ListOrganizations(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
