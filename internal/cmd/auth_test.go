package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	got := tokenExpiry(signedToken(t, jwt.MapClaims{"exp": exp.Unix()}))
	if got == nil {
		t.Fatal("expected an expiry, got nil")
	}
	if !got.Equal(exp) {
		t.Errorf("expiry = %v, want %v", got, exp)
	}
}

func TestTokenExpiryMissingClaim(t *testing.T) {
	if got := tokenExpiry(signedToken(t, jwt.MapClaims{"sub": "user_1"})); got != nil {
		t.Errorf("expected nil for a token without exp, got %v", got)
	}
}

func TestTokenExpiryMalformed(t *testing.T) {
	if got := tokenExpiry("not-a-jwt"); got != nil {
		t.Errorf("expected nil for a malformed token, got %v", got)
	}
}

func TestExpiryPhrase(t *testing.T) {
	future := expiryPhrase(time.Now().Add(59 * time.Minute))
	if !strings.HasPrefix(future, "in ") {
		t.Errorf("future phrase = %q, want prefix %q", future, "in ")
	}

	past := expiryPhrase(time.Now().Add(-5 * time.Minute))
	if !strings.HasPrefix(past, "expired ") || !strings.HasSuffix(past, " ago") {
		t.Errorf("past phrase = %q, want \"expired ... ago\"", past)
	}
}
