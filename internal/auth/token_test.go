package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue(42, "ann@x.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned empty token")
	}

	id, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if id.UserID != 42 {
		t.Errorf("UserID mismatch: got %d, want 42", id.UserID)
	}
	if id.Email != "ann@x.com" {
		t.Errorf("Email mismatch: got %q, want %q", id.Email, "ann@x.com")
	}
}

func TestTokenManager_Expired(t *testing.T) {
	t.Parallel()

	// Negative offset puts expiry in the past at issuance.
	tm := NewTokenManager("test-secret", time.Hour)
	tm.ttl = -time.Minute

	token, err := tm.Issue(1, "old@x.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = tm.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Expected ErrTokenExpired, got: %v", err)
	}
}

func TestTokenManager_TamperedSignature(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue(1, "ann@x.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("Expected 3 JWT segments, got %d", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = tm.Verify(tampered)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Expected ErrTokenInvalid, got: %v", err)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenManager("secret-a", time.Hour).Issue(1, "ann@x.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = NewTokenManager("secret-b", time.Hour).Verify(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Expected ErrTokenInvalid, got: %v", err)
	}
}

func TestTokenManager_Malformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"two segments", "aaaa.bbbb"},
		{"bad base64", "!!.!!.!!"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := tm.Verify(tt.token); !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("Expected ErrTokenInvalid for %q, got: %v", tt.token, err)
			}
		})
	}
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", 0)
	if tm.TTL() != DefaultTokenTTL {
		t.Errorf("Expected default TTL %v, got %v", DefaultTokenTTL, tm.TTL())
	}
}
