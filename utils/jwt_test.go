package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Generate("session-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	sessionID, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sessionID != "session-123" {
		t.Fatalf("session id = %q, want session-123", sessionID)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", time.Hour)
	other := NewTokenManager("secret-b", time.Hour)

	token, err := tm.Generate("session-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := other.Parse(token); err == nil {
		t.Fatal("token signed with a different secret must not verify")
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret", -time.Minute)

	token, err := tm.Generate("session-123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := tm.Parse(token); err == nil {
		t.Fatal("expired token must not verify")
	}
}
