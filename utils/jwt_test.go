package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-123", "user@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	sub, err := ExtractIDFromToken(token)
	if err != nil {
		t.Fatalf("ExtractIDFromToken: %v", err)
	}
	if sub != "user-123" {
		t.Errorf("subject = %q, want %q", sub, "user-123")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-123", "user@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ExtractIDFromToken(token); err == nil {
		t.Fatal("expected an expired token to be rejected")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-123", "user@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ExtractIDFromToken(tampered); err == nil {
		t.Fatal("expected a tampered token to be rejected")
	}
}

func TestHashTokenStable(t *testing.T) {
	a := HashToken("some-token")
	b := HashToken("some-token")
	if a != b {
		t.Errorf("hash not deterministic: %q vs %q", a, b)
	}
	if a == HashToken("other-token") {
		t.Error("distinct tokens must not collide trivially")
	}
}
