package service

import (
	"errors"
	"testing"
	"time"
)

func TestAuthService_RoundTrip(t *testing.T) {
	auth := NewAuthService("secret", time.Hour)

	token, err := auth.GenerateJWT("user-1")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	userID, err := auth.VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("user id = %q", userID)
	}
}

func TestAuthService_Rejects(t *testing.T) {
	auth := NewAuthService("secret", time.Hour)
	other := NewAuthService("other-secret", time.Hour)
	expired := NewAuthService("secret", -time.Hour)

	foreign, _ := other.GenerateJWT("user-1")
	stale, _ := expired.GenerateJWT("user-1")

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"expired":      stale,
	} {
		_, err := auth.VerifyJWT(token)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: err = %v, want ErrInvalidToken", name, err)
		}
	}
}
