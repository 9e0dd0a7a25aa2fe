package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndParse(t *testing.T) {
	svc := NewAdminTokenService("secret", time.Hour)
	token, err := svc.Generate("64b000000000000000000001", "root")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.ID != "64b000000000000000000001" || claims.Username != "root" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestParseExpired(t *testing.T) {
	svc := NewAdminTokenService("secret", time.Minute)
	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }
	token, err := svc.Generate("id", "root")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	svc.now = time.Now
	if _, err := svc.Parse(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestParseRejectsForeignSecretAndGarbage(t *testing.T) {
	token, _ := NewAdminTokenService("other", time.Hour).Generate("id", "root")
	svc := NewAdminTokenService("secret", time.Hour)
	if _, err := svc.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign secret, got %v", err)
	}
	if _, err := svc.Parse("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestUnconfiguredSecret(t *testing.T) {
	svc := NewAdminTokenService("", time.Hour)
	if _, err := svc.Generate("id", "root"); !errors.Is(err, ErrSecretUnconfigured) {
		t.Fatalf("expected ErrSecretUnconfigured, got %v", err)
	}
	if _, err := svc.Parse("x"); !errors.Is(err, ErrSecretUnconfigured) {
		t.Fatalf("expected ErrSecretUnconfigured, got %v", err)
	}
}
