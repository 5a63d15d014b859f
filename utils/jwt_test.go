package utils

import (
	"testing"
	"time"

	"servicefinder/config"
)

func withSecret(t *testing.T, secret string) {
	t.Helper()
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = secret
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })
}

func TestGenerateAndParseToken(t *testing.T) {
	withSecret(t, "test-secret")

	tok, err := GenerateToken("user-1", "Asha", "provider", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseToken(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user-1" || claims.Role != "provider" || claims.Name != "Asha" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	withSecret(t, "test-secret")

	tok, err := GenerateToken("user-1", "", "user", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken(tok); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	withSecret(t, "secret-a")
	tok, err := GenerateToken("user-1", "", "user", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	config.AppConfig.JWTSecret = "secret-b"
	if _, err := ParseToken(tok); err == nil {
		t.Fatalf("expected signature mismatch")
	}
}
