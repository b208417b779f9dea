package jwt

import (
	"testing"
	"time"
)

func TestSignAndParseRoundTrip(t *testing.T) {
	tok, err := SignWithOptions("user-1", time.Minute, SignOptions{SessionID: "sess-9"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user-1" || claims.SessionID != "sess-9" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	tok, err := Sign("user-1", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := Parse(tok); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
