package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "665f00000000000012345678",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestParseToken(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("expected no error parsing token, got: %v", err)
	}
	if claims.Subject != "665f00000000000012345678" {
		t.Errorf("unexpected subject %s", claims.Subject)
	}
	if claims.IsExpired(time.Now()) {
		t.Error("expected token to be valid")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token := signedToken(t, time.Now().Add(-time.Hour))

	if err := CheckToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestCheckTokenValid(t *testing.T) {
	if err := CheckToken(signedToken(t, time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestOpaqueTokenPassesThrough(t *testing.T) {
	if _, err := ParseToken("not-a-jwt"); err == nil {
		t.Error("expected parse error for opaque token")
	}
	if err := CheckToken("not-a-jwt"); err != nil {
		t.Errorf("expected opaque token to pass, got %v", err)
	}
}

func TestTokenWithoutExpiry(t *testing.T) {
	claims := &TokenClaims{}
	if claims.IsExpired(time.Now()) {
		t.Error("expected token without exp to be treated as unexpired")
	}
}
