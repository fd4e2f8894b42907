package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenExpired = errors.New("token expired")

// TokenClaims are the claims the storefront reads from a bearer token. Only
// expiry is checked here; the signature is the order service's concern and
// tokens are forwarded as-is.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// ParseToken decodes a token without verifying its signature. Opaque
// non-JWT tokens return an error.
func ParseToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// IsExpired reports whether the token carries an expiry that has passed.
// Tokens without an exp claim never expire locally.
func (c *TokenClaims) IsExpired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}

// CheckToken returns ErrTokenExpired for a JWT whose exp has passed. Tokens
// that are not JWTs are passed through untouched.
func CheckToken(tokenString string) error {
	claims, err := ParseToken(tokenString)
	if err != nil {
		return nil
	}
	if claims.IsExpired(time.Now()) {
		return ErrTokenExpired
	}
	return nil
}
