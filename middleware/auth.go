package middleware

import (
	"errors"
	"net/http"
	"strings"

	"storefront/utils"

	"github.com/gin-gonic/gin"
)

// TokenKey is the gin context key holding the caller's bearer token.
const TokenKey = "api_token"

// BearerToken extracts an optional bearer token and stores it under TokenKey.
// A malformed header or an expired JWT is rejected; a missing header is not.
func BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token := parts[1]
		if err := utils.CheckToken(token); err != nil {
			if errors.Is(err, utils.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired, please sign in again"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set(TokenKey, token)
		c.Next()
	}
}

// RequireToken rejects requests that reached it without a bearer token.
// It must run after BearerToken.
func RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Token(c) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Token returns the bearer token stored by BearerToken, or "".
func Token(c *gin.Context) string {
	return c.GetString(TokenKey)
}
