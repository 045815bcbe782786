// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware handles API key authentication.
type AuthMiddleware struct {
	apiKey string
	header string
}

// NewAuthMiddleware creates a new AuthMiddleware. header is the request
// header carrying the key, e.g. X-API-Key.
func NewAuthMiddleware(apiKey, header string) *AuthMiddleware {
	return &AuthMiddleware{
		apiKey: apiKey,
		header: header,
	}
}

// Authenticate returns a gin middleware that validates the API key header.
// Auth failure is the only path allowed to produce a non-success response on
// the conversational endpoints.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(m.header)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "missing API key",
			})
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "invalid API key",
			})
			return
		}

		c.Next()
	}
}
