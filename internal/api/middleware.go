package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huangsam/maintscore/internal/iostore"
)

// Header and context keys for API key authentication.
const (
	apiKeyHeader   = "X-API-KEY"
	userContextKey = "user_email"
)

// apiKeyAuth resolves the X-API-KEY header to a user email. A missing header
// is a client mistake (400), an unknown or deleted key is a rejection (401).
func (s *Server) apiKeyAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(apiKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing API key"})
			return
		}

		userEmail, err := s.store.GetAPIKeyUser(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, iostore.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate API key"})
			return
		}

		c.Set(userContextKey, userEmail)
		c.Next()
	}
}

// authedUser returns the email resolved by the auth middleware.
func authedUser(c *gin.Context) string {
	return c.GetString(userContextKey)
}
