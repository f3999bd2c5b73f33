package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyMiddleware validates the x-api-key header against the configured key.
// An empty configured key disables authentication (development mode).
func APIKeyMiddleware(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}

		provided := c.GetHeader("x-api-key")
		if provided == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Missing x-api-key header",
			})
			c.Abort()
			return
		}

		// Constant-time comparison to prevent timing-based key enumeration.
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Invalid API key",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
