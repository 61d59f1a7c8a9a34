package middleware

import (
	"crypto/subtle"

	"new-recruitment-api/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// APIKeyHeader is the header every inbound request must carry.
const APIKeyHeader = "X-Api-Key"

// APIKey rejects requests that do not present the shared secret. An empty
// configured key rejects everything rather than waving everything through.
// The rejection goes through the error middleware like every other error.
func APIKey(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader(APIKeyHeader)
		if expected == "" || supplied == "" ||
			subtle.ConstantTimeCompare([]byte(supplied), []byte(expected)) != 1 {
			c.Error(apperror.Forbidden("Forbidden: Invalid API Key"))
			c.Abort()
			return
		}
		c.Next()
	}
}
