package response

import (
	"github.com/gin-gonic/gin"
)

// Message sends a body carrying only a human-readable message. The wire
// format is the one the legacy consumers of this API already parse.
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

// Error sends an error body: {message} plus an optional errors list for
// field validation failures.
func Error(c *gin.Context, code int, message string, errs []string) {
	body := gin.H{"message": message}
	if len(errs) > 0 {
		body["errors"] = errs
	}
	c.JSON(code, body)
}
