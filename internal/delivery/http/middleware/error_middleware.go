package middleware

import (
	"errors"
	"net/http"

	"new-recruitment-api/internal/delivery/http/response"
	"new-recruitment-api/pkg/apperror"
	"new-recruitment-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			} else {
				// Never expose internal error details to clients. Log the
				// actual error server-side and send a generic message.
				reqID, _ := c.Get("RequestID")
				logger.Log.Error("Unhandled error",
					"request_id", reqID,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"error", err,
				)
				response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
			}
		}
	}
}
