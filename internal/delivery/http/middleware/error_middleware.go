package middleware

import (
	"errors"
	"net/http"

	"tracefield-site/internal/delivery/http/response"
	"tracefield-site/pkg/apperror"
	"tracefield-site/pkg/logger"
	"tracefield-site/pkg/security"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Get().ErrorContext(c.Request.Context(), "Request failed",
					"status", appErr.Code,
					"path", c.FullPath(),
					"request_id", c.GetString(requestIDKey),
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		// SECURITY: Never expose internal error details to clients.
		logger.Get().ErrorContext(c.Request.Context(), "Internal Server Error",
			"path", c.FullPath(),
			"request_id", c.GetString(requestIDKey),
			"error", err,
		)
		security.DefaultLogger().Log(c.Request.Context(), security.SecurityEvent{
			Event:     security.EventServerError,
			IP:        c.ClientIP(),
			RequestID: c.GetString(requestIDKey),
			Details:   map[string]interface{}{"path": c.FullPath()},
		})
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
