package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/delivery/http/response"
	"recruitment-platform/pkg/apperror"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Kind == apperror.KindInternal {
					slog.Error("request failed",
						"path", c.FullPath(),
						"method", c.Request.Method,
						"error", appErr.Unwrap(),
					)
				}
				response.Error(c, appErr.Code, appErr.Message, gin.H{"kind": appErr.Kind})
			} else {
				// Never expose internal error details to clients.
				slog.Error("unhandled error", "path", c.FullPath(), "error", err)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
