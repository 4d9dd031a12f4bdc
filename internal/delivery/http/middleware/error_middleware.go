package middleware

import (
	"errors"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns errors attached to the gin context into the
// uniform response envelope. Unclassified errors are logged server-side
// and surface as an opaque 500 so internals never leak to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError && appErr.Err != nil {
				logger.Log.Error("request failed",
					"method", c.Request.Method,
					"path", c.FullPath(),
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Errs)
			return
		}

		logger.Log.Error("unhandled error",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
