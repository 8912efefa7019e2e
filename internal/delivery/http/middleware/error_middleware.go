package middleware

import (
	"errors"
	"net/http"

	"go-contact-backend/internal/delivery/http/response"
	"go-contact-backend/pkg/apperror"
	"go-contact-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the gin context into the JSON
// envelope. AppErrors keep their status and message; everything else is
// logged server-side and downgraded to a generic 500 so internal detail
// never reaches the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, appErr.Errs)
			} else {
				requestID, _ := c.Get("RequestID")
				logger.Log.Error("unhandled request error",
					"error", err,
					"path", c.FullPath(),
					"request_id", requestID,
				)
				response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
			}
		}
	}
}

// Recovery maps panics to the same generic 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Log.Error("panic recovered", "panic", recovered, "path", c.FullPath())
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
		c.Abort()
	})
}
