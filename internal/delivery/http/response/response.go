package response

import (
	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope shared by every endpoint. Errors carries the
// ordered validation message list when present.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Errors  []string    `json:"errors,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response with an optional ordered error list
func Error(c *gin.Context, code int, message string, errs []string) {
	c.JSON(code, Response{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}
