// Package response provides the standard JSON error envelope.
package response

import (
	"log"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body for all non-2xx responses.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Error sends an error response, logging the underlying cause when given.
func Error(c *gin.Context, code int, message string, err error) {
	if err != nil {
		log.Printf("[http] %s %s -> %d: %s: %v", c.Request.Method, c.Request.URL.Path, code, message, err)
	}
	c.JSON(code, ErrorResponse{Message: message})
}

// BadRequest sends a 400 response; message names the offending parameter.
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message, nil)
}

// NotFound sends a 404 response.
func NotFound(c *gin.Context, message string) {
	Error(c, 404, message, nil)
}

// InternalError sends a 500 response.
func InternalError(c *gin.Context, message string, err error) {
	Error(c, 500, message, err)
}
