package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusMapper picks the HTTP status for an error a handler attached with c.Error
type StatusMapper func(err error) int

// ErrorHandler logs errors attached to the context and answers with a JSON
// error body. Panics are turned into a 500.
func ErrorHandler(statusFor StatusMapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("Error: %v", rec)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := statusFor(err)
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, ErrorResponse{Error: err.Error()})
	}
}
