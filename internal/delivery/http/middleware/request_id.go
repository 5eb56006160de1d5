package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-screening-backend/internal/domain"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an identifier and echoes it back.
// A short client-supplied ID is honored so callers can correlate logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(string(domain.KeyRequestID), id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
