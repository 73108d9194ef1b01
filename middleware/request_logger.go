package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lizhe2004/xunjie-tts-open-api/application/ports/outbound"
)

const RequestIDHeader = "X-Request-Id"

// RequestLogger tags every request with an id and logs method, path, and
// client address.
func RequestLogger(logger outbound.LoggerPort) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header(RequestIDHeader, requestID)

		logger.InfoWithFields("Incoming request", map[string]interface{}{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"client_ip":  c.ClientIP(),
		})

		c.Next()
	}
}
