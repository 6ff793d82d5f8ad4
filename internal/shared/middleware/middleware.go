package middleware

import (
	"time"

	"cinebook/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID assigns a request ID to every inbound request, reusing the
// caller's header when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// RequestLogger logs every completed request with method, path, status and
// duration.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		requestLog := log
		if requestID, exists := c.Get("request_id"); exists {
			if id, ok := requestID.(string); ok {
				requestLog = log.WithRequestID(id)
			}
		}
		requestLog.LogHTTPRequest(c, time.Since(start))
	}
}
