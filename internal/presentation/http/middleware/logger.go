package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billbook-api/pkg/logger"
)

// LoggerMiddleware emits one structured line per request
func LoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := response.RequestID(c)
		c.Set(response.RequestIDKey, requestID)
		c.Header(response.RequestIDHeader, requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"path", path,
		}
		if adminID, ok := AuthenticatedAdmin(c); ok {
			fields = append(fields, "admin_id", adminID)
		}

		switch {
		case len(c.Errors) > 0:
			log.Errorw(c.Errors.String(), fields...)
		case c.Writer.Status() >= 500:
			log.Warnw("request failed", fields...)
		default:
			log.Infow("request", fields...)
		}
	}
}
