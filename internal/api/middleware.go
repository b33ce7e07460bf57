package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"gymsheet/training-app/internal/pkg/logger"
)

// RequestLogger emits one structured log line per request after the
// handler chain completes.
func RequestLogger(logg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"clientIp", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case c.Writer.Status() >= 500:
			logg.Error("request", fields...)
		case c.Writer.Status() >= 400:
			logg.Warn("request", fields...)
		default:
			logg.Info("request", fields...)
		}
	}
}
