package middleware

import (
	"strconv"
	"time"

	"github.com/Domenick1991/flightrecords/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller's X-Request-ID or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Logger writes one entry per request, plus the errors handlers attached
// to the context.
func Logger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"route", route(c),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			logger.Errorw(c.Errors.String(), fields...)
			return
		}
		logger.Infow("HTTP request completed", fields...)
	}
}

func Metrics(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		r := route(c)
		reg.HTTPRequestsTotal.WithLabelValues(r, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		reg.HTTPRequestDuration.WithLabelValues(r, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

func route(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unknown"
}
