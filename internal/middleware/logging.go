package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// contextKey keeps this package's context values from colliding with others.
type contextKey string

const loggerCtxKey = contextKey("logger")

// StructuredLoggingMiddleware attaches a request-scoped slog logger to the
// request context and emits one completion line per request. Every log line
// downstream of this middleware carries the same request_id.
func StructuredLoggingMiddleware(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		reqLogger := base.With(
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)

		c.Header("X-Request-ID", requestID)

		// Services receive a plain context.Context, so the logger rides on the
		// request context rather than gin's keys.
		ctx := context.WithValue(c.Request.Context(), loggerCtxKey, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		reqLogger.Info("request completed",
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// GetLoggerFromCtx returns the request-scoped logger, or slog.Default when
// the context was not produced by StructuredLoggingMiddleware.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
