package services

import (
	"context"
	"log/slog"

	"github.com/agritrack/plot_capacity_app/internal/middleware"
)

// BaseService is embedded by every service to share logging helpers.
type BaseService struct{}

// GetLogger resolves the request-scoped logger from the context, falling
// back to the process default.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	if l := middleware.GetLoggerFromCtx(ctx); l != nil {
		return l
	}
	return slog.Default()
}

// LogError logs err at error level with any extra key-value pairs.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := append([]any{slog.String("error", err.Error())}, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs at info level.
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs at debug level.
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}
