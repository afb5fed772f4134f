package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldPerformanceID is the standardized key for analysis task identifiers.
	FieldPerformanceID = "performance_id"
	// FieldUserID is the standardized key for user identifiers.
	FieldUserID = "user_id"
	// FieldTarget is the standardized key for moderation target references.
	FieldTarget = "target"
)

type contextKey struct{}

// IntoContext stores a logger on the context for downstream components.
func IntoContext(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext retrieves the context logger, falling back to a no-op logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return NewNop()
}

// WithComponent tags a logger with the component attribute.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}
