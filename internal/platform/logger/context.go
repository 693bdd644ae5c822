package logger

import (
	"context"
	"log/slog"
)

// contextKey is a private type for context keys defined by this package.
type contextKey int

// loggerKey is the context key under which the request-scoped logger is stored.
const loggerKey contextKey = iota

// WithLogger returns a new context with the provided logger attached.
// Panics if the logger is nil; callers must always pass a valid logger.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing non-nil logger invariant
		panic("logger: WithLogger called with nil logger")
	}
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext retrieves the logger stored in the context.
// If no logger is present (or the context is nil), the process-wide
// default logger is returned so callers can always log safely.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}

// FromContextOrDefault retrieves the logger stored in the context, falling
// back to the provided default logger when the context has none. This is
// used by components that carry their own configured logger and prefer it
// over the process-wide default.
func FromContextOrDefault(ctx context.Context, defaultLogger *slog.Logger) *slog.Logger {
	if ctx == nil {
		return defaultLogger
	}
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return log
	}
	return defaultLogger
}
