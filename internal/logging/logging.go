// Package logging provides slog helpers shared across the application:
// environment-aware logger construction, context propagation, and a few
// canonical log shapes (HTTP requests, errors).
package logging

import (
	"context"
	"log/slog"
	"os"

	"wayplan.openmobility.org/internal/appconf"
)

type contextKey struct{}

// NewLogger builds the application logger. Production logs JSON at Info,
// development logs text at Debug (or Info when verbose is off).
func NewLogger(env appconf.Environment, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if env == appconf.Production {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler).With(slog.String("env", env.String()))
}

// WithLogger stores the logger in the context for downstream handlers.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the context logger, or slog.Default when none is set.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// LogHTTPRequest logs one served HTTP request in the canonical shape.
func LogHTTPRequest(logger *slog.Logger, method, path string, status int, durationMs float64, attrs ...any) {
	base := []any{
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("duration_ms", durationMs),
	}
	logger.Info("http request", append(base, attrs...)...)
}

// LogError logs an error with a stable attribute name.
func LogError(logger *slog.Logger, msg string, err error, attrs ...any) {
	base := []any{slog.Any("error", err)}
	logger.Error(msg, append(base, attrs...)...)
}
