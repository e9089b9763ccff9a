package logger

import (
	"context"
	"log/slog"
	"time"
)

// SlogAdapter implements Logger on top of the stdlib log/slog package.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a slog-backed Logger with JSON encoding,
// pre-configured with service name and environment fields. Output and
// rotation are customized via functional options.
func NewSlogAdapter(appName, env string, opts ...Option) *SlogAdapter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	handler := slog.NewJSONHandler(cfg.GetWriter(), &slog.HandlerOptions{
		Level: toSlogLevel(cfg.Level),
	})
	return &SlogAdapter{
		logger: slog.New(handler).With(
			slog.String("service", appName),
			slog.String("env", env),
		),
	}
}

// Debug logs a message at DebugLevel with the given key-value pairs.
func (a *SlogAdapter) Debug(msg string, args ...any) { a.logger.Debug(msg, args...) }

// Info logs a message at InfoLevel with the given key-value pairs.
func (a *SlogAdapter) Info(msg string, args ...any) { a.logger.Info(msg, args...) }

// Warn logs a message at WarnLevel with the given key-value pairs.
func (a *SlogAdapter) Warn(msg string, args ...any) { a.logger.Warn(msg, args...) }

// Error logs a message at ErrorLevel with the given key-value pairs.
func (a *SlogAdapter) Error(msg string, args ...any) { a.logger.Error(msg, args...) }

// Ctx returns a logger enriched with the request ID from the context, or the
// receiver when none is present.
func (a *SlogAdapter) Ctx(ctx context.Context) Logger {
	requestID := GetRequestID(ctx)
	if requestID == "" {
		return a
	}
	return &SlogAdapter{logger: a.logger.With("request_id", requestID)}
}

// With returns a logger with the given key-value pairs added to all
// subsequent records.
func (a *SlogAdapter) With(args ...any) Logger {
	return &SlogAdapter{logger: a.logger.With(args...)}
}

// Log logs a message at the given level with structured attributes. The
// level is checked first so disabled records allocate nothing.
func (a *SlogAdapter) Log(level Level, msg string, attrs ...Attr) {
	slogLevel := toSlogLevel(level)
	if !a.logger.Enabled(context.Background(), slogLevel) {
		return
	}
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = slog.Any(attr.Key, attr.Value)
	}
	a.logger.Log(context.Background(), slogLevel, msg, args...)
}

// LogRequest logs one API call with method, path, status and duration,
// including the request ID from the context when present.
func (a *SlogAdapter) LogRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	a.Ctx(ctx).Info("api request",
		"method", method,
		"path", path,
		"status", status,
		"duration", duration,
	)
}

// toSlogLevel converts a logger.Level to the corresponding slog.Level.
// Unknown levels default to LevelInfo.
func toSlogLevel(l Level) slog.Level {
	switch l {
	case DebugLevel:
		return slog.LevelDebug
	case InfoLevel:
		return slog.LevelInfo
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
