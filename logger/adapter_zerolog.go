package logger

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// newZerologLogger creates a configured rs/zerolog.Logger instance.
func newZerologLogger(appName, env string, cfg *Config) zerolog.Logger {
	level := toZerologLevel(cfg.Level)
	return zerolog.New(cfg.GetWriter()).Level(level).With().
		Timestamp().
		Str("service", appName).
		Str("env", env).
		Logger()
}

// ZerologAdapter implements Logger on top of github.com/rs/zerolog.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates a zerolog-backed Logger pre-configured with
// timestamp, service name and environment fields. Output and rotation are
// customized via functional options.
func NewZerologAdapter(appName, env string, opts ...Option) *ZerologAdapter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &ZerologAdapter{
		logger: newZerologLogger(appName, env, cfg),
	}
}

// Noop returns a Logger that discards everything. It is the SDK client's
// default, so logging stays opt-in.
func Noop() Logger {
	return &ZerologAdapter{logger: zerolog.Nop()}
}

// Debug logs a message at DebugLevel with the given key-value pairs.
func (a *ZerologAdapter) Debug(msg string, args ...any) { a.logger.Debug().Fields(args).Msg(msg) }

// Info logs a message at InfoLevel with the given key-value pairs.
func (a *ZerologAdapter) Info(msg string, args ...any) { a.logger.Info().Fields(args).Msg(msg) }

// Warn logs a message at WarnLevel with the given key-value pairs.
func (a *ZerologAdapter) Warn(msg string, args ...any) { a.logger.Warn().Fields(args).Msg(msg) }

// Error logs a message at ErrorLevel with the given key-value pairs.
func (a *ZerologAdapter) Error(msg string, args ...any) { a.logger.Error().Fields(args).Msg(msg) }

// Ctx returns a logger enriched with the request ID from the context, or the
// receiver when none is present.
func (a *ZerologAdapter) Ctx(ctx context.Context) Logger {
	requestID := GetRequestID(ctx)
	if requestID == "" {
		return a
	}
	return &ZerologAdapter{logger: a.logger.With().Str("request_id", requestID).Logger()}
}

// With returns a logger with the given key-value pairs added to all
// subsequent records.
func (a *ZerologAdapter) With(args ...any) Logger {
	return &ZerologAdapter{logger: a.logger.With().Fields(args).Logger()}
}

// Log logs a message at the given level with structured attributes. Records
// below the configured minimum are dropped.
func (a *ZerologAdapter) Log(level Level, msg string, attrs ...Attr) {
	zlLevel := toZerologLevel(level)
	if zlLevel == zerolog.Disabled {
		return
	}

	event := a.logger.WithLevel(zlLevel)
	for _, attr := range attrs {
		event.Any(attr.Key, attr.Value)
	}
	event.Msg(msg)
}

// LogRequest logs one API call with method, path, status and duration,
// including the request ID from the context when present.
func (a *ZerologAdapter) LogRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	a.Ctx(ctx).Info("api request",
		"method", method,
		"path", path,
		"status", status,
		"duration", duration,
	)
}

// toZerologLevel converts a logger.Level to the corresponding zerolog.Level.
// Unknown levels default to InfoLevel.
func toZerologLevel(l Level) zerolog.Level {
	switch l {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
