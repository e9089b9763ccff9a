package logger

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// LogrusAdapter implements Logger on top of github.com/sirupsen/logrus.
type LogrusAdapter struct {
	entry *logrus.Entry
}

// NewLogrusAdapter creates a logrus-backed Logger pre-configured with
// service name and environment fields. Output and rotation are customized
// via functional options.
func NewLogrusAdapter(appName, env string, opts ...Option) *LogrusAdapter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	l := logrus.New()
	l.SetOutput(cfg.GetWriter())
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(toLogrusLevel(cfg.Level))

	return &LogrusAdapter{
		entry: l.WithFields(logrus.Fields{
			"service": appName,
			"env":     env,
		}),
	}
}

// Debug logs a message at DebugLevel with the given key-value pairs.
func (a *LogrusAdapter) Debug(msg string, args ...any) { a.withPairs(args).entry.Debug(msg) }

// Info logs a message at InfoLevel with the given key-value pairs.
func (a *LogrusAdapter) Info(msg string, args ...any) { a.withPairs(args).entry.Info(msg) }

// Warn logs a message at WarnLevel with the given key-value pairs.
func (a *LogrusAdapter) Warn(msg string, args ...any) { a.withPairs(args).entry.Warn(msg) }

// Error logs a message at ErrorLevel with the given key-value pairs.
func (a *LogrusAdapter) Error(msg string, args ...any) { a.withPairs(args).entry.Error(msg) }

// Ctx returns a logger enriched with the request ID from the context, or the
// receiver when none is present.
func (a *LogrusAdapter) Ctx(ctx context.Context) Logger {
	requestID := GetRequestID(ctx)
	if requestID == "" {
		return a
	}
	return &LogrusAdapter{entry: a.entry.WithField("request_id", requestID)}
}

// With returns a logger with the given key-value pairs added to all
// subsequent records. Non-string keys are ignored, as is an odd trailing
// key.
func (a *LogrusAdapter) With(args ...any) Logger {
	return a.withPairs(args)
}

func (a *LogrusAdapter) withPairs(args []any) *LogrusAdapter {
	if len(args) == 0 {
		return a
	}
	fields := make(logrus.Fields)
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			fields[key] = args[i+1]
		}
	}
	return &LogrusAdapter{entry: a.entry.WithFields(fields)}
}

// Log logs a message at the given level with structured attributes.
func (a *LogrusAdapter) Log(level Level, msg string, attrs ...Attr) {
	fields := make(logrus.Fields)
	for _, attr := range attrs {
		fields[attr.Key] = attr.Value
	}
	a.entry.WithFields(fields).Log(toLogrusLevel(level), msg)
}

// LogRequest logs one API call with method, path, status and duration,
// including the request ID from the context when present.
func (a *LogrusAdapter) LogRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	a.Ctx(ctx).With(
		"method", method,
		"path", path,
		"status", status,
		"duration", duration,
	).Info("api request")
}

// toLogrusLevel converts a logger.Level to the corresponding logrus.Level.
// Unknown levels default to InfoLevel.
func toLogrusLevel(l Level) logrus.Level {
	switch l {
	case DebugLevel:
		return logrus.DebugLevel
	case InfoLevel:
		return logrus.InfoLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
