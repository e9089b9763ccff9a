// Package logger is the SDK's structured logging facade. A single Logger
// interface fronts four interchangeable engines (zap, slog, zerolog, logrus)
// so applications embedding the SDK keep their existing logging setup; all
// engines share the same output and file rotation options. The SDK client
// logs every API call through this interface.
package logger

import (
	"context"
	"time"
)

// Level represents the severity of a log record.
type Level int

// Engine represents a supported underlying logging implementation.
type Engine string

const (
	// ZapEngine selects the go.uber.org/zap logger.
	ZapEngine Engine = "zap"
	// SlogEngine selects the stdlib log/slog logger.
	SlogEngine Engine = "slog"
	// ZerologEngine selects the github.com/rs/zerolog logger.
	ZerologEngine Engine = "zerolog"
	// LogrusEngine selects the github.com/sirupsen/logrus logger.
	LogrusEngine Engine = "logrus"

	// DebugLevel is the most verbose level, typically used for development.
	DebugLevel Level = iota - 4
	// InfoLevel is the default logging level.
	InfoLevel
	// WarnLevel indicates unexpected events that are not errors.
	WarnLevel
	// ErrorLevel indicates failures that require attention.
	ErrorLevel
)

// Attr is a key-value pair for structured logging.
type Attr struct {
	Key   string
	Value any
}

// Logger is the unified structured logging interface the SDK logs through.
// Implementations are immutable: Ctx and With return derived instances.
type Logger interface {
	// Debug logs a message at DebugLevel with key-value pairs.
	Debug(msg string, args ...any)
	// Info logs a message at InfoLevel with key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a message at WarnLevel with key-value pairs.
	Warn(msg string, args ...any)
	// Error logs a message at ErrorLevel with key-value pairs.
	Error(msg string, args ...any)

	// Ctx returns a logger enriched with the request ID carried by ctx,
	// if any.
	Ctx(ctx context.Context) Logger
	// With returns a logger with the given key-value pairs added to all
	// subsequent records.
	With(args ...any) Logger

	// LogRequest logs one API call with the standard observability
	// fields: method, path, status code and duration.
	LogRequest(ctx context.Context, method, path string, status int, duration time.Duration)

	// Log logs a message at the given level with structured attributes.
	Log(level Level, msg string, attrs ...Attr)
}

// InitLogger builds a Logger for the given engine, application name and
// environment, applying functional options. Unknown engines fall back to
// slog.
func InitLogger(engine Engine, appName, env string, opts ...Option) (Logger, error) {
	switch engine {
	case ZapEngine:
		return NewZapAdapter(appName, env, opts...)
	case SlogEngine:
		return NewSlogAdapter(appName, env, opts...), nil
	case ZerologEngine:
		return NewZerologAdapter(appName, env, opts...), nil
	case LogrusEngine:
		return NewLogrusAdapter(appName, env, opts...), nil
	default:
		return NewSlogAdapter(appName, env, opts...), nil
	}
}

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// String creates a string attribute.
func String(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Int creates an int attribute.
func Int(key string, value int) Attr {
	return Attr{Key: key, Value: value}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attr {
	return Attr{Key: key, Value: value}
}

// Uint64 creates a uint64 attribute.
func Uint64(key string, value uint64) Attr {
	return Attr{Key: key, Value: value}
}

// Float64 creates a float64 attribute.
func Float64(key string, value float64) Attr {
	return Attr{Key: key, Value: value}
}

// Bool creates a bool attribute.
func Bool(key string, value bool) Attr {
	return Attr{Key: key, Value: value}
}

// Time creates a time.Time attribute.
func Time(key string, value time.Time) Attr {
	return Attr{Key: key, Value: value}
}

// Duration creates a time.Duration attribute.
func Duration(key string, value time.Duration) Attr {
	return Attr{Key: key, Value: value}
}

// Err creates an error attribute under the conventional "error" key.
func Err(err error) Attr {
	return Attr{Key: "error", Value: err}
}

// Any creates an attribute with an arbitrary value.
func Any(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Slice creates an attribute holding a slice of any element type.
func Slice[T any](key string, value []T) Attr {
	return Attr{Key: key, Value: value}
}
