package logger

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapAdapter implements Logger on top of go.uber.org/zap. The unsugared
// logger backs Log's Check/Write path; the sugared one backs the key-value
// methods.
type ZapAdapter struct {
	logger *zap.Logger
	sugar  *zap.SugaredLogger
}

// NewZapAdapter creates a zap-backed Logger with JSON encoding, caller
// information and stack traces on errors. Output and rotation are customized
// via functional options.
func NewZapAdapter(appName, env string, opts ...Option) (*ZapAdapter, error) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		FunctionKey:   zapcore.OmitKey,
		MessageKey:    "msg",
		StacktraceKey: "stacktrace",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.LowercaseLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(cfg.GetWriter()),
		toZapLevel(cfg.Level),
	)

	l := zap.New(core,
		zap.Fields(
			zap.String("service", appName),
			zap.String("env", env),
		),
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)

	return &ZapAdapter{logger: l, sugar: l.Sugar()}, nil
}

func (a *ZapAdapter) derive(l *zap.Logger) *ZapAdapter {
	return &ZapAdapter{logger: l, sugar: l.Sugar()}
}

// Debug logs a message at DebugLevel with the given key-value pairs.
func (a *ZapAdapter) Debug(msg string, args ...any) { a.sugar.Debugw(msg, args...) }

// Info logs a message at InfoLevel with the given key-value pairs.
func (a *ZapAdapter) Info(msg string, args ...any) { a.sugar.Infow(msg, args...) }

// Warn logs a message at WarnLevel with the given key-value pairs.
func (a *ZapAdapter) Warn(msg string, args ...any) { a.sugar.Warnw(msg, args...) }

// Error logs a message at ErrorLevel with the given key-value pairs.
func (a *ZapAdapter) Error(msg string, args ...any) { a.sugar.Errorw(msg, args...) }

// Ctx returns a logger enriched with the request ID from the context, or the
// receiver when none is present.
func (a *ZapAdapter) Ctx(ctx context.Context) Logger {
	requestID := GetRequestID(ctx)
	if requestID == "" {
		return a
	}
	return a.derive(a.logger.With(zap.String("request_id", requestID)))
}

// With returns a logger with the given key-value pairs added to all
// subsequent records. Non-string keys become "UNKNOWN".
func (a *ZapAdapter) With(args ...any) Logger {
	return a.derive(a.logger.With(toZapFields(args)...))
}

// Log logs a message at the given level with structured attributes, using
// zap's Check/Write path so disabled levels cost nothing.
func (a *ZapAdapter) Log(level Level, msg string, attrs ...Attr) {
	if ce := a.logger.Check(toZapLevel(level), msg); ce != nil {
		fields := make([]zap.Field, 0, len(attrs))
		for _, attr := range attrs {
			fields = append(fields, zap.Any(attr.Key, attr.Value))
		}
		ce.Write(fields...)
	}
}

// LogRequest logs one API call with method, path, status and duration,
// including the request ID from the context when present.
func (a *ZapAdapter) LogRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	a.Ctx(ctx).Info("api request",
		"method", method,
		"path", path,
		"status", status,
		"duration", duration,
	)
}

// toZapLevel converts a logger.Level to the corresponding zapcore.Level.
// Unknown levels default to InfoLevel.
func toZapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// toZapFields converts key-value pairs into zap.Fields. An odd trailing key
// gets a "<missing>" value; non-string keys become "UNKNOWN".
func toZapFields(args []any) []zap.Field {
	if len(args)%2 != 0 {
		args = append(args, "<missing>")
	}
	fields := make([]zap.Field, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = "UNKNOWN"
		}
		fields = append(fields, zap.Any(key, args[i+1]))
	}
	return fields
}
