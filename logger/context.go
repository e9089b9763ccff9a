package logger

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is a private type to avoid key collisions in context.WithValue.
type contextKey struct{}

var requestIDKey = contextKey{}

// SetRequestID stores a request ID in the context. The SDK transport and all
// adapters use it for log correlation; it is also sent upstream as the
// X-Request-ID header.
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context, or "" when none is
// set.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GenerateRequestID creates a new UUID v4 string for use as a request ID.
func GenerateRequestID() string {
	return uuid.New().String()
}

// EnsureRequestID returns ctx unchanged when it already carries a request ID,
// otherwise a derived context with a fresh one.
func EnsureRequestID(ctx context.Context) context.Context {
	if GetRequestID(ctx) != "" {
		return ctx
	}
	return SetRequestID(ctx, GenerateRequestID())
}
