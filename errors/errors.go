// Package errors defines the typed error taxonomy of the Hypernode SDK.
//
// Every failure surfaced by the SDK is one of the types below, so callers can
// branch with errors.As. Classification for the retry subsystem is fixed:
// ValidationError and AuthenticationError are fatal, everything else is
// retryable (see classify.go).
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

var (
	// ErrDeploymentFailed is returned by the deployment poller when a
	// deployment reaches the failed status instead of running.
	ErrDeploymentFailed = stderrors.New("deployment entered failed state")
)

// APIError is the generic API failure: any non-2xx response that does not map
// to a more specific type (in practice 5xx and unexpected statuses), and
// errors reported by the Solana RPC layer.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return "api error: " + e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// ValidationError reports a request the server or the SDK itself rejected as
// malformed. It is fatal: retrying an invalid request cannot succeed.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: field %q: %s", e.Field, e.Message)
	}
	return "validation error: " + e.Message
}

// AuthenticationError reports missing or rejected credentials (HTTP 401/403).
// It is fatal: retrying with the same credentials cannot succeed.
type AuthenticationError struct {
	Message    string
	StatusCode int
}

func (e *AuthenticationError) Error() string {
	return "authentication error: " + e.Message
}

// NotFoundError reports a resource that does not exist (HTTP 404).
type NotFoundError struct {
	Resource string
	Message  string
}

func (e *NotFoundError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("not found: %s: %s", e.Resource, e.Message)
	}
	return "not found: " + e.Message
}

// TimeoutError reports an operation that exceeded its deadline, either a
// client-side timeout or an HTTP 408 from the server.
type TimeoutError struct {
	Message string
	Err     error
}

func (e *TimeoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("timeout: %s: %v", e.Message, e.Err)
	}
	return "timeout: " + e.Message
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// RateLimitError reports an HTTP 429. RetryAfter carries the parsed
// Retry-After header when the server sent one, zero otherwise.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: %s (retry after %s)", e.Message, e.RetryAfter)
	}
	return "rate limited: " + e.Message
}

// ConnectionError reports a transport-level failure: DNS resolution, refused
// or reset connections, broken pipes. The underlying error is preserved.
type ConnectionError struct {
	Message string
	Err     error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("connection error: %s: %v", e.Message, e.Err)
	}
	return "connection error: " + e.Message
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// NewValidation builds a ValidationError with the given message.
func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// NewValidationField builds a ValidationError naming the offending field.
func NewValidationField(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// NewAuthentication builds an AuthenticationError with the given message.
func NewAuthentication(msg string) *AuthenticationError {
	return &AuthenticationError{Message: msg}
}

// NewNotFound builds a NotFoundError for the named resource.
func NewNotFound(resource, msg string) *NotFoundError {
	return &NotFoundError{Resource: resource, Message: msg}
}

// NewTimeout builds a TimeoutError wrapping cause, which may be nil.
func NewTimeout(msg string, cause error) *TimeoutError {
	return &TimeoutError{Message: msg, Err: cause}
}

// NewRateLimit builds a RateLimitError with an optional retry-after hint.
func NewRateLimit(msg string, retryAfter time.Duration) *RateLimitError {
	return &RateLimitError{Message: msg, RetryAfter: retryAfter}
}

// NewConnection builds a ConnectionError wrapping cause, which may be nil.
func NewConnection(msg string, cause error) *ConnectionError {
	return &ConnectionError{Message: msg, Err: cause}
}

// NewAPI builds an APIError for the given status code and message.
func NewAPI(statusCode int, msg string) *APIError {
	return &APIError{StatusCode: statusCode, Message: msg}
}
