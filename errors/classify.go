package errors

import stderrors "errors"

// Class partitions errors for the retry subsystem.
type Class int

const (
	// ClassRetryable marks failures that may resolve on a later attempt:
	// timeouts, rate limits, connection drops, server errors, and any error
	// the SDK does not recognize.
	ClassRetryable Class = iota
	// ClassFatal marks failures that cannot resolve by retrying with the
	// same input: validation and authentication errors.
	ClassFatal
)

func (c Class) String() string {
	switch c {
	case ClassRetryable:
		return "retryable"
	case ClassFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Classify reports the retry class of err. The taxonomy is fixed: exactly
// ValidationError and AuthenticationError are fatal, every other error is
// retryable. Wrapped errors classify through errors.As, so wrapping with
// fmt.Errorf("...: %w", err) preserves the class.
func Classify(err error) Class {
	var validationErr *ValidationError
	var authErr *AuthenticationError
	if stderrors.As(err, &validationErr) || stderrors.As(err, &authErr) {
		return ClassFatal
	}
	return ClassRetryable
}

// IsFatal reports whether err must not be retried.
func IsFatal(err error) bool {
	return err != nil && Classify(err) == ClassFatal
}

// IsRetryable reports whether a retry of the failed operation may succeed.
func IsRetryable(err error) bool {
	return err != nil && Classify(err) == ClassRetryable
}
