package retry

import (
	"math"
	"time"
)

// Policy bounds a retried operation: how many invocations are allowed in
// total and how the delay between them grows.
type Policy struct {
	// MaxRetries is the total invocation budget, including the first
	// attempt. Values below 1 behave like 1: a single attempt, no waiting.
	MaxRetries int
	// BaseDelay is the wait before the first re-invocation.
	BaseDelay time.Duration
	// MaxDelay caps the exponential growth.
	MaxDelay time.Duration
	// ExponentialBase is the growth factor per attempt, greater than 1.
	ExponentialBase float64
}

// DefaultPolicy returns the standard SDK policy: three invocations with
// delays starting at one second, doubling, capped at thirty seconds.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:      3,
		BaseDelay:       time.Second,
		MaxDelay:        30 * time.Second,
		ExponentialBase: 2,
	}
}

// Delay returns the wait after the given attempt, where attempt counts the
// retries already performed: attempt 0 is the wait before the first
// re-invocation.
func (p Policy) Delay(attempt int) time.Duration {
	return BackoffDelay(attempt, p.BaseDelay, p.MaxDelay, p.ExponentialBase)
}

// BackoffDelay computes min(base * expBase^attempt, max) without running
// anything, so callers can preview a retry schedule. It is total: negative
// attempts count as zero, degenerate inputs yield zero, and overflow
// saturates at max (or the largest duration when max is not positive).
func BackoffDelay(attempt int, base, max time.Duration, expBase float64) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := float64(base) * math.Pow(expBase, float64(attempt))
	switch {
	case math.IsNaN(d) || d <= 0:
		return 0
	case max > 0 && d >= float64(max):
		return max
	case d >= float64(math.MaxInt64):
		return time.Duration(math.MaxInt64)
	default:
		return time.Duration(d)
	}
}

// withDefaults fills unset fields so a zero Policy still behaves sanely.
// MaxRetries is left alone: values below 1 already mean a single attempt.
// A MaxDelay below BaseDelay is also left alone: the cap then binds from
// the first retry and every delay equals MaxDelay.
func (p Policy) withDefaults() Policy {
	if p.BaseDelay <= 0 {
		p.BaseDelay = time.Second
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 30 * time.Second
	}
	if p.ExponentialBase <= 1 {
		p.ExponentialBase = 2
	}
	return p
}
