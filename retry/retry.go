// Package retry executes operations under a bounded exponential backoff
// policy.
//
// A Policy allows MaxRetries invocations in total, waiting
// min(BaseDelay * ExponentialBase^attempt, MaxDelay) between consecutive
// ones, so at most MaxRetries-1 waits ever happen and no wait follows the
// final attempt. Classification is fixed by the errors package: validation
// and authentication failures stop immediately, every other failure is
// retried. Whatever error ends the run is returned exactly as the operation
// produced it, never wrapped, so callers can still match its concrete type.
//
// Do and DoValue block with time.Sleep. DoContext and DoValueContext wait
// cooperatively: cancelling the context aborts a pending delay right away
// and prevents further invocations, returning ctx.Err(). Apart from how the
// delay is awaited the four variants are interchangeable.
package retry

import (
	"context"
	"time"

	"github.com/Hypernode-sol/hypernode-sdk-go/errors"
)

// sleep is swappable so tests can observe delays without real waiting.
var sleep = time.Sleep

// next decides what follows a failed attempt: the delay to wait and whether
// another invocation is allowed. attempt counts the retries already
// performed, so it ranges over 0..MaxRetries-2 for a policy that retries.
func next(p Policy, attempt int, err error) (time.Duration, bool) {
	if errors.IsFatal(err) {
		return 0, false
	}
	if attempt >= p.MaxRetries-1 {
		return 0, false
	}
	return p.Delay(attempt), true
}

// Do invokes fn until it succeeds, fails fatally, or the policy's invocation
// budget is spent. Attempts are strictly sequential and the delay between
// them is a blocking sleep. The returned error is fn's own, unmodified.
func Do(p Policy, fn func() error) error {
	p = p.withDefaults()
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		delay, again := next(p, attempt, err)
		if !again {
			return err
		}
		sleep(delay)
	}
}

// DoValue is Do for operations that produce a value. On failure the zero
// value of T accompanies the final error.
func DoValue[T any](p Policy, fn func() (T, error)) (T, error) {
	var result T
	err := Do(p, func() error {
		var ferr error
		result, ferr = fn()
		return ferr
	})
	return result, err
}

// DoContext is Do with cooperative waiting: a cancelled context aborts a
// pending delay immediately and stops further invocations, returning
// ctx.Err(). With a context that never cancels it behaves exactly like Do.
func DoContext(ctx context.Context, p Policy, fn func(context.Context) error) error {
	p = p.withDefaults()
	for attempt := 0; ; attempt++ {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		err := fn(ctx)
		if err == nil {
			return nil
		}
		delay, again := next(p, attempt, err)
		if !again {
			return err
		}
		if cerr := sleepContext(ctx, delay); cerr != nil {
			return cerr
		}
	}
}

// DoValueContext is DoContext for operations that produce a value.
func DoValueContext[T any](ctx context.Context, p Policy, fn func(context.Context) (T, error)) (T, error) {
	var result T
	err := DoContext(ctx, p, func(ctx context.Context) error {
		var ferr error
		result, ferr = fn(ctx)
		return ferr
	})
	return result, err
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
