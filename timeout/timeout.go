// Package timeout races an in-flight operation against a timer. If the timer
// wins, the caller gets a distinguished *timeout.Error carrying the elapsed
// duration; if the operation settles first, its result is passed through
// unchanged.
//
// The wrapped operation is NOT canceled when the timer fires: its goroutine
// keeps running to completion and only the wrapper's result short-circuits.
// Operations that should stop early must watch the context they are given.
//
// Example:
//
//	value, err := timeout.DoValue(ctx, 5*time.Second, fetchUser)
//	var timeoutErr *timeout.Error
//	if errors.As(err, &timeoutErr) {
//	    // timed out after timeoutErr.After
//	}
package timeout

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/loopwork/await/logger"
)

// Error is returned when an operation fails to settle within the configured
// duration. Match it with errors.As.
type Error struct {
	// After is the timeout duration that elapsed.
	After time.Duration
}

// Error returns a message naming the elapsed duration.
func (e *Error) Error() string {
	return fmt.Sprintf("operation timed out after %s", e.After)
}

// Do runs f and waits at most d for it to settle. If the timer fires first,
// Do returns a *Error recording d; f keeps running in the background. If the
// context is done first, ctx.Err() is returned instead. The internal timer is
// released on every path.
func Do(ctx context.Context, d time.Duration, f func(ctx context.Context) error) error {
	_, err := DoValue(ctx, d, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, f(ctx)
	})

	return err
}

// DoValue runs f and waits at most d for it to settle, passing through the
// value and error if f finishes first. See Do for the timeout semantics.
func DoValue[T any](ctx context.Context, d time.Duration, f func(ctx context.Context) (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}

	// Buffered so the goroutine can deliver its result and exit even after
	// the wrapper has already returned.
	resultChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T

				resultChan <- result{
					value: zero,
					err:   panicError(r, debug.Stack()),
				}
			}
		}()

		value, err := f(ctx)
		resultChan <- result{value: value, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case res := <-resultChan:
		return res.value, res.err
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	case <-timer.C:
		expirationsTotal.Inc()

		logger.Get(ctx).Warn("operation timed out",
			"timeout", d)

		var zero T

		return zero, &Error{After: d}
	}
}

// panicError converts a recovered panic value into an error carrying the
// stack trace, so a panicking operation surfaces as a failure instead of
// killing the process from an untended goroutine.
func panicError(recovered any, stack []byte) error {
	if err, ok := recovered.(error); ok {
		return fmt.Errorf("panic in timed operation: %w\nstack trace:\n%s", err, stack)
	}

	return fmt.Errorf("panic in timed operation: %v\nstack trace:\n%s", recovered, stack)
}
