// Package retry provides a configurable retry mechanism for operations that
// may fail transiently. It supports exponential backoff, optional jitter,
// a retryability predicate, and attempt tracking through the context.
//
// The package offers both simple one-shot functions (Do, DoValue) and
// reusable Runner interfaces for operations that need consistent retry
// behavior.
//
// Basic usage:
//
//	err := retry.Do(ctx, func(ctx context.Context) error {
//	    return makeAPICall()
//	})
//
// With custom options:
//
//	err := retry.Do(ctx, operation,
//	    retry.WithAttempts(5),
//	    retry.WithBackoff(retry.ExpBackoff{Base: time.Second, Max: 10*time.Second, Factor: 2}),
//	    retry.WithRetryIf(isTransient),
//	)
//
// The default configuration retries every error. That can mask failures that
// will never succeed on a retry (validation errors, bad credentials); callers
// with such error classes should pass WithRetryIf or wrap those errors with
// Abort rather than rely on the default.
//
// Per-attempt deadlines are not built in; compose with the timeout package:
//
//	err := retry.Do(ctx, func(ctx context.Context) error {
//	    return timeout.Do(ctx, 5*time.Second, makeAPICall)
//	})
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/loopwork/await/logger"
)

const (
	defaultAttempts      = 4 // initial call + 3 retries
	defaultBaseDelay     = 2 * time.Second
	defaultMaxDelay      = 30 * time.Second
	defaultBackoffFactor = 2.0
)

// Runner is an interface for executing operations with retry logic.
type Runner interface {
	Do(ctx context.Context, f func(ctx context.Context) error) error
}

// ValueRunner is a generic interface for executing operations that return a
// value with retry logic, returning the successful result or an error.
type ValueRunner[T any] interface {
	Do(ctx context.Context, f func(ctx context.Context) (T, error)) (T, error)
}

// NewRunner creates a new Runner with the specified options.
// If no options are provided, it uses the defaults:
//   - 4 attempts (initial call + 3 retries)
//   - Exponential backoff: 2s base, 30s max, factor of 2
//   - No jitter (deterministic delays)
//   - Every error is considered retryable
//
// Example:
//
//	runner := retry.NewRunner(
//	    retry.WithAttempts(5),
//	    retry.WithJitter(retry.FullJitter),
//	)
//	err := runner.Do(ctx, operation)
func NewRunner(opts ...Option) Runner {
	return &runnerImpl{
		opts: newOptions(opts...),
	}
}

// NewValueRunner creates a new ValueRunner for operations that return a
// value. It uses the same defaults as NewRunner.
func NewValueRunner[T any](opts ...Option) ValueRunner[T] {
	return &valueRunnerImpl[T]{
		opts: newOptions(opts...),
	}
}

func newOptions(opts ...Option) *options {
	intOpts := &options{
		name:     defaultName,
		attempts: Attempts(defaultAttempts),
		backoff: ExpBackoff{
			Base:   defaultBaseDelay,
			Max:    defaultMaxDelay,
			Factor: defaultBackoffFactor,
		},
		jitter: WithoutJitter,
	}

	for _, option := range opts {
		option(intOpts)
	}

	return intOpts
}

// runnerImpl is the concrete implementation of the Runner interface.
type runnerImpl struct {
	opts *options
}

// Do executes the provided function with retry logic according to the
// runner's configuration.
func (r *runnerImpl) Do(ctx context.Context, f func(ctx context.Context) error) error {
	return do(ctx, r.opts, f)
}

// valueRunnerImpl is the concrete implementation of the ValueRunner interface.
type valueRunnerImpl[T any] struct {
	opts *options
}

// Do executes the provided function with retry logic, returning the
// successful result or, once retries are exhausted, the zero value of T and
// the last error encountered.
func (v valueRunnerImpl[T]) Do(ctx context.Context, f func(ctx context.Context) (T, error)) (T, error) {
	var out T

	err := do(ctx, v.opts, func(ctx context.Context) error {
		var err error

		out, err = f(ctx)

		return err
	})
	if err != nil {
		var zero T

		return zero, err
	}

	return out, nil
}

// do is the core retry loop. It returns:
//   - nil if the operation succeeds
//   - ctx.Err() if the context is canceled
//   - the original error, immediately, if the predicate declines a retry or
//     the error was marked permanent with Abort
//   - the last error once the attempt budget is exhausted
//
// The error is never wrapped on any of these paths; callers see exactly what
// the operation returned.
func do(ctx context.Context, opts *options, operation func(ctx context.Context) error) error {
	log := opts.logger
	if log == nil {
		log = logger.Get(ctx)
	}

	var err error

	// Loop until we reach the maximum attempts, or forever when attempts is 0.
	for attemptIndex := uint(0); Attempts(attemptIndex) < opts.attempts || opts.attempts == 0; attemptIndex++ {
		// Make the attempt number visible to the operation.
		ctx := withAttempt(ctx, attemptIndex)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		attemptsTotal.WithLabelValues(opts.name).Inc()

		err = operation(ctx)
		if err == nil {
			if attemptIndex > 0 {
				log.Info("operation succeeded after retrying",
					"name", opts.name,
					"attempt", attemptIndex)
			}

			return nil
		}

		failuresTotal.WithLabelValues(opts.name).Inc()
		recordAttemptEvent(ctx, attemptIndex, err)

		// Errors marked permanent via Abort stop the loop immediately and
		// surface the wrapped error.
		var retryErr Error
		if errors.As(err, &retryErr) && !retryErr.Temporary() {
			abortedTotal.WithLabelValues(opts.name).Inc()

			var p *permanentError
			if errors.As(err, &p) {
				err = p.error
			}

			log.Error("operation failed with a permanent error",
				"name", opts.name,
				"attempt", attemptIndex,
				"error", err)

			return err
		}

		// The predicate gets the next say. A declined retry rethrows
		// immediately with no delay.
		if opts.retryIf != nil && !opts.retryIf(err) {
			abortedTotal.WithLabelValues(opts.name).Inc()

			log.Error("operation failed with a non-retryable error",
				"name", opts.name,
				"attempt", attemptIndex,
				"error", err)

			return err
		}

		// Don't sleep after the final attempt.
		if opts.attempts != 0 && Attempts(attemptIndex+1) >= opts.attempts {
			break
		}

		delay := opts.jitter.jitter(opts.backoff.Delay(attemptIndex))

		log.Warn("operation failed, retrying",
			"name", opts.name,
			"attempt", attemptIndex,
			"delay", delay,
			"error", err)

		if sleepErr := sleepCtx(ctx, delay); sleepErr != nil {
			return sleepErr
		}
	}

	exhaustedTotal.WithLabelValues(opts.name).Inc()

	log.Error("operation failed, attempts exhausted",
		"name", opts.name,
		"attempts", uint(opts.attempts),
		"error", err)

	return err
}

// Do is a convenience function that creates a Runner and executes the
// provided function with retry logic in a single call.
//
// Example:
//
//	err := retry.Do(ctx, func(ctx context.Context) error {
//	    return makeAPICall()
//	}, retry.WithAttempts(5))
func Do(ctx context.Context, f func(ctx context.Context) error, opts ...Option) error {
	return NewRunner(opts...).Do(ctx, f)
}

// DoValue is a convenience function that creates a ValueRunner and executes
// the provided function with retry logic in a single call.
//
// Example:
//
//	result, err := retry.DoValue(ctx, func(ctx context.Context) (string, error) {
//	    return fetchData()
//	}, retry.WithAttempts(5))
func DoValue[T any](ctx context.Context, f func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	return NewValueRunner[T](opts...).Do(ctx, f)
}
