package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"
)

// ErrPanicRecovered is the base error for panics recovered from tasks.
var ErrPanicRecovered = errors.New("panic recovered")

// ErrExecutorClosed is returned for tasks submitted after Close.
var ErrExecutorClosed = errors.New("executor closed")

// Executor runs task functions under some concurrency discipline. Run and
// Map create a fresh executor per call; the *WithExecutor variants accept one
// so a limiter can be shared across batches.
type Executor interface {
	// Go submits a task. It may block until the executor admits the task.
	// The done callback receives the task's result exactly once; it runs on
	// the task's goroutine and must not block for long.
	Go(ctx context.Context, fn func(context.Context) error, done func(error))

	// Close releases the executor's resources. Tasks submitted after Close
	// fail with ErrExecutorClosed.
	Close() error
}

// NewExecutor returns an Executor that admits at most maxConcurrent tasks at
// once, resuming queued submitters strictly in arrival order. If
// maxConcurrent is less than 1, DefaultConcurrency is used.
func NewExecutor(maxConcurrent int) Executor {
	if maxConcurrent < 1 {
		maxConcurrent = DefaultConcurrency
	}

	return &semExecutor{
		sem: newSemaphore(maxConcurrent),
	}
}

// semExecutor is the default Executor, backed by the FIFO semaphore.
type semExecutor struct {
	sem    *semaphore
	closed atomic.Bool
}

// Go blocks the submitting goroutine until a permit is available (or the
// context is done), then runs the task in its own goroutine. Blocking at
// submission is what preserves FIFO admission: tasks enter the semaphore in
// the order they are submitted.
func (e *semExecutor) Go(ctx context.Context, fn func(context.Context) error, done func(error)) {
	if e.closed.Load() {
		done(ErrExecutorClosed)

		return
	}

	if err := e.sem.Acquire(ctx); err != nil {
		done(err)

		return
	}

	go func() {
		defer e.sem.Release()

		inFlight.Inc()
		defer inFlight.Dec()

		done(runTask(ctx, fn))
	}()
}

// Close marks the executor closed. Idempotent.
func (e *semExecutor) Close() error {
	e.closed.Store(true)

	return nil
}

// runTask invokes fn with panic recovery. Tasks admitted after the context
// died short-circuit with ctx.Err() instead of running.
func runTask(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r, debug.Stack())
		}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	return fn(ctx)
}

// panicToError converts a recovered panic value and stack trace into an
// error wrapping ErrPanicRecovered.
func panicToError(recovered any, stack []byte) error {
	if err, ok := recovered.(error); ok {
		return fmt.Errorf("%w: %w\nstack trace:\n%s", ErrPanicRecovered, err, stack)
	}

	return fmt.Errorf("%w: %v\nstack trace:\n%s", ErrPanicRecovered, recovered, stack)
}
