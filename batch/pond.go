package batch

import (
	"context"

	"github.com/alitto/pond/v2"
)

// pondExecutor adapts an alitto/pond worker pool to the Executor interface.
// Useful when an application already runs a shared pond pool and wants batch
// work to draw from the same workers instead of a per-batch semaphore.
//
// Admission order is the pool's own; the strict FIFO guarantee documented on
// NewExecutor applies only to the default executor.
type pondExecutor struct {
	pool    pond.Pool
	ownPool bool
}

// NewPondExecutor wraps an existing pond pool. Closing the returned Executor
// does not stop the pool; its owner remains responsible for that.
func NewPondExecutor(pool pond.Pool) Executor {
	return &pondExecutor{
		pool: pool,
	}
}

// NewPooledExecutor creates a pond pool with the given number of workers and
// wraps it. Closing the returned Executor stops the pool and waits for
// in-flight tasks. If maxConcurrent is less than 1, DefaultConcurrency is
// used.
func NewPooledExecutor(maxConcurrent int) Executor {
	if maxConcurrent < 1 {
		maxConcurrent = DefaultConcurrency
	}

	return &pondExecutor{
		pool:    pond.NewPool(maxConcurrent),
		ownPool: true,
	}
}

func (e *pondExecutor) Go(ctx context.Context, fn func(context.Context) error, done func(error)) {
	err := e.pool.Go(func() {
		inFlight.Inc()
		defer inFlight.Dec()

		done(runTask(ctx, fn))
	})
	if err != nil {
		// The pool was stopped; the task never ran.
		done(ErrExecutorClosed)
	}
}

func (e *pondExecutor) Close() error {
	if e.ownPool {
		e.pool.StopAndWait()
	}

	return nil
}
