// Package batch runs a list of tasks under a concurrency limit with
// order-preserving results and all-settled error reporting.
//
// At most the configured number of tasks are in flight at once; queued tasks
// are admitted strictly in input order (FIFO). Every task runs to settlement
// regardless of its siblings' outcomes: a failing task does not cancel the
// rest of the batch. Once everything has settled, if any task failed, the
// caller gets a single *batch.Error summarizing how many of how many tasks
// failed, with the per-task errors and their input indices attached.
//
// Example:
//
//	doubled, err := batch.Map(ctx, 3, numbers, func(ctx context.Context, n int) (int, error) {
//	    return n * 2, nil
//	})
//	// doubled preserves input order even though tasks complete out of order
package batch

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/loopwork/await/logger"
)

// DefaultConcurrency is the in-flight limit used when the caller passes a
// limit of less than 1.
const DefaultConcurrency = 5

// Run executes all tasks with at most maxConcurrent in flight and waits for
// every task to settle. Returns nil if all succeeded, otherwise a *Error
// listing every failure with its task index.
//
// If maxConcurrent is less than 1, DefaultConcurrency is used.
func Run(ctx context.Context, maxConcurrent int, tasks ...func(ctx context.Context) error) error {
	_, err := Map(ctx, maxConcurrent, tasks,
		func(ctx context.Context, task func(ctx context.Context) error) (struct{}, error) {
			return struct{}{}, task(ctx)
		})

	return err
}

// Map transforms values in parallel with at most maxConcurrent transforms in
// flight, returning the outputs in input order: outputs[i] corresponds to
// values[i] no matter which task finished first.
//
// Every transform runs to settlement. If any failed, the outputs are
// discarded and a *Error is returned carrying each failure with its index.
// Panics inside transforms are recovered and reported as failures of their
// task. If maxConcurrent is less than 1, DefaultConcurrency is used.
func Map[Input, Output any](
	ctx context.Context,
	maxConcurrent int,
	values []Input,
	transform func(ctx context.Context, value Input) (Output, error),
) (result []Output, err error) {
	exec := NewExecutor(maxConcurrent)

	defer func() {
		closeErr := exec.Close()
		if closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return MapWithExecutor(ctx, exec, values, transform)
}

// RunWithExecutor is Run with a caller-supplied Executor, which is not closed
// so it can be shared across batches.
func RunWithExecutor(ctx context.Context, exec Executor, tasks ...func(ctx context.Context) error) error {
	_, err := MapWithExecutor(ctx, exec, tasks,
		func(ctx context.Context, task func(ctx context.Context) error) (struct{}, error) {
			return struct{}{}, task(ctx)
		})

	return err
}

// MapWithExecutor is Map with a caller-supplied Executor, which is not closed
// so it can be shared across batches.
func MapWithExecutor[Input, Output any](
	ctx context.Context,
	exec Executor,
	values []Input,
	transform func(ctx context.Context, value Input) (Output, error),
) ([]Output, error) {
	if len(values) == 0 {
		return nil, nil //nolint:nilnil
	}

	batchesTotal.Inc()

	// Every log line from this batch carries the same id, so the per-task
	// failures below can be correlated after interleaving with other batches.
	log := logger.Get(ctx).With("batch_id", uuid.New().String())

	var (
		mut       sync.Mutex
		waitGroup sync.WaitGroup
		failures  []TaskError
	)

	outputs := make([]Output, len(values))

	for idx, value := range values {
		waitGroup.Add(1)
		tasksTotal.Inc()

		// Go blocks here until the executor admits the task, which is what
		// bounds how far submission runs ahead of completion.
		exec.Go(ctx, func(ctx context.Context) error {
			out, err := transform(ctx, value)
			if err != nil {
				return err
			}

			mut.Lock()
			outputs[idx] = out
			mut.Unlock()

			return nil
		}, func(err error) {
			defer waitGroup.Done()

			if err != nil {
				tasksFailed.Inc()

				log.Error("batch task failed",
					"index", idx,
					"error", err)

				mut.Lock()
				failures = append(failures, TaskError{Index: idx, Err: err})
				mut.Unlock()
			}
		})
	}

	waitGroup.Wait()

	if len(failures) > 0 {
		sort.Slice(failures, func(i, j int) bool {
			return failures[i].Index < failures[j].Index
		})

		aggErr := &Error{
			Total:    len(values),
			Failures: failures,
		}

		log.Error("batch finished with failures",
			"failed", len(failures),
			"total", len(values))

		return nil, aggErr
	}

	return outputs, nil
}
