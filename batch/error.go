package batch

import "fmt"

// TaskError pairs a failed task's input index with its error.
type TaskError struct {
	// Index is the task's position in the input list.
	Index int
	// Err is the failure, exactly as the task returned it (or the recovered
	// panic converted to an error).
	Err error
}

// Error returns the task's error message prefixed with its index.
func (t TaskError) Error() string {
	return fmt.Sprintf("task %d: %v", t.Index, t.Err)
}

// Unwrap returns the underlying task error.
func (t TaskError) Unwrap() error {
	return t.Err
}

// Error aggregates the failures of a batch. It is returned only after every
// task has settled, so Failures is complete: one entry per failed task, in
// index order.
type Error struct {
	// Total is the number of tasks in the batch.
	Total int
	// Failures lists the failed tasks in ascending index order.
	Failures []TaskError
}

// Error returns a summary of the form "2 of 10 tasks failed".
func (e *Error) Error() string {
	return fmt.Sprintf("%d of %d tasks failed", len(e.Failures), e.Total)
}

// Unwrap exposes the individual task errors so errors.Is and errors.As can
// traverse into them.
func (e *Error) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}

	return errs
}
