package retry

// Error is an interface for errors that can indicate whether they are
// temporary (retryable) or permanent (non-retryable). If an operation returns
// an error implementing this interface and Temporary() reports false, the
// retry loop stops immediately without further attempts.
type Error interface {
	// Temporary returns true if the operation should be retried.
	Temporary() bool
	error
}

// permanentError wraps an error to mark it as permanent (non-retryable).
type permanentError struct {
	error
}

// Temporary returns false to indicate this error should not be retried.
func (e *permanentError) Temporary() bool { return false }

// Unwrap returns the underlying error for error chain unwrapping.
func (e *permanentError) Unwrap() error {
	return e.error
}

// Abort wraps an error to mark it as permanent, causing the retry loop to
// stop immediately. The retry loop unwraps the marker, so the caller receives
// the original error.
//
// Example:
//
//	if err := validateInput(data); err != nil {
//	    return retry.Abort(err) // Don't retry validation errors
//	}
//	if err := makeAPICall(data); err != nil {
//	    return err // Do retry API errors
//	}
func Abort(err error) Error {
	return &permanentError{err}
}
