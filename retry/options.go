package retry

import "log/slog"

// defaultName labels metrics for runners that don't set WithName.
const defaultName = "retry"

// Option is a function that configures a Runner or ValueRunner.
type Option func(*options)

// options holds the internal configuration for retry behavior.
type options struct {
	name     string           // Label for metrics and log lines
	attempts Attempts         // Maximum number of attempts, including the first
	backoff  Backoff          // Backoff strategy for calculating delays
	jitter   Jitter           // Jitter strategy for randomizing delays
	retryIf  func(error) bool // Predicate deciding whether an error is retryable
	logger   *slog.Logger     // Logger override; defaults to logger.Get(ctx)
}

// WithName labels the runner's metrics and log lines, so that separate
// callers can be told apart on dashboards.
//
// Example:
//
//	runner := retry.NewRunner(retry.WithName("billing-api"))
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithAttempts configures the maximum number of attempts, counting the
// initial call. A value of 0 means unlimited retries (use with caution).
func WithAttempts(a Attempts) Option {
	return func(o *options) {
		o.attempts = a
	}
}

// WithBackoff configures the backoff strategy for calculating retry delays.
//
// Example:
//
//	runner := retry.NewRunner(retry.WithBackoff(retry.ExpBackoff{
//	    Base:   time.Second,
//	    Max:    10 * time.Second,
//	    Factor: 2.0,
//	}))
func WithBackoff(b Backoff) Option {
	return func(o *options) {
		o.backoff = b
	}
}

// WithJitter configures the jitter strategy for randomizing retry delays.
//
// Example:
//
//	runner := retry.NewRunner(retry.WithJitter(retry.FullJitter))
func WithJitter(j Jitter) Option {
	return func(o *options) {
		o.jitter = j
	}
}

// WithRetryIf configures a predicate consulted after each failure. If it
// returns false, the error is returned immediately with no delay and no
// further attempts. Without this option every error is retried.
//
// Example:
//
//	runner := retry.NewRunner(retry.WithRetryIf(func(err error) bool {
//	    return !errors.Is(err, ErrNotFound)
//	}))
func WithRetryIf(predicate func(error) bool) Option {
	return func(o *options) {
		o.retryIf = predicate
	}
}

// WithLogger injects the logger used for per-attempt and terminal log lines.
// Without this option the runner uses logger.Get(ctx) at call time.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		o.logger = log
	}
}
