package retry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	attemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "retry_attempts_total",
		Help: "The total number of operation attempts, including the initial call",
	}, []string{"name"})

	failuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "retry_failures_total",
		Help: "The total number of failed attempts",
	}, []string{"name"})

	abortedTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "retry_aborted_total",
		Help: "The total number of operations abandoned on a non-retryable error",
	}, []string{"name"})

	exhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "retry_exhausted_total",
		Help: "The total number of operations that failed after exhausting all attempts",
	}, []string{"name"})
)
