package batch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	batchesTotal = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "batch_runs_total",
		Help: "The total number of batches executed",
	})

	tasksTotal = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "batch_tasks_total",
		Help: "The total number of tasks submitted across all batches",
	})

	tasksFailed = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "batch_tasks_failed_total",
		Help: "The total number of tasks that settled with an error",
	})

	inFlight = promauto.NewGauge(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "batch_tasks_in_flight",
		Help: "The number of tasks currently executing",
	})
)
