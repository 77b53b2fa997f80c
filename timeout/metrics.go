package timeout

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var expirationsTotal = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
	Name: "timeout_expirations_total",
	Help: "The total number of operations abandoned because their timeout elapsed",
})
