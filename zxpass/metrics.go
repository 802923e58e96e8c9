package zxpass

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	passesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zxdeck",
			Subsystem: "zxpass",
			Name:      "passes_total",
			Help:      "Total number of pass invocations",
		},
		// status: success/error/empty
		[]string{"status"},
	)

	runsOptimizedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "zxdeck",
			Subsystem: "zxpass",
			Name:      "runs_optimized_total",
			Help:      "Total number of runs handed to the optimizer",
		},
	)

	passthroughsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "zxdeck",
			Subsystem: "zxpass",
			Name:      "passthroughs_total",
			Help:      "Total number of operations kept verbatim",
		},
	)

	gatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zxdeck",
			Subsystem: "zxpass",
			Name:      "gates_total",
			Help:      "Gates entering and leaving the optimizer",
		},
		[]string{"direction"}, // direction: in/out
	)

	passDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "zxdeck",
			Subsystem: "zxpass",
			Name:      "pass_duration_seconds",
			Help:      "Duration of a full pass invocation",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
