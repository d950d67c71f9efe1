package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "handyboss",
			Subsystem: "engine",
			Name:      "generations_total",
			Help:      "Total number of generation attempts",
		},
		[]string{"format", "outcome"},
	)

	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "handyboss",
			Subsystem: "engine",
			Name:      "generation_duration_seconds",
			Help:      "Duration of model invocations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"format"},
	)
)

func init() {
	prometheus.MustRegister(generationsTotal, generationDuration)
}
