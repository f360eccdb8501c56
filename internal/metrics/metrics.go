// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_mutations_total",
			Help: "Total number of planner mutations",
		},
		[]string{"entity", "op"},
	)

	SessionMinutesHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planner_session_minutes",
			Help:    "Distribution of scheduled revision session durations",
			Buckets: prometheus.LinearBuckets(15, 15, 12),
		},
		[]string{"bucket"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
