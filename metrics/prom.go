package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	Lookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pwncheck_lookups_total",
			Help: "no. of lookups by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pwncheck_request_duration_seconds",
			Help:    "upstream request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	UpstreamStatus = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pwncheck_upstream_responses_total",
			Help: "no. of upstream responses by status code",
		},
		[]string{"operation", "code"},
	)
)
