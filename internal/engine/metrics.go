package engine

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "factor_runs_total",
			Help: "Total number of factorization attempts by outcome.",
		},
		[]string{"outcome"},
	)

	searchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "factor_search_duration_seconds",
			Help:    "Wall-clock duration of factorization searches in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"outcome"},
	)

	partialFactors = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "factor_timeout_partial_factors",
			Help:    "Number of factors already extracted when a search timed out.",
			Buckets: prometheus.LinearBuckets(0, 4, 8),
		},
	)
)

func init() {
	prometheus.MustRegister(runsTotal)
	prometheus.MustRegister(searchDuration)
	prometheus.MustRegister(partialFactors)
}
