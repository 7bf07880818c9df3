// Package metrics defines the Prometheus instrumentation shared across the
// HTTP layer and the bill service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, route, and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitbill_http_requests_total",
		Help: "HTTP requests processed, partitioned by method, route and status.",
	}, []string{"method", "route", "status"})

	// RequestDuration observes HTTP request latency by route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "splitbill_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// Recomputes counts allocation engine runs.
	Recomputes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitbill_engine_recomputes_total",
		Help: "Number of times the allocation engine recomputed a bill summary.",
	})

	// Extractions counts receipt extraction attempts by outcome.
	Extractions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitbill_extractions_total",
		Help: "Receipt extraction attempts, partitioned by outcome.",
	}, []string{"outcome"})
)
