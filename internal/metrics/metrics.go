package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_generation_calls_total",
			Help: "Total outbound generation calls by task",
		},
		[]string{"task"},
	)

	GenerationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_generation_failures_total",
			Help: "Total failed generation calls by task",
		},
		[]string{"task"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_generation_duration_seconds",
			Help: "Duration of generation calls in seconds",
		},
		[]string{"task"},
	)

	BoundaryRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_boundary_requests_total",
			Help: "Boundary requests by request type and status",
		},
		[]string{"type", "status"},
	)
)
