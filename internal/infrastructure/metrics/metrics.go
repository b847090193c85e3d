package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GenerationRequestsTotal counts vision generation calls by provider and outcome
	GenerationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_generation_requests_total",
			Help: "Total number of vision generation requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	// GenerationDuration observes vision generation latency by provider
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_generation_duration_seconds",
			Help:    "Duration of vision generation calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"provider"},
	)

	// TruncationWarningsTotal counts responses that reached the truncation warning length
	TruncationWarningsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_truncation_warnings_total",
			Help: "Responses whose length reached the truncation warning threshold",
		},
		[]string{"provider"},
	)

	// ResponseRepairsTotal counts fashion responses by repair state
	ResponseRepairsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fashion_response_repairs_total",
			Help: "Fashion responses by repair state (incomplete, missing_section, complete)",
		},
		[]string{"state"},
	)
)

// Generation outcomes
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)
