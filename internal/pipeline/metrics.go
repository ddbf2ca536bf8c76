// Package pipeline exposes Prometheus metrics for extraction outcomes.
package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AttemptsTotal counts finished extraction runs.
	// Labels: mode (rule_only, hybrid, fallback_only), outcome (done, failed)
	AttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fscdex",
			Subsystem: "pipeline",
			Name:      "attempts_total",
			Help:      "Total number of finished extraction runs",
		},
		[]string{"mode", "outcome"},
	)

	// FallbacksTotal counts collaborator fallback extraction calls.
	FallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fscdex",
			Subsystem: "pipeline",
			Name:      "fallbacks_total",
			Help:      "Total number of collaborator fallback extraction calls",
		},
	)

	// RetriesTotal counts corrective retries of fallback extraction.
	RetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fscdex",
			Subsystem: "pipeline",
			Name:      "retries_total",
			Help:      "Total number of corrective fallback retries",
		},
	)

	// ValidationFailuresTotal counts failed validations by stage.
	// Labels: stage (rule_based, fallback)
	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fscdex",
			Subsystem: "pipeline",
			Name:      "validation_failures_total",
			Help:      "Total number of failed result validations",
		},
		[]string{"stage"},
	)
)
