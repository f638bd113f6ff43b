package tasks

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts tagging task outcomes.
type Metrics struct {
	Processed *prometheus.CounterVec
	Predict   prometheus.Histogram
}

// NewMetrics registers the task metrics against reg. Pass a fresh
// registry in tests to avoid duplicate-registration panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Processed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tagging_tasks_total",
				Help: "Tagging tasks processed, by outcome",
			},
			[]string{"outcome"}, // "tagged", "listing_gone", "failed"
		),
		Predict: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tagging_predict_duration_seconds",
				Help:    "Duration of tag prediction per listing",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.Processed, m.Predict)
	}
	return m
}
