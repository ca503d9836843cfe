// Package metrics holds the Prometheus instruments for task finalization.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects finalization counters. A nil *Metrics is safe to call so
// tests can pass nil without registering collectors.
type Metrics struct {
	finalizations      *prometheus.CounterVec
	validationRuleHits *prometheus.CounterVec
	finalizeDuration   prometheus.Histogram
	republishedRecords prometheus.Counter
}

// New creates and registers all task metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		finalizations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dokdig_finalizations_total",
			Help: "Finalization operations by operation and outcome",
		}, []string{"operation", "outcome"}),
		validationRuleHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dokdig_validation_rule_hits_total",
			Help: "Validation violations by origin",
		}, []string{"origin"}),
		finalizeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dokdig_finalize_duration_seconds",
			Help:    "End-to-end duration of finalize operations",
			Buckets: prometheus.DefBuckets,
		}),
		republishedRecords: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dokdig_republished_records_total",
			Help: "Finalized records re-published by the reconciliation worker",
		}),
	}
}

// RecordOperation counts one finalization operation with its outcome.
func (m *Metrics) RecordOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.finalizations.WithLabelValues(operation, outcome).Inc()
}

// RecordValidationFailure counts a validation rejection for the origin.
func (m *Metrics) RecordValidationFailure(origin string) {
	if m == nil {
		return
	}
	m.validationRuleHits.WithLabelValues(origin).Inc()
}

// ObserveFinalizeDuration records the duration of one finalize call.
func (m *Metrics) ObserveFinalizeDuration(seconds float64) {
	if m == nil {
		return
	}
	m.finalizeDuration.Observe(seconds)
}

// RecordRepublished counts a record re-published by the reconciliation worker.
func (m *Metrics) RecordRepublished() {
	if m == nil {
		return
	}
	m.republishedRecords.Inc()
}
