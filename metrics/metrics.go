// Package metrics counts composite record validations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeRejected = "rejected"
)

// Metrics provides observability for record validation.
type Metrics struct {
	// Validation outcomes by record kind and matched generation (or "rejected")
	Validations *prometheus.CounterVec

	// Issues reported by rejected validations, by record kind and issue code
	Issues *prometheus.CounterVec
}

// New creates a Metrics instance registered with reg. A nil reg registers
// with the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "opendata_validations_total",
			Help: "Total composite record validations by record kind and outcome",
		}, []string{"record", "outcome"}), // outcome: "current", "legacy", "rejected"

		Issues: f.NewCounterVec(prometheus.CounterOpts{
			Name: "opendata_validation_issues_total",
			Help: "Total issues reported by rejected validations by record kind and code",
		}, []string{"record", "code"}),
	}
}

// IncrementValidation records one validation outcome.
func (m *Metrics) IncrementValidation(record, outcome string) {
	if m != nil {
		m.Validations.WithLabelValues(record, outcome).Inc()
	}
}

// IncrementIssue records one issue of a rejected validation.
func (m *Metrics) IncrementIssue(record, code string) {
	if m != nil {
		m.Issues.WithLabelValues(record, code).Inc()
	}
}
