package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/reoring/opendata/metrics"
)

func TestMetrics_Counts(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.IncrementValidation("MonitorInfo", "current")
	m.IncrementValidation("MonitorInfo", "current")
	m.IncrementValidation("MonitorInfo", metrics.OutcomeRejected)
	m.IncrementIssue("MonitorInfo", "required")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Validations.WithLabelValues("MonitorInfo", "current")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("MonitorInfo", metrics.OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Issues.WithLabelValues("MonitorInfo", "required")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.IncrementValidation("MonitorInfo", "legacy")
		m.IncrementIssue("MonitorInfo", "required")
	})
}
