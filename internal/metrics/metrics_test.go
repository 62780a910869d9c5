package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSubmission("persisted")
	m.ObserveAttempt("1", "timeout")
	m.ObserveAttempt("2", "ok")
	m.ObserveOutcome("success", 1.5)
	m.ObserveTransition("sending", "retrying")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("persisted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportAttempts.WithLabelValues("2", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportOutcomes.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StateTransitions.WithLabelValues("sending", "retrying")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSubmission("x")
		m.ObserveAttempt("1", "ok")
		m.ObserveOutcome("success", 1)
		m.ObserveTransition("a", "b")
	})
}
