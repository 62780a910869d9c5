// Package metrics declares the Prometheus collectors for scoring and
// report generation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Submissions      *prometheus.CounterVec
	ReportAttempts   *prometheus.CounterVec
	ReportOutcomes   *prometheus.CounterVec
	ReportDuration   prometheus.Histogram
	StateTransitions *prometheus.CounterVec
}

// New registers the collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wellbeing",
			Name:      "submissions_total",
			Help:      "Scored submissions by outcome.",
		}, []string{"outcome"}),
		ReportAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wellbeing",
			Name:      "report_attempts_total",
			Help:      "Outbound LLM calls by attempt number and result.",
		}, []string{"attempt", "result"}),
		ReportOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wellbeing",
			Name:      "report_outcomes_total",
			Help:      "Report generations by final outcome kind.",
		}, []string{"kind"}),
		ReportDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wellbeing",
			Name:      "report_duration_seconds",
			Help:      "Wall time of a report generation including the retry.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 15, 20, 30, 45},
		}),
		StateTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wellbeing",
			Name:      "report_state_transitions_total",
			Help:      "Orchestrator state machine transitions.",
		}, []string{"from", "to"}),
	}
}

// ObserveSubmission counts a scored submission
func (m *Metrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

// ObserveAttempt counts one outbound LLM attempt
func (m *Metrics) ObserveAttempt(attempt, result string) {
	if m == nil {
		return
	}
	m.ReportAttempts.WithLabelValues(attempt, result).Inc()
}

// ObserveOutcome records the final outcome of a generation
func (m *Metrics) ObserveOutcome(kind string, seconds float64) {
	if m == nil {
		return
	}
	m.ReportOutcomes.WithLabelValues(kind).Inc()
	m.ReportDuration.Observe(seconds)
}

// ObserveTransition counts a state machine transition
func (m *Metrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}
	m.StateTransitions.WithLabelValues(from, to).Inc()
}
