// Package metrics records plan generation counters for Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	plans       *prometheus.CounterVec
	validation  *prometheus.CounterVec
	llmDuration *prometheus.HistogramVec
	llmErrors   *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		gatherer: reg,
		plans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workoutplanner_plans_generated_total",
			Help: "Plans returned to callers, by strategy, fitness level and equipment",
		}, []string{"strategy", "fitness_level", "equipment"}),
		validation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workoutplanner_validation_failures_total",
			Help: "Requests rejected by input validation, by kind",
		}, []string{"kind"}),
		llmDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "workoutplanner_llm_request_duration_seconds",
			Help:    "Latency of text-generation provider calls",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
		}, []string{"provider"}),
		llmErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workoutplanner_llm_errors_total",
			Help: "Failed text-generation provider calls",
		}, []string{"provider"}),
	}
	reg.MustRegister(m.plans, m.validation, m.llmDuration, m.llmErrors)
	return m
}

// PlanGenerated counts a successful plan.
func (m *Metrics) PlanGenerated(strategy, level, equipment string) {
	if m == nil {
		return
	}
	m.plans.WithLabelValues(strategy, level, equipment).Inc()
}

// ValidationFailed counts a rejected request.
func (m *Metrics) ValidationFailed(kind string) {
	if m == nil {
		return
	}
	m.validation.WithLabelValues(kind).Inc()
}

// ObserveLLM records one provider call.
func (m *Metrics) ObserveLLM(provider string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.llmDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
	if err != nil {
		m.llmErrors.WithLabelValues(provider).Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
