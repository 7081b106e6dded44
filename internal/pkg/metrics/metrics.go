// Package metrics exposes Prometheus counters for the report pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	PipelineRuns        *prometheus.CounterVec
	PipelineDuration    *prometheus.HistogramVec
	FetchFailures       *prometheus.CounterVec
	ScoringFailures     prometheus.Counter
	TranslationFailures prometheus.Counter
	Deliveries          *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		PipelineRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oddsbot_pipeline_runs_total",
				Help: "Report pipeline runs by sport and trigger",
			},
			[]string{"sport", "trigger"},
		),
		PipelineDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "oddsbot_pipeline_duration_seconds",
				Help:    "Time to generate one report",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"sport"},
		),
		FetchFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oddsbot_fetch_failures_total",
				Help: "Fixture or odds fetches that returned no data because of an error",
			},
			[]string{"source"},
		),
		ScoringFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oddsbot_scoring_failures_total",
			Help: "Fixtures whose prediction could not be computed",
		}),
		TranslationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oddsbot_translation_failures_total",
			Help: "Team names left untranslated because the translator failed",
		}),
		Deliveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oddsbot_deliveries_total",
				Help: "Outbound messages by mode (push, reply) and result (ok, failed)",
			},
			[]string{"mode", "result"},
		),
	}

	registry.MustRegister(
		m.PipelineRuns,
		m.PipelineDuration,
		m.FetchFailures,
		m.ScoringFailures,
		m.TranslationFailures,
		m.Deliveries,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRun(sport, trigger string, seconds float64) {
	if m == nil {
		return
	}
	m.PipelineRuns.WithLabelValues(sport, trigger).Inc()
	m.PipelineDuration.WithLabelValues(sport).Observe(seconds)
}

func (m *Metrics) FetchFailed(source string) {
	if m == nil {
		return
	}
	m.FetchFailures.WithLabelValues(source).Inc()
}

func (m *Metrics) ScoringFailed() {
	if m == nil {
		return
	}
	m.ScoringFailures.Inc()
}

func (m *Metrics) TranslationFailed() {
	if m == nil {
		return
	}
	m.TranslationFailures.Inc()
}

func (m *Metrics) Delivered(mode string, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.Deliveries.WithLabelValues(mode, result).Inc()
}
