// Package metrics owns the Prometheus registry and the collectors for HTTP
// traffic and model calls.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application collectors.
//
//   - filmdesk_http_requests_total{method,route,status}
//   - filmdesk_http_request_duration_seconds{method,route}
//   - filmdesk_llm_requests_total{provider,outcome}
//   - filmdesk_llm_request_duration_seconds{provider}
//   - filmdesk_llm_tokens_total{provider,kind}
//   - filmdesk_budget_predictions_total{outcome}
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	LLMRequestsTotal   *prometheus.CounterVec
	LLMRequestDuration *prometheus.HistogramVec
	LLMTokensTotal     *prometheus.CounterVec

	PredictionsTotal *prometheus.CounterVec
}

// New creates a private registry with Go and process collectors plus the
// application metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filmdesk_http_requests_total",
				Help: "Total number of HTTP requests handled",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "filmdesk_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		LLMRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filmdesk_llm_requests_total",
				Help: "Total number of model completions requested",
			},
			[]string{"provider", "outcome"}, // "ok", "blocked", "error"
		),
		LLMRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "filmdesk_llm_request_duration_seconds",
				Help:    "Model completion latency in seconds",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
			},
			[]string{"provider"},
		),
		LLMTokensTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filmdesk_llm_tokens_total",
				Help: "Tokens reported by the model provider",
			},
			[]string{"provider", "kind"}, // "prompt", "completion"
		),

		PredictionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filmdesk_budget_predictions_total",
				Help: "Budget predictions served",
			},
			[]string{"outcome"},
		),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route string, status string, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveLLMCall records one completion. Token counts of zero are skipped.
func (m *Metrics) ObserveLLMCall(provider, outcome string, elapsed time.Duration, promptTokens, completionTokens int) {
	m.LLMRequestsTotal.WithLabelValues(provider, outcome).Inc()
	m.LLMRequestDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
	if promptTokens > 0 {
		m.LLMTokensTotal.WithLabelValues(provider, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		m.LLMTokensTotal.WithLabelValues(provider, "completion").Add(float64(completionTokens))
	}
}

func (m *Metrics) ObservePrediction(outcome string) {
	m.PredictionsTotal.WithLabelValues(outcome).Inc()
}
