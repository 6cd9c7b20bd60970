// internal/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the Prometheus collectors used across the service.
type Metrics struct {
	registry *prometheus.Registry

	// Commands counts processed commands by category and outcome
	// (success, rejected, fallback).
	Commands *prometheus.CounterVec
	// FallbackRequests counts generative-service calls by result
	// (success, unavailable, no_answer).
	FallbackRequests *prometheus.CounterVec
	// FallbackLatency observes generative-service call duration in seconds.
	FallbackLatency prometheus.Histogram
}

// New creates a Metrics instance backed by its own registry.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		Commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Processed commands by category and outcome.",
		}, []string{"category", "outcome"}),
		FallbackRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_requests_total",
			Help:      "Generative fallback calls by result.",
		}, []string{"result"}),
		FallbackLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fallback_latency_seconds",
			Help:      "Latency of generative fallback calls.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
