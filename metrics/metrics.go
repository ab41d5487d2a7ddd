// Package metrics exposes Prometheus metrics for the cafe API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace sets the metric namespace (default "cafe").
func WithNamespace(ns string) Option {
	return func(m *Manager) { m.namespace = ns }
}

// WithBuckets overrides the latency histogram buckets.
func WithBuckets(b []float64) Option {
	return func(m *Manager) { m.buckets = b }
}

// WithRuntimeCollectors registers the Go and process collectors as well.
func WithRuntimeCollectors() Option {
	return func(m *Manager) { m.runtime = true }
}

// Manager owns a private registry and the service's collectors.
type Manager struct {
	namespace string
	buckets   []float64
	runtime   bool
	registry  *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	storeOperations     *prometheus.CounterVec
	cafesTotal          prometheus.Gauge
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "cafe",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   m.buckets,
	}, []string{"route", "method"})

	m.storeOperations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Cafe store operations by name and outcome.",
	}, []string{"operation", "outcome"})

	m.cafesTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "cafes",
		Help:      "Number of cafes currently stored.",
	})

	if m.runtime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// ObserveRequest records one finished HTTP request.
func (m *Manager) ObserveRequest(route, method, statusCode string, seconds float64) {
	m.httpRequests.WithLabelValues(route, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(seconds)
}

// RecordStoreOperation counts a store call; outcome is e.g. "ok", "not_found".
func (m *Manager) RecordStoreOperation(operation, outcome string) {
	m.storeOperations.WithLabelValues(operation, outcome).Inc()
}

func (m *Manager) SetCafes(n int64) {
	m.cafesTotal.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}
