// Package metrics exposes the Prometheus collectors of the order service.
// Every collector lives on a private registry so that tests and multiple
// servers in one process do not collide on the default registerer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"restaurant/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "restaurant"

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Operations      *prometheus.CounterVec
	AuditFailures   *prometheus.CounterVec
	NumbersIssued   *prometheus.CounterVec
	CountersPruned  prometheus.Counter
	HTTPRequests    *prometheus.CounterVec
	HTTPLatencySecs *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "operations_total",
			Help:      "Order operations by name and outcome kind.",
		}, []string{"operation", "outcome"}),
		AuditFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "failures_total",
			Help:      "Audit events that could not be delivered.",
		}, []string{"action"}),
		NumbersIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "numbering",
			Name:      "issued_total",
			Help:      "Order numbers issued by backend.",
		}, []string{"backend"}),
		CountersPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "numbering",
			Name:      "counters_pruned_total",
			Help:      "Day counters removed by the prune job.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPLatencySecs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		m.Operations,
		m.AuditFailures,
		m.NumbersIssued,
		m.CountersPruned,
		m.HTTPRequests,
		m.HTTPLatencySecs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveOperation counts one order operation. The outcome label is "ok" or
// the errs.Kind of err.
func (m *Metrics) ObserveOperation(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = errs.KindOf(err).String()
	}
	m.Operations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) AuditFailed(action string) {
	if m == nil {
		return
	}
	m.AuditFailures.WithLabelValues(action).Inc()
}

func (m *Metrics) NumberIssued(backend string) {
	if m == nil {
		return
	}
	m.NumbersIssued.WithLabelValues(backend).Inc()
}

func (m *Metrics) Pruned(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.CountersPruned.Add(float64(n))
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPLatencySecs.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
