// Package metrics exposes Prometheus collectors for habit, star and
// redemption activity and for the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "habitus"

// Metrics owns a private registry so several services can coexist in one
// process (tests in particular). A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HabitOps     *prometheus.CounterVec
	Stars        *prometheus.CounterVec
	Redemptions  *prometheus.CounterVec
	ReqCount     *prometheus.CounterVec
	ReqDuration  *prometheus.HistogramVec
	StorageError *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HabitOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "habit_operations_total",
				Help:      "Habit operations by action and outcome",
			},
			[]string{"action", "result"},
		),
		Stars: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stars_total",
				Help:      "Stars moved by kind (earned, reversed, spent)",
			},
			[]string{"kind"},
		),
		Redemptions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "redemptions_total",
				Help:      "Redemption attempts by outcome",
			},
			[]string{"result"},
		),
		ReqCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		ReqDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		StorageError: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "storage_errors_total",
				Help:      "Storage failures by operation",
			},
			[]string{"op"},
		),
	}

	m.registry.MustRegister(
		m.HabitOps, m.Stars, m.Redemptions, m.ReqCount, m.ReqDuration, m.StorageError,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func result(applied bool) string {
	if applied {
		return "applied"
	}
	return "rejected"
}

// HabitOp counts one habit operation.
func (m *Metrics) HabitOp(action string, applied bool) {
	if m == nil {
		return
	}
	m.HabitOps.WithLabelValues(action, result(applied)).Inc()
}

// StarDelta records a balance change. Positive deltas count as earned,
// negative ones as reversed.
func (m *Metrics) StarDelta(delta int) {
	if m == nil || delta == 0 {
		return
	}
	if delta > 0 {
		m.Stars.WithLabelValues("earned").Add(float64(delta))
		return
	}
	m.Stars.WithLabelValues("reversed").Add(float64(-delta))
}

// Redemption counts a redemption attempt and the stars it spent.
func (m *Metrics) Redemption(applied bool, cost int) {
	if m == nil {
		return
	}
	m.Redemptions.WithLabelValues(result(applied)).Inc()
	if applied {
		m.Stars.WithLabelValues("spent").Add(float64(cost))
	}
}

func (m *Metrics) StorageFailure(op string) {
	if m == nil {
		return
	}
	m.StorageError.WithLabelValues(op).Inc()
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ReqCount.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.ReqDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and embedding.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
