// Package metrics собирает Prometheus-метрики HTTP-слоя, хранилища и доменных событий.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Booking lifecycle events counted by IncBookingEvent.
const (
	EventBookingCreated   = "created"
	EventBookingCancelled = "cancelled"
	EventStatusUpdated    = "status_updated"
)

// Metrics владеет собственным registry, чтобы тесты могли создавать несколько экземпляров.
// Все методы безопасны для nil-получателя: это позволяет отключить метрики в конфигурации.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	dbOperationDuration *prometheus.HistogramVec
	bookingEvents       *prometheus.CounterVec
}

// New создает и регистрирует коллекторы сервиса serviceName.
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by method, route and status.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by method and route.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbOperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_operation_duration_seconds",
			Help:        "Storage operation latency by store, operation and outcome.",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"store", "operation", "success"}),
		bookingEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_events_total",
			Help:        "Booking lifecycle events.",
			ConstLabels: constLabels,
		}, []string{"event"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbOperationDuration,
		m.bookingEvents,
	)

	return m
}

// MustRegister регистрирует дополнительные коллекторы (например, sql.DBStats).
func (m *Metrics) MustRegister(cs ...prometheus.Collector) {
	if m == nil {
		return
	}
	m.registry.MustRegister(cs...)
}

// Handler отдает метрики в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBOperation(store, operation string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbOperationDuration.WithLabelValues(store, operation, strconv.FormatBool(success)).Observe(duration.Seconds())
}

func (m *Metrics) IncBookingEvent(event string) {
	if m == nil {
		return
	}
	m.bookingEvents.WithLabelValues(event).Inc()
}
