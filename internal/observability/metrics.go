package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	Registry        *prometheus.Registry
	RequestCount    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ErrorCount      *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec
	Mutations       *prometheus.CounterVec
}

// NewMetrics registers the service collectors on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	return &Metrics{
		Registry: reg,
		RequestCount: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "registry_http_requests_total",
			Help: "HTTP requests served, by route, method and status.",
		}, []string{"route", "method", "status"}),
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registry_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		ErrorCount: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "registry_http_errors_total",
			Help: "Failed HTTP requests, by route, method and error code.",
		}, []string{"route", "method", "code"}),
		StoreDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registry_store_query_duration_seconds",
			Help:    "Duration of document store operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}), // operation: insert, find_all, find_by_id, update_by_id, remove_by_id, find_conflict
		Mutations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "registry_employee_mutations_total",
			Help: "Successful employee mutations, by event type.",
		}, []string{"type"}),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestCount.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.ErrorCount.WithLabelValues(route, method, code).Inc()
}

// ObserveStore records how long a store operation took since start.
func (m *Metrics) ObserveStore(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.StoreDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordMutation counts a successful create, update or delete.
func (m *Metrics) RecordMutation(eventType string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(eventType).Inc()
}
