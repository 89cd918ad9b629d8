package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API and
// the schedule generator.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	generateSeconds prometheus.Histogram
	lastConflicts   prometheus.Gauge
	storedSchedules prometheus.Gauge
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	generateSeconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_generate_duration_seconds",
		Help:    "Duration of schedule generation runs",
		Buckets: prometheus.DefBuckets,
	})

	lastConflicts := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedule_conflicts",
		Help: "Conflicting entry pairs in the most recent generation",
	})

	storedSchedules := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedules_stored",
		Help: "Schedules currently held by the repository",
	})

	registry.MustRegister(requestDuration, requestTotal, generateSeconds, lastConflicts, storedSchedules)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		generateSeconds: generateSeconds,
		lastConflicts:   lastConflicts,
		storedSchedules: storedSchedules,
	}
}

// ObserveHTTPRequest records one request for the http collectors.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveGeneration records one generator run.
func (m *MetricsService) ObserveGeneration(duration time.Duration, conflicts, stored int) {
	m.generateSeconds.Observe(duration.Seconds())
	m.lastConflicts.Set(float64(conflicts))
	m.storedSchedules.Set(float64(stored))
}

// Handler exposes the registry for the /metrics endpoint.
func (m *MetricsService) Handler() http.Handler {
	return m.handler
}
