package service

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "event_planner"

// MetricsService owns the Prometheus registry and every collector the API reports.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	cacheLatency  prometheus.Histogram
	cacheWrite    prometheus.Histogram
	cacheHitRatio prometheus.Gauge
	cacheLookups  *prometheus.CounterVec

	transitions    *prometheus.CounterVec
	notifications  *prometheus.CounterVec
	pushDeliveries *prometheus.CounterVec

	cacheHitCount  uint64
	cacheMissCount uint64
}

// NewMetricsService builds a private registry so tests and servers never share collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)
	httpLabels := []string{"method", "path", "status"}

	return &MetricsService{
		registry: registry,
		handler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of API requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, httpLabels),
		requestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "API requests by route and status.",
		}, httpLabels),
		cacheLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "read_seconds",
			Help:      "Latency of dashboard cache reads.",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheWrite: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "write_seconds",
			Help:      "Latency of dashboard cache writes.",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheHitRatio: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "hit_ratio",
			Help:      "Share of dashboard cache reads served from Redis.",
		}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Dashboard cache reads by result.",
		}, []string{"result"}),
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "events",
			Name:      "lifecycle_transitions_total",
			Help:      "Event lifecycle operations by action and resulting status.",
		}, []string{"action", "status"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "notifications",
			Name:      "created_total",
			Help:      "Notifications persisted by type and outcome.",
		}, []string{"type", "outcome"}),
		pushDeliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "push",
			Name:      "deliveries_total",
			Help:      "Realtime push attempts by outcome.",
		}, []string{"outcome"}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation counts one cache read and refreshes the hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	var hits, misses uint64
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		hits = atomic.AddUint64(&m.cacheHitCount, 1)
		misses = atomic.LoadUint64(&m.cacheMissCount)
	} else {
		m.cacheLookups.WithLabelValues("miss").Inc()
		misses = atomic.AddUint64(&m.cacheMissCount, 1)
		hits = atomic.LoadUint64(&m.cacheHitCount)
	}
	m.cacheHitRatio.Set(float64(hits) / float64(hits+misses))
}

// ObserveCacheWrite records a cache write latency.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// RecordTransition counts a completed lifecycle operation. Deletes report status "DELETED".
func (m *MetricsService) RecordTransition(action, status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action, status).Inc()
}

// RecordNotification counts a notification write attempt.
func (m *MetricsService) RecordNotification(notificationType string, ok bool) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(notificationType, outcome(ok)).Inc()
}

// RecordPush counts a realtime delivery attempt.
func (m *MetricsService) RecordPush(ok bool) {
	if m == nil {
		return
	}
	m.pushDeliveries.WithLabelValues(outcome(ok)).Inc()
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
