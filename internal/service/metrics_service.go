package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns the Prometheus registry for HTTP, cache and roster
// instrumentation. A nil *MetricsService is a valid no-op recorder.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Histogram
	cacheWrite      prometheus.Histogram
	cacheLookups    *prometheus.CounterVec

	generationRuns     *prometheus.CounterVec
	generationDuration prometheus.Histogram
	shiftsGenerated    *prometheus.CounterVec
	underfilledSlots   prometheus.Counter
	editEntries        *prometheus.CounterVec
}

// NewMetricsService registers collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	m := &MetricsService{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		cacheLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_latency_seconds",
			Help:    "Latency for cache lookups",
			Buckets: prometheus.DefBuckets,
		}),
		cacheWrite: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_write_seconds",
			Help:    "Latency for cache set operations",
			Buckets: prometheus.DefBuckets,
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Cache lookups by result",
		}, []string{"result"}),
		generationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shift_generation_runs_total",
			Help: "Month generation runs by result",
		}, []string{"result"}),
		generationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "shift_generation_duration_seconds",
			Help:    "Duration of month generation runs",
			Buckets: prometheus.DefBuckets,
		}),
		shiftsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shifts_generated_total",
			Help: "Shift rows produced by the generator by kind",
		}, []string{"kind"}),
		underfilledSlots: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shift_underfilled_slots_total",
			Help: "Slots left below their required headcount",
		}),
		editEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shift_edit_entries_total",
			Help: "Processed edit entries by outcome",
		}, []string{"outcome"}),
	}

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		m.requestDuration, m.requestTotal,
		m.cacheLatency, m.cacheWrite, m.cacheLookups,
		m.generationRuns, m.generationDuration, m.shiftsGenerated, m.underfilledSlots, m.editEntries,
		goroutines,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation records a cache lookup.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveCacheWrite tracks the duration for cache writes.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// RecordGeneration records one generator run. Counts are only added on success.
func (m *MetricsService) RecordGeneration(success bool, duration time.Duration, regular, temporary, underfilled int) {
	if m == nil {
		return
	}
	m.generationDuration.Observe(duration.Seconds())
	if !success {
		m.generationRuns.WithLabelValues("error").Inc()
		return
	}
	m.generationRuns.WithLabelValues("success").Inc()
	m.shiftsGenerated.WithLabelValues("regular").Add(float64(regular))
	m.shiftsGenerated.WithLabelValues("temporary").Add(float64(temporary))
	m.underfilledSlots.Add(float64(underfilled))
}

// RecordEditOutcome counts one processed edit entry.
func (m *MetricsService) RecordEditOutcome(outcome string) {
	if m == nil {
		return
	}
	m.editEntries.WithLabelValues(outcome).Inc()
}
