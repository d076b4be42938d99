package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the validator.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	validationDuration  prometheus.Observer
	validationsTotal    prometheus.Counter
	invalidRegistration prometheus.Counter
	notFoundCourses     prometheus.Counter

	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	reportsGenerated *prometheus.CounterVec
	reportFailures   prometheus.Counter
}

// NewMetricsService registers the validator's Prometheus collectors.
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

	validationDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "validation_duration_seconds",
		Help:    "Time spent validating one transcript",
		Buckets: prometheus.DefBuckets,
	})

	validationsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "validations_total",
		Help: "Total transcripts validated",
	})

	invalidRegistration := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "invalid_registrations_total",
		Help: "Total registrations flagged invalid",
	})

	notFoundCourses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "not_found_courses_total",
		Help: "Total registrations whose course is missing from the catalog",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "result_cache_hits_total",
		Help: "Total validation result cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "result_cache_misses_total",
		Help: "Total validation result cache misses",
	})

	reportsGenerated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reports_generated_total",
		Help: "Total reports generated by format",
	}, []string{"format"})

	reportFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "report_failures_total",
		Help: "Total report jobs that failed permanently",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, validationDuration, validationsTotal,
		invalidRegistration, notFoundCourses, cacheHits, cacheMisses, reportsGenerated, reportFailures, goroutines)

	return &MetricsService{
		registry:            registry,
		handler:             promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:     requestDuration,
		requestTotal:        requestTotal,
		validationDuration:  validationDuration,
		validationsTotal:    validationsTotal,
		invalidRegistration: invalidRegistration,
		notFoundCourses:     notFoundCourses,
		cacheHits:           cacheHits,
		cacheMisses:         cacheMisses,
		reportsGenerated:    reportsGenerated,
		reportFailures:      reportFailures,
	}
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

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveValidation records one completed validation run.
func (m *MetricsService) ObserveValidation(duration time.Duration, invalidCount, notFoundCount int) {
	if m == nil {
		return
	}
	m.validationDuration.Observe(duration.Seconds())
	m.validationsTotal.Inc()
	m.invalidRegistration.Add(float64(invalidCount))
	m.notFoundCourses.Add(float64(notFoundCount))
}

// RecordCacheLookup records a result cache hit or miss.
func (m *MetricsService) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}

// RecordReport counts a finished or permanently failed report job.
func (m *MetricsService) RecordReport(format string, failed bool) {
	if m == nil {
		return
	}
	if failed {
		m.reportFailures.Inc()
		return
	}
	m.reportsGenerated.WithLabelValues(format).Inc()
}
