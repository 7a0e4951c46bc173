package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsSnapshot is a small JSON view of the counters for the health page.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	UpstreamCalls            uint64    `json:"upstreamCalls"`
	UpstreamFailures         uint64    `json:"upstreamFailures"`
	AverageUpstreamMs        float64   `json:"averageUpstreamMs"`
	SessionChecks            uint64    `json:"sessionChecks"`
	SessionDenials           uint64    `json:"sessionDenials"`
	PendingActions           uint64    `json:"pendingActions"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}

// MetricsService owns the Prometheus collectors of the portal. It satisfies
// the observer interfaces of the client, guard and dispatcher packages.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamTotal    *prometheus.CounterVec
	sessionChecks    *prometheus.CounterVec
	actions          *prometheus.CounterVec

	requestCount          uint64
	requestDurationTotal  uint64
	upstreamCount         uint64
	upstreamFailures      uint64
	upstreamDurationTotal uint64
	sessionCheckCount     uint64
	sessionDenialCount    uint64
	pendingActionCount    uint64
}

// NewMetricsService registers the portal collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portal_http_request_duration_seconds",
		Help:    "Duration of portal HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_http_requests_total",
		Help: "Total number of portal HTTP requests",
	}, []string{"method", "path", "status"})

	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portal_upstream_request_duration_seconds",
		Help:    "Duration of EDUCA API calls in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	upstreamTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_upstream_requests_total",
		Help: "EDUCA API calls by operation and status; status 0 means no answer",
	}, []string{"operation", "status"})

	sessionChecks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_session_checks_total",
		Help: "Session guard decisions by outcome",
	}, []string{"outcome"})

	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_actions_total",
		Help: "Dispatched user actions by kind, name and outcome",
	}, []string{"kind", "name", "outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, upstreamDuration, upstreamTotal, sessionChecks, actions, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		upstreamDuration: upstreamDuration,
		upstreamTotal:    upstreamTotal,
		sessionChecks:    sessionChecks,
		actions:          actions,
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

// ObserveHTTPRequest records one portal request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveUpstream records one EDUCA API call.
func (m *MetricsService) ObserveUpstream(operation string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(operation).Observe(duration.Seconds())
	m.upstreamTotal.WithLabelValues(operation, strconv.Itoa(status)).Inc()
	atomic.AddUint64(&m.upstreamCount, 1)
	atomic.AddUint64(&m.upstreamDurationTotal, uint64(duration.Nanoseconds()))
	if status == 0 || status >= 400 {
		atomic.AddUint64(&m.upstreamFailures, 1)
	}
}

// ObserveSessionCheck records a guard decision.
func (m *MetricsService) ObserveSessionCheck(outcome string) {
	if m == nil {
		return
	}
	m.sessionChecks.WithLabelValues(outcome).Inc()
	atomic.AddUint64(&m.sessionCheckCount, 1)
	if outcome != "allowed" {
		atomic.AddUint64(&m.sessionDenialCount, 1)
	}
}

// ObserveAction records a dispatched action.
func (m *MetricsService) ObserveAction(kind, name, outcome string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(kind, name, outcome).Inc()
	if outcome == "pending" {
		atomic.AddUint64(&m.pendingActionCount, 1)
	}
}

// Snapshot returns aggregated counters.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	upstream := atomic.LoadUint64(&m.upstreamCount)
	upDuration := atomic.LoadUint64(&m.upstreamDurationTotal)

	var avgRequestMs, avgUpstreamMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}
	if upstream > 0 {
		avgUpstreamMs = float64(upDuration) / float64(upstream) / float64(time.Millisecond)
	}

	return MetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		UpstreamCalls:            upstream,
		UpstreamFailures:         atomic.LoadUint64(&m.upstreamFailures),
		AverageUpstreamMs:        avgUpstreamMs,
		SessionChecks:            atomic.LoadUint64(&m.sessionCheckCount),
		SessionDenials:           atomic.LoadUint64(&m.sessionDenialCount),
		PendingActions:           atomic.LoadUint64(&m.pendingActionCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
