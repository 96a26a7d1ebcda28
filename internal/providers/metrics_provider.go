package providers

import (
	"potatoguard/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncRemoteCalls(endpoint, outcome string)
	ObserveRemoteCallDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncFallbacks(surface string)
	SetActiveSessions(count int)
	ObservePersistenceDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	remoteCalls         *prometheus.CounterVec
	remoteCallDuration  *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	fallbacks           *prometheus.CounterVec
	activeSessions      prometheus.Gauge
	persistenceDuration prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncRemoteCalls(endpoint, outcome string) {
	m.remoteCalls.WithLabelValues(endpoint, outcome).Inc()
}

func (m *MetricsProvider) ObserveRemoteCallDuration(endpoint string, duration time.Duration) {
	m.remoteCallDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncFallbacks(surface string) {
	m.fallbacks.WithLabelValues(surface).Inc()
}

func (m *MetricsProvider) SetActiveSessions(count int) {
	m.activeSessions.Set(float64(count))
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "potatoguard_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "potatoguard_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		remoteCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "potatoguard_remote_calls_total",
			Help: "Total number of calls to the classification backend",
		}, []string{"endpoint", "outcome"}),

		remoteCallDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "potatoguard_remote_call_duration_seconds",
			Help:    "Backend call duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "potatoguard_session_cache_hits_total",
			Help: "Total number of session cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "potatoguard_session_cache_misses_total",
			Help: "Total number of session cache misses",
		}),

		fallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "potatoguard_fallbacks_total",
			Help: "Degraded responses served instead of backend data",
		}, []string{"surface"}),

		activeSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "potatoguard_active_sessions",
			Help: "Number of sessions with a stored identity",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "potatoguard_persistence_duration_seconds",
			Help:    "Duration of session snapshot persistence in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                     {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)     {}
func (n *noopMetrics) IncRemoteCalls(_, _ string)                           {}
func (n *noopMetrics) ObserveRemoteCallDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncCacheHits()                                        {}
func (n *noopMetrics) IncCacheMisses()                                      {}
func (n *noopMetrics) IncFallbacks(_ string)                                {}
func (n *noopMetrics) SetActiveSessions(_ int)                              {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)           {}
