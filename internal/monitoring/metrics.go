package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Invoke surface metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Relay metrics
	RelayRequests *prometheus.CounterVec
	RelayDuration *prometheus.HistogramVec
	RelayChunks   prometheus.Counter
	RelayErrors   *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge

	startTime time.Time
}

// NewMetrics creates a new metrics collector registered with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_http_requests_total",
				Help: "Total number of HTTP requests handled by the backend",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backend_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		RelayRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_requests_total",
				Help: "Total number of relayed HTTP requests",
			},
			[]string{"mode", "outcome"},
		),
		RelayDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "relay_request_duration_seconds",
				Help:    "Relayed request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
		RelayChunks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "relay_stream_chunks_total",
				Help: "Total number of stream chunks forwarded to the frontend",
			},
		),
		RelayErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relay_errors_total",
				Help: "Total number of relay failures by class",
			},
			[]string{"mode"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "backend_ws_connections",
				Help: "Currently connected event bus clients",
			},
		),
	}
}

// RecordRelay records one relayed request.
func (m *Metrics) RecordRelay(mode, outcome string, duration time.Duration) {
	m.RelayRequests.WithLabelValues(mode, outcome).Inc()
	m.RelayDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if outcome != "ok" {
		m.RelayErrors.WithLabelValues(mode).Inc()
	}
}

// Uptime returns time since metrics collection started.
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}
