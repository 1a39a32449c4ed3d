// Package prometheus provides the Prometheus metrics collector for the
// HTTP surface and the storage adapter.
package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector records service metrics with Prometheus.
type Collector struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	storeOperations *prometheus.CounterVec
	sessionsCreated prometheus.Counter
	stressSeconds   prometheus.Counter
	ready           prometheus.Gauge
}

// NewCollector creates a new Prometheus metrics collector registered on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	c := &Collector{
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "podlab_http_requests_total",
				Help: "Total number of HTTP requests handled",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "podlab_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
			[]string{"path"},
		),
		storeOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "podlab_store_operations_total",
				Help: "Total number of external store operations",
			},
			[]string{"operation", "result"},
		),
		sessionsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "podlab_sessions_created_total",
				Help: "Total number of sessions created by login",
			},
		),
		stressSeconds: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "podlab_stress_seconds_total",
				Help: "Total number of CPU seconds burned by the stress endpoint",
			},
		),
		ready: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "podlab_ready",
				Help: "Whether the instance currently reports ready (1) or not (0)",
			},
		),
	}

	// A fresh instance starts ready.
	c.ready.Set(1)

	return c
}

// RecordRequest records a handled HTTP request
func (c *Collector) RecordRequest(method, path string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// RecordStoreOperation records the outcome of an external store call
func (c *Collector) RecordStoreOperation(operation, result string) {
	c.storeOperations.WithLabelValues(operation, result).Inc()
}

// RecordSessionCreated records a successful login
func (c *Collector) RecordSessionCreated() {
	c.sessionsCreated.Inc()
}

// RecordStressSeconds records CPU seconds burned by the stress endpoint
func (c *Collector) RecordStressSeconds(seconds int) {
	c.stressSeconds.Add(float64(seconds))
}

// SetReady records the current readiness state
func (c *Collector) SetReady(ready bool) {
	if ready {
		c.ready.Set(1)
	} else {
		c.ready.Set(0)
	}
}
