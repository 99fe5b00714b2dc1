// Package metrics exposes Prometheus instrumentation for the dashboard:
// one family for calls made to the reconciliation engine and one for
// requests served to operators.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds all metric vectors for the application.
type Collector struct {
	engineRequests *prometheus.CounterVec
	engineLatency  *prometheus.HistogramVec
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
	uploadsActive  prometheus.Gauge
}

// NewCollector creates the metric vectors under the given namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		engineRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "engine_requests_total",
				Help:      "Total requests issued to the reconciliation engine per operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		engineLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "engine_request_duration_seconds",
				Help:      "Latency of reconciliation engine requests per operation",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests served per path and status code",
			},
			[]string{"path", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latency of served HTTP requests per path",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path"},
		),
		uploadsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "uploads_in_flight",
				Help:      "Number of reconciliation uploads currently being processed (0 or 1)",
			},
		),
	}
}

// Register registers all vectors on the given registry.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{
		c.engineRequests,
		c.engineLatency,
		c.httpRequests,
		c.httpLatency,
		c.uploadsActive,
	} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// RecordEngineRequest records one engine round trip.
func (c *Collector) RecordEngineRequest(operation string, err error, duration time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.engineRequests.WithLabelValues(operation, outcome).Inc()
	c.engineLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordHTTPRequest records one served request.
func (c *Collector) RecordHTTPRequest(path, status string, duration time.Duration) {
	c.httpRequests.WithLabelValues(path, status).Inc()
	c.httpLatency.WithLabelValues(path).Observe(duration.Seconds())
}

// UploadStarted marks an upload as in flight.
func (c *Collector) UploadStarted() {
	c.uploadsActive.Inc()
}

// UploadFinished marks an upload as done.
func (c *Collector) UploadFinished() {
	c.uploadsActive.Dec()
}
