// Package metric exposes Prometheus instrumentation for the SDK client.
// Attach a Collector with hypernode.WithMetrics and serve its Registry
// through promhttp to observe request volume, latency, retries and
// in-flight requests.
package metric

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Hypernode-sol/hypernode-sdk-go/errors"
)

const (
	namespace = "hypernode"
	subsystem = "sdk"
)

// Collector holds the client-side metrics and the registry they are
// registered with. Routes are labelled with their templates, for example
// /v1/deployments/{id}, so cardinality stays bounded.
type Collector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retriesTotal    *prometheus.CounterVec
	inflight        prometheus.Gauge
}

// NewCollector creates a Collector backed by its own registry.
func NewCollector() (*Collector, error) {
	return NewCollectorWithRegistry(prometheus.NewRegistry())
}

// NewCollectorWithRegistry creates a Collector registered with an existing
// registry, for embedding the SDK metrics into an application's metrics
// endpoint.
func NewCollectorWithRegistry(registry *prometheus.Registry) (*Collector, error) {
	c := &Collector{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Total number of API requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "API request duration in seconds, including retries",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		retriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "retries_total",
				Help:      "Total number of retried request attempts by route",
			},
			[]string{"route"},
		),
		inflight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "inflight_requests",
				Help:      "Number of API requests currently in flight",
			},
		),
	}

	collectors := []prometheus.Collector{
		c.requestsTotal, c.requestDuration, c.retriesTotal, c.inflight,
	}
	for _, col := range collectors {
		if err := registry.Register(col); err != nil {
			var already prometheus.AlreadyRegisteredError
			if stderrors.As(err, &already) {
				return nil, errors.NewValidation("metric already registered: " + err.Error())
			}
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return c, nil
}

// Registry returns the registry the collector's metrics live in.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRequest records one completed request. A status of zero means the
// request never produced an HTTP response.
func (c *Collector) ObserveRequest(method, route string, status int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveRetry records one retried attempt against a route.
func (c *Collector) ObserveRetry(route string) {
	c.retriesTotal.WithLabelValues(route).Inc()
}

// RequestStarted increments the in-flight gauge.
func (c *Collector) RequestStarted() {
	c.inflight.Inc()
}

// RequestFinished decrements the in-flight gauge.
func (c *Collector) RequestFinished() {
	c.inflight.Dec()
}
