package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is the metrics surface used by the HTTP layer and services
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordTransition(transition string)
}

// Collector records Prometheus metrics
type Collector struct {
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	transitions *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bms_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bms_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bms_application_transitions_total",
			Help: "Application workflow transitions by kind",
		}, []string{"transition"}),
	}

	reg.MustRegister(c.requests, c.latency, c.transitions)

	return c
}

// RecordRequest records one served HTTP request
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordTransition records one committed workflow transition
func (c *Collector) RecordTransition(transition string) {
	c.transitions.WithLabelValues(transition).Inc()
}

// Nop discards everything
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordTransition(string)                          {}
