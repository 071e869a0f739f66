// Package metrics provides prometheus metric collection.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the metric collector set.
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge
	bookingsTotal        *prometheus.CounterVec
	emailsTotal          *prometheus.CounterVec
	pricingFallbackTotal prometheus.Counter
}

var defaultMetrics *Metrics

// Init registers the collectors under the given namespace.
func Init(namespace string) *Metrics {
	if namespace == "" {
		namespace = "casa_sueno"
	}

	m := &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		httpRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		bookingsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bookings_total",
				Help:      "Total number of booking state transitions",
			},
			[]string{"status"},
		),
		emailsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "emails_total",
				Help:      "Total number of transactional emails by outcome",
			},
			[]string{"template", "outcome"},
		),
		pricingFallbackTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pricing_fallback_total",
				Help:      "Times the static pricing fallback replaced the live store",
			},
		),
	}

	defaultMetrics = m
	return m
}

// Get returns the default collector set.
func Get() *Metrics {
	if defaultMetrics == nil {
		defaultMetrics = Init("")
	}
	return defaultMetrics
}

// RecordBooking counts a booking state transition.
func (m *Metrics) RecordBooking(status string) {
	m.bookingsTotal.WithLabelValues(status).Inc()
}

// RecordEmail counts an email send attempt.
func (m *Metrics) RecordEmail(template, outcome string) {
	m.emailsTotal.WithLabelValues(template, outcome).Inc()
}

// RecordPricingFallback counts a fallback activation.
func (m *Metrics) RecordPricingFallback() {
	m.pricingFallbackTotal.Inc()
}

// Middleware records HTTP request counters and latency.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.httpRequestsInFlight.Inc()

		c.Next()

		m.httpRequestsInFlight.Dec()
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler returns the /metrics endpoint handler.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
