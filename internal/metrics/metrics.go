package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Source labels.
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	BlueprintsTotal   *prometheus.CounterVec
	ImageFetchesTotal *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prototype_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prototype_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		BlueprintsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prototype_blueprint_generation_total",
				Help: "Blueprints produced, by source and fallback reason",
			},
			[]string{"source", "reason"},
		),
		ImageFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prototype_image_fetch_total",
				Help: "Image searches, by source and fallback reason",
			},
			[]string{"source", "reason"},
		),
	}
}

// RecordBlueprint counts one generated blueprint. Nil receivers are ignored.
func (m *Metrics) RecordBlueprint(source, reason string) {
	if m == nil {
		return
	}
	m.BlueprintsTotal.WithLabelValues(source, reason).Inc()
}

// RecordImageFetch counts one image search. Nil receivers are ignored.
func (m *Metrics) RecordImageFetch(source, reason string) {
	if m == nil {
		return
	}
	m.ImageFetchesTotal.WithLabelValues(source, reason).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency.
func Middleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
