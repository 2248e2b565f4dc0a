package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exposed on /metrics. Each instance has its
// own registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	inFlight     prometheus.Gauge
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	recipeWrites *prometheus.CounterVec
	recipeViews  prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "virtualkitchen",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "virtualkitchen",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "virtualkitchen",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
		recipeWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "virtualkitchen",
			Subsystem: "recipes",
			Name:      "writes_total",
			Help:      "Recipe writes by operation and outcome.",
		}, []string{"op", "outcome"}),
		recipeViews: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "virtualkitchen",
			Subsystem: "recipes",
			Name:      "views_total",
			Help:      "Recipe detail views.",
		}),
	}

	m.Registry.MustRegister(
		m.inFlight,
		m.requests,
		m.duration,
		m.recipeWrites,
		m.recipeViews,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RequestStarted() {
	m.inFlight.Inc()
}

func (m *Metrics) RequestFinished(method, route, status string, d time.Duration) {
	m.inFlight.Dec()
	m.requests.WithLabelValues(method, route, status).Inc()
	m.duration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecipeWrite counts create, update, delete and publish attempts.
func (m *Metrics) RecipeWrite(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.recipeWrites.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) RecipeViewed() {
	m.recipeViews.Inc()
}
