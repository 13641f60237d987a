// Package metrics exposes obligation, resync and reminder counters to
// Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/consultorio/dashboard-backend/internal/application/adapter"
)

const namespace = "consultorio"

// Recorder implements adapter.Metrics on a dedicated registry.
type Recorder struct {
	registry    *prometheus.Registry
	created     *prometheus.CounterVec
	deactivated prometheus.Counter
	settled     prometheus.Counter
	resyncs     *prometheus.CounterVec
	reminders   *prometheus.CounterVec
	requests    *prometheus.HistogramVec
}

// New creates a Recorder with Go and process collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "obligations_created_total",
			Help:      "Obligations generated, by kind.",
		}, []string{"kind"}),
		deactivated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "obligations_deactivated_total",
			Help:      "Outstanding obligations superseded by a resync.",
		}),
		settled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "obligations_settled_total",
			Help:      "Obligations marked as paid.",
		}),
		resyncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_resyncs_total",
			Help:      "Plan resyncs, by outcome.",
		}, []string{"outcome"}),
		reminders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_queued_total",
			Help:      "Payment reminder e-mails queued, by template.",
		}, []string{"template"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	r.registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		r.created,
		r.deactivated,
		r.settled,
		r.resyncs,
		r.reminders,
		r.requests,
	)
	return r
}

func (r *Recorder) ObligationsCreated(kind string, n int) {
	r.created.WithLabelValues(kind).Add(float64(n))
}

func (r *Recorder) ObligationsDeactivated(n int) {
	r.deactivated.Add(float64(n))
}

func (r *Recorder) ObligationsSettled(n int) {
	r.settled.Add(float64(n))
}

func (r *Recorder) ResyncFinished(outcome string) {
	r.resyncs.WithLabelValues(outcome).Inc()
}

func (r *Recorder) RemindersQueued(template string, n int) {
	r.reminders.WithLabelValues(template).Add(float64(n))
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Middleware records request latency per matched route.
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		r.requests.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

var _ adapter.Metrics = (*Recorder)(nil)
