package metric

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "reqlog"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// RecordsTotal counts emitted records by type and level.
	RecordsTotal *prometheus.CounterVec

	// SinkErrors counts failed sink writes by sink name.
	SinkErrors *prometheus.CounterVec

	// SinkDropped counts records a sink discarded without writing.
	SinkDropped *prometheus.CounterVec

	// BodyDecodeFailures counts bodies that were not valid JSON.
	BodyDecodeFailures prometheus.Counter

	// ResponseDuration observes handler durations by method and status class.
	ResponseDuration *prometheus.HistogramVec

	// ExecutionDuration observes timed calls by function.
	ExecutionDuration *prometheus.HistogramVec

	gauges *gaugeCollector
}

// NewRegistry creates a registry with the Go and process collectors and
// all reqlog metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,
		RecordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Log records emitted.",
		}, []string{"type", "level"}),
		SinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_errors_total",
			Help:      "Failed sink writes.",
		}, []string{"sink"}),
		SinkDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_dropped_total",
			Help:      "Records dropped by a sink.",
		}, []string{"sink"}),
		BodyDecodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "body_decode_failures_total",
			Help:      "Request or response bodies that could not be decoded as JSON.",
		}),
		ResponseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "response_duration_seconds",
			Help:      "Handler duration of logged responses.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
		ExecutionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "execution_duration_seconds",
			Help:      "Duration of timed calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"function"}),
		gauges: newGaugeCollector(),
	}

	reg.MustRegister(
		r.RecordsTotal,
		r.SinkErrors,
		r.SinkDropped,
		r.BodyDecodeFailures,
		r.ResponseDuration,
		r.ExecutionDuration,
		r.gauges,
	)
	return r
}

var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
	})
	return global
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveResponse records a handler duration.
func (r *Registry) ObserveResponse(method string, status int, d time.Duration) {
	r.ResponseDuration.WithLabelValues(method, StatusClass(status)).Observe(d.Seconds())
}

// ObserveExecution records a timed call.
func (r *Registry) ObserveExecution(function string, d time.Duration) {
	r.ExecutionDuration.WithLabelValues(function).Observe(d.Seconds())
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		Registry: r.registry,
	})
}

// StatusClass buckets a status code as "2xx", "4xx" and so on.
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return string(rune('0'+status/100)) + "xx"
}
