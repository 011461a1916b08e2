// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	GRPCRequests *prometheus.CounterVec
	NotesCreated prometheus.Counter
	NotesDeleted prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobkeeper",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jobkeeper",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		GRPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobkeeper",
			Name:      "grpc_requests_total",
			Help:      "gRPC calls by method and status code.",
		}, []string{"method", "code"}),
		NotesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jobkeeper",
			Name:      "job_notes_created_total",
			Help:      "Job notes created.",
		}),
		NotesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jobkeeper",
			Name:      "job_notes_deleted_total",
			Help:      "Job notes deleted.",
		}),
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.GRPCRequests, m.NotesCreated, m.NotesDeleted)
	return m
}

func (m *Metrics) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveGRPC(method, code string) {
	m.GRPCRequests.WithLabelValues(method, code).Inc()
}
