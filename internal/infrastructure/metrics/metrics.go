// Package metrics owns the service's Prometheus registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	registry       *prometheus.Registry
	recordsWritten *prometheus.CounterVec
	authFailures   prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		recordsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lending_records_written_total",
			Help: "Lending record writes that reached the database, by operation.",
		}, []string{"op"}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "Rejected logins and bearer credentials.",
		}),
	}
	reg.MustRegister(
		m.recordsWritten,
		m.authFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) RecordWritten(op string) {
	if m == nil {
		return
	}
	m.recordsWritten.WithLabelValues(op).Inc()
}

func (m *Metrics) AuthFailed() {
	if m == nil {
		return
	}
	m.authFailures.Inc()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
