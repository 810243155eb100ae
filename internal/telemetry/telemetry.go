// Package telemetry owns the Prometheus collectors of the service. They
// live on a private registry so tests and embedders do not clash with the
// global default one.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "adspend"

var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// Analyses counts analysis runs by outcome: ok, invalid, error.
	Analyses = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Analysis runs by outcome.",
	}, []string{"outcome"})

	// Rows counts export rows by stage: received, kept, dropped.
	Rows = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rows_total",
		Help:      "Export rows seen by the row normalizer, by stage.",
	}, []string{"stage"})

	// Narratives counts narrator calls: ok, disabled, timeout, limited, error.
	Narratives = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "narratives_total",
		Help:      "Insight narrator attempts by outcome.",
	}, []string{"outcome"})

	HTTPDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
