package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pet_pedigree"

// Metrics agrupa los collectors del servicio. Cada router crea su propio
// registry para que los tests puedan levantar varios sin colisiones.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	CompatibilityVerdicts *prometheus.CounterVec
	RegistrationRuns      prometheus.Counter
	RegistrationChanges   *prometheus.CounterVec
	AncestorQueries       prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CompatibilityVerdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compatibility_verdicts_total",
			Help:      "Compatibility verdicts by label.",
		}, []string{"label"}),
		RegistrationRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registration_runs_total",
			Help:      "Lineage registration recomputations applied.",
		}),
		RegistrationChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registration_changes_total",
			Help:      "Registration codes written, by kind (set, cleared).",
		}, []string{"kind"}),
		AncestorQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ancestor_queries_total",
			Help:      "Ancestor resolutions served.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.CompatibilityVerdicts,
		m.RegistrationRuns,
		m.RegistrationChanges,
		m.AncestorQueries,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Helpers nil-safe: los services pueden correr sin métricas (tests, CLI).

func (m *Metrics) ObserveVerdict(label string) {
	if m == nil {
		return
	}
	m.CompatibilityVerdicts.WithLabelValues(label).Inc()
}

func (m *Metrics) ObserveRegistration(set, cleared int) {
	if m == nil {
		return
	}
	m.RegistrationRuns.Inc()
	m.RegistrationChanges.WithLabelValues("set").Add(float64(set))
	m.RegistrationChanges.WithLabelValues("cleared").Add(float64(cleared))
}

func (m *Metrics) ObserveAncestorQuery() {
	if m == nil {
		return
	}
	m.AncestorQueries.Inc()
}
