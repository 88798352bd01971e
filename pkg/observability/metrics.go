package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/fluxfee/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fluxfee"

// Metrics records action invocations.
type Metrics struct {
	registry    *prometheus.Registry
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	inFlight    *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them, with the Go and process collectors,
// on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "action_invocations_total",
				Help:      "Total number of action invocations by outcome",
			},
			[]string{"action", "status", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "action_duration_seconds",
				Help:      "Duration of action invocations, submission included",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"action", "status"},
		),
		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "action_in_flight",
				Help:      "Number of action invocations in progress",
			},
			[]string{"action"},
		),
	}
	m.registry.MustRegister(
		m.invocations,
		m.duration,
		m.inFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActionCall: func(ctx context.Context, e *domain.ActionEvent) {
			m.inFlight.WithLabelValues(e.Action).Inc()
		},
		OnActionReturn: func(ctx context.Context, e *domain.ActionEvent) {
			m.inFlight.WithLabelValues(e.Action).Dec()
			m.invocations.WithLabelValues(e.Action, string(e.Status), e.Code).Inc()
			m.duration.WithLabelValues(e.Action, string(e.Status)).Observe(e.Duration.Seconds())
		},
	}
}
