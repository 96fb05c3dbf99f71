package observability

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "intake"

// Metrics holds the wizard collectors.
type Metrics struct {
	registry *prometheus.Registry

	SessionsStarted    *prometheus.CounterVec
	StepEntries        *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	SubmitsStarted     *prometheus.CounterVec
	Deliveries         *prometheus.CounterVec
	DeliveryDuration   *prometheus.HistogramVec
}

// NewMetrics registers the collectors, plus Go and process collectors, on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Wizard sessions started.",
		}, []string{"form_type"}),
		StepEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "step_entries_total",
			Help:      "Steps entered through Advance, Retreat or a successful submit.",
		}, []string{"form_type", "step"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Validation passes that produced errors.",
		}, []string{"form_type", "scope"}),
		SubmitsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submits_started_total",
			Help:      "Submit attempts that passed the in-flight guard.",
		}, []string{"form_type"}),
		Deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Delivery attempts by result.",
		}, []string{"form_type", "result"}),
		DeliveryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "delivery_duration_seconds",
			Help:      "Duration of delivery attempts.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"form_type"}),
	}

	m.registry.MustRegister(
		m.SessionsStarted,
		m.StepEntries,
		m.ValidationFailures,
		m.SubmitsStarted,
		m.Deliveries,
		m.DeliveryDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Hooks records every lifecycle event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSessionStart: func(_ context.Context, e *domain.StepEvent) {
			m.SessionsStarted.WithLabelValues(string(e.FormType)).Inc()
		},
		OnStepEnter: func(_ context.Context, e *domain.StepEvent) {
			m.StepEntries.WithLabelValues(string(e.FormType), strconv.Itoa(e.To)).Inc()
		},
		OnValidationFailed: func(_ context.Context, e *domain.ValidationEvent) {
			scope := "step"
			if e.WholeForm {
				scope = "document"
			}
			m.ValidationFailures.WithLabelValues(string(e.FormType), scope).Inc()
		},
		OnSubmitStart: func(_ context.Context, e *domain.EventBase) {
			m.SubmitsStarted.WithLabelValues(string(e.FormType)).Inc()
		},
		OnDelivery: func(_ context.Context, e *domain.DeliveryEvent) {
			result := "success"
			if e.Err != nil {
				result = "failure"
			}
			m.Deliveries.WithLabelValues(string(e.FormType), result).Inc()
			m.DeliveryDuration.WithLabelValues(string(e.FormType)).Observe(e.Duration.Seconds())
		},
	}
}
