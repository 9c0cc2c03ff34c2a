// Package metrics exposes Prometheus collectors for the wizard and its HTTP
// surface.
//
// Metrics:
//   - formwizard_transitions_total{direction,moved}
//   - formwizard_validation_failures_total{step}
//   - formwizard_entries_total{group,action}
//   - formwizard_submissions_total{outcome}
//   - formwizard_backend_requests_total{result}
//   - formwizard_sessions_active
//   - formwizard_http_requests_total{method,route,status}
//   - formwizard_http_request_duration_seconds{method,route}
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Backend request results.
const (
	BackendCreated  = "created"
	BackendRejected = "rejected"
	BackendFailed   = "failed"
)

// Metrics holds the collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	Transitions        *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	Entries            *prometheus.CounterVec
	Submissions        *prometheus.CounterVec
	BackendRequests    *prometheus.CounterVec
	SessionsActive     prometheus.Gauge
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

var _ wizard.Recorder = (*Metrics)(nil)

// New registers the collectors on a fresh registry, so separate instances
// never collide.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwizard_transitions_total",
				Help: "Navigation attempts by direction and whether the step changed",
			},
			[]string{"direction", "moved"},
		),
		ValidationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwizard_validation_failures_total",
				Help: "Blocked advances by step number",
			},
			[]string{"step"},
		),
		Entries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwizard_entries_total",
				Help: "Entry group additions and removals",
			},
			[]string{"group", "action"},
		),
		Submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwizard_submissions_total",
				Help: "Submission gate outcomes",
			},
			[]string{"outcome"},
		),
		BackendRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwizard_backend_requests_total",
				Help: "Solicitudes posted to the backend by result",
			},
			[]string{"result"},
		),
		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "formwizard_sessions_active",
			Help: "Wizard sessions held in memory",
		}),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formwizard_http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "formwizard_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "route"},
		),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Transition(direction wizard.Direction, moved bool) {
	m.Transitions.WithLabelValues(string(direction), strconv.FormatBool(moved)).Inc()
}

func (m *Metrics) ValidationFailed(step int) {
	m.ValidationFailures.WithLabelValues(strconv.Itoa(step)).Inc()
}

func (m *Metrics) EntryAdded(group string) {
	m.Entries.WithLabelValues(group, "add").Inc()
}

func (m *Metrics) EntryRemoved(group string) {
	m.Entries.WithLabelValues(group, "remove").Inc()
}

func (m *Metrics) Submission(outcome string) {
	m.Submissions.WithLabelValues(outcome).Inc()
}

// Backend records the result of posting a solicitud.
func (m *Metrics) Backend(result string) {
	m.BackendRequests.WithLabelValues(result).Inc()
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
