package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for registration forms.
type Metrics struct {
	// Forms created, one per browser session or API client
	FormsCreated prometheus.Counter

	// Submit attempts by outcome: accepted, rejected, failed, in_progress
	SubmitOutcome *prometheus.CounterVec

	// Time spent waiting on the submitter
	SubmitLatency prometheus.Histogram

	// Notifications shown by kind, and how many the user dismissed
	NotificationsShown     *prometheus.CounterVec
	NotificationsDismissed prometheus.Counter

	// HTTP latency by route pattern
	RequestLatency *prometheus.HistogramVec
}

// New registers every metric with reg. Pass prometheus.DefaultRegisterer in
// main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FormsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "signup_forms_created_total",
			Help: "Total number of registration forms created",
		}),
		SubmitOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_submit_outcomes_total",
			Help: "Submit attempts by outcome",
		}, []string{"outcome"}),
		SubmitLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "signup_submit_duration_seconds",
			Help:    "Duration of the registration backend call",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 0.75, 1, 2.5, 5},
		}),
		NotificationsShown: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_notifications_shown_total",
			Help: "Notifications shown by kind",
		}, []string{"kind"}),
		NotificationsDismissed: factory.NewCounter(prometheus.CounterOpts{
			Name: "signup_notifications_dismissed_total",
			Help: "Notifications dismissed by the user",
		}),
		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signup_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// IncrementFormsCreated counts a new form.
func (m *Metrics) IncrementFormsCreated() {
	if m != nil {
		m.FormsCreated.Inc()
	}
}

// IncrementSubmitOutcome records how a submit ended.
func (m *Metrics) IncrementSubmitOutcome(outcome string) {
	if m != nil {
		m.SubmitOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveSubmitLatency records the backend call duration.
func (m *Metrics) ObserveSubmitLatency(d time.Duration) {
	if m != nil {
		m.SubmitLatency.Observe(d.Seconds())
	}
}

// IncrementNotificationShown counts a notification by kind.
func (m *Metrics) IncrementNotificationShown(kind string) {
	if m != nil {
		m.NotificationsShown.WithLabelValues(kind).Inc()
	}
}

// IncrementNotificationDismissed counts an explicit dismissal.
func (m *Metrics) IncrementNotificationDismissed() {
	if m != nil {
		m.NotificationsDismissed.Inc()
	}
}

// ObserveRequestLatency records one HTTP request.
func (m *Metrics) ObserveRequestLatency(route, method string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, method).Observe(d.Seconds())
	}
}
