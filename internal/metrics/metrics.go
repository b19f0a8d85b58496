// Package metrics records wizard activity in a private Prometheus registry
// that can be dumped in the node-exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/spigell/cvwizard/internal/wizard"
)

const (
	namespace = "cvwizard"

	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
)

// Recorder implements wizard.Observer.
type Recorder struct {
	registry *prometheus.Registry

	transitions *prometheus.CounterVec
	submissions *prometheus.CounterVec
	duration    prometheus.Histogram
	score       prometheus.Gauge
}

var _ wizard.Observer = (*Recorder)(nil)

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_total",
				Help:      "Wizard operations by result",
			},
			[]string{"operation", "outcome"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "CV submissions by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "submission_duration_seconds",
				Help:      "Duration of CV generation requests in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.25, 2, 9), // 250ms to ~64s
			},
		),
		score: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "score",
				Help:      "Current completeness score of the wizard form",
			},
		),
	}

	r.registry.MustRegister(r.transitions, r.submissions, r.duration, r.score)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) ObserveTransition(op string, _, _ wizard.Phase, err error) {
	outcome := outcomeAccepted
	if err != nil {
		outcome = outcomeRejected
	}
	r.transitions.WithLabelValues(op, outcome).Inc()
}

func (r *Recorder) ObserveSubmission(outcome string, took time.Duration) {
	r.submissions.WithLabelValues(outcome).Inc()
	// Validation failures never reach the generator.
	if outcome != wizard.OutcomeValidationError {
		r.duration.Observe(took.Seconds())
	}
}

func (r *Recorder) ObserveScore(score int) {
	r.score.Set(float64(score))
}

// WriteTextfile writes all metrics to path in the textfile collector format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
