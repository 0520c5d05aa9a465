// Package metrics holds the identity business counters. HTTP RED metrics
// live in the transport middleware.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity_service"

var (
	registrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Total number of registration attempts by outcome",
		},
		[]string{"outcome"}, // created, blacklisted, duplicate, screening_unavailable, error
	)

	loginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Total number of login attempts",
		},
		[]string{"status"}, // success, invalid_credentials, error
	)

	screeningRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "screening_requests_total",
			Help:      "Total number of blacklist screening calls",
		},
		[]string{"result"}, // clear, listed, unavailable
	)

	screeningDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "screening_request_duration_seconds",
			Help:      "Blacklist screening call latency in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)
)

// Recorder satisfies auth.Recorder.
type Recorder struct{}

func NewRecorder() Recorder { return Recorder{} }

func (Recorder) Registration(outcome string) {
	registrationsTotal.WithLabelValues(outcome).Inc()
}

func (Recorder) LoginAttempt(status string) {
	loginAttemptsTotal.WithLabelValues(status).Inc()
}

// Screening is consumed by the screening client.
type Screening struct{}

func (Screening) Observe(result string, took time.Duration) {
	screeningRequestsTotal.WithLabelValues(result).Inc()
	screeningDuration.Observe(took.Seconds())
}
