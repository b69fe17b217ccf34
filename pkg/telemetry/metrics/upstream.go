package metrics

import (
	"time"

	"halcyon-hq/torii/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics tracks metrics for calls to the AI provider.
//
// Metrics:
//   - torii_upstream_attempts_total: attempt count by outcome
//   - torii_upstream_retry_delay_seconds: backoff delay histogram
//
// UpstreamMetrics implements the upstream package's AttemptObserver
// interface.
type UpstreamMetrics struct {
	enabled bool

	attemptsTotal *prometheus.CounterVec
	retryDelay    prometheus.Histogram
}

// NewUpstreamMetrics creates and registers upstream metrics with the provided registry.
func NewUpstreamMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *UpstreamMetrics {
	um := &UpstreamMetrics{
		enabled: cfg.Enabled,

		attemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "upstream_attempts_total",
				Help:      "Total number of upstream request attempts by outcome",
			},
			[]string{"outcome"},
		),

		retryDelay: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "upstream_retry_delay_seconds",
				Help:      "Backoff delay applied between upstream attempts in seconds",
				Buckets:   []float64{0.5, 1.0, 2.0, 4.0, 8.0, 16.0},
			},
		),
	}

	registry.MustRegister(
		um.attemptsTotal,
		um.retryDelay,
	)

	return um
}

// ObserveAttempt records the outcome of a single upstream attempt.
func (um *UpstreamMetrics) ObserveAttempt(outcome string) {
	if !um.enabled {
		return
	}

	um.attemptsTotal.WithLabelValues(outcome).Inc()
}

// ObserveRetryDelay records the backoff delay applied before a retry.
func (um *UpstreamMetrics) ObserveRetryDelay(d time.Duration) {
	if !um.enabled {
		return
	}

	um.retryDelay.Observe(d.Seconds())
}
