package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	GenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "minutes", Name: "generations_total", Help: "Number of PDF generation requests by outcome."},
		[]string{"outcome"},
	)
	GenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: "minutes", Name: "generation_duration_seconds", Help: "End-to-end duration of successful PDF generations.", Buckets: prometheus.DefBuckets},
	)
	ReapFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "minutes", Name: "reap_failures_total", Help: "Number of stale-file deletions that failed (logged, never surfaced)."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "minutes", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "minutes", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(GenerationsTotal)
	reg.MustRegister(GenerationDuration)
	reg.MustRegister(ReapFailures)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
