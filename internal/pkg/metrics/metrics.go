package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for ProviderRequestsTotal.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	// CacheHitsTotal counts token resolutions served from the cache.
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokenscope_cache_hits_total",
		Help: "Number of token lookups served from the in-memory cache.",
	})

	// CacheMissesTotal counts token resolutions that had to run the fallback chain.
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokenscope_cache_misses_total",
		Help: "Number of token lookups that missed the cache.",
	})

	// ProviderRequestsTotal counts upstream provider calls by provider and outcome.
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tokenscope_provider_requests_total",
		Help: "Number of upstream data-provider requests, labelled by provider and outcome.",
	}, []string{"provider", "outcome"})

	// SyntheticFallbacksTotal counts resolutions that degraded to synthetic data.
	SyntheticFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokenscope_synthetic_fallbacks_total",
		Help: "Number of token lookups answered with locally generated synthetic data.",
	})

	// ResolveDurationSeconds observes the latency of full resolve calls.
	ResolveDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tokenscope_resolve_duration_seconds",
		Help:    "Latency of token resolve calls, cache hits included.",
		Buckets: prometheus.DefBuckets,
	})
)

// MustRegisterMetrics registers all collectors with the default registry.
// Call once at startup; a second call panics on duplicate registration.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		CacheHitsTotal,
		CacheMissesTotal,
		ProviderRequestsTotal,
		SyntheticFallbacksTotal,
		ResolveDurationSeconds,
	)
}
