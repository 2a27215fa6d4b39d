package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search, provider and job Prometheus metrics.
var (
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fmd",
			Name:      "provider_requests_total",
			Help:      "Total number of product provider requests",
		},
		[]string{"provider", "status"},
	)

	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fmd",
			Name:      "provider_request_duration_seconds",
			Help:      "Product provider request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	RankingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "fmd",
			Name:      "ranking_duration_seconds",
			Help:      "Time spent scoring and sorting candidates",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	CandidatesRanked = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "fmd",
			Name:      "candidates_ranked",
			Help:      "Number of candidates ranked per search",
			Buckets:   []float64{0, 5, 10, 20, 50, 100, 200},
		},
	)

	JobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fmd",
			Name:      "jobs_total",
			Help:      "Processed jobs by final status",
		},
		[]string{"type", "status"},
	)

	ImageGenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fmd",
			Name:      "image_generations_total",
			Help:      "Reference image generations by method",
		},
		[]string{"method", "status"},
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "fmd",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	JobCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fmd",
			Name:      "job_cache_total",
			Help:      "Job status cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(ProviderRequestsTotal)
	prometheus.MustRegister(ProviderRequestDuration)
	prometheus.MustRegister(RankingDuration)
	prometheus.MustRegister(CandidatesRanked)
	prometheus.MustRegister(JobsTotal)
	prometheus.MustRegister(ImageGenerationsTotal)
	prometheus.MustRegister(CircuitBreakerState)
	prometheus.MustRegister(JobCacheTotal)
	searchMetricsRegistered = true
}
