// Package metrics exposes Prometheus instrumentation for the estimate
// pipeline and the HTTP layer.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	domainerrors "github.com/loyerparis/loyer-server/internal/errors"
)

// Estimate outcomes used as the "outcome" label.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	// Estimate pipeline
	EstimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loyer_estimates_total",
			Help: "Total number of estimate requests by outcome and error code",
		},
		[]string{"outcome", "code"},
	)

	EstimateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "loyer_estimate_duration_seconds",
			Help:    "End to end estimate latency, from translation to rounding",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	InferenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "loyer_model_inference_duration_seconds",
			Help:    "Time spent evaluating the tree ensemble for one row",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	// Response cache
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loyer_cache_hits_total",
			Help: "Total number of prediction cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loyer_cache_misses_total",
			Help: "Total number of prediction cache misses",
		},
	)

	CacheSkips = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loyer_cache_skips_total",
			Help: "Predictions not cached because the cache was full",
		},
	)

	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loyer_api_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loyer_api_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "loyer_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)

	// Artifacts
	ModelInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "loyer_model_info",
			Help: "Loaded model artifact, value is always 1",
		},
		[]string{"objective", "trees", "features"},
	)
)

// RecordEstimate counts one estimate and observes its latency. A nil err is
// a success; otherwise the domain error code is used as label.
func RecordEstimate(duration time.Duration, err error) {
	EstimateDuration.Observe(duration.Seconds())
	if err == nil {
		EstimatesTotal.WithLabelValues(OutcomeSuccess, "").Inc()
		return
	}
	EstimatesTotal.WithLabelValues(OutcomeError, errorCode(err)).Inc()
}

// RecordInference observes one model evaluation.
func RecordInference(duration time.Duration) {
	InferenceDuration.Observe(duration.Seconds())
}

// RecordCacheLookup counts a cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// RecordAPIRequest counts one HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// SetModelInfo publishes the loaded model summary.
func SetModelInfo(objective string, trees, features int) {
	ModelInfo.Reset()
	ModelInfo.WithLabelValues(objective, strconv.Itoa(trees), strconv.Itoa(features)).Set(1)
}

func errorCode(err error) string {
	var domainErr *domainerrors.Error
	if domainerrors.As(err, &domainErr) {
		return string(domainErr.Code)
	}
	return string(domainerrors.CodeInternal)
}
