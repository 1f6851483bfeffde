// Package metrics provides Prometheus metrics for the catalog service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequestsTotal counts outbound requests by endpoint and outcome.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "animeflix",
			Name:      "upstream_requests_total",
			Help:      "Total number of requests sent to the upstream catalog API",
		},
		[]string{"endpoint", "outcome"},
	)

	// UpstreamRequestDuration measures outbound round trips, throttle wait excluded.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "animeflix",
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of upstream catalog API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// ThrottleWaitDuration observes how long requests were held back by the throttle.
	ThrottleWaitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "animeflix",
			Name:      "throttle_wait_seconds",
			Help:      "Time spent waiting for the outbound request throttle",
			Buckets:   []float64{0, .05, .1, .2, .35, .5, 1, 2, 5},
		},
	)

	// DetailFallbacksTotal counts detail lookups answered with the fallback stub.
	DetailFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "animeflix",
			Name:      "detail_fallbacks_total",
			Help:      "Total number of detail lookups served from the fallback record",
		},
	)

	// HTTPRequestsTotal counts facade requests by route and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "animeflix",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served",
		},
		[]string{"route", "code"},
	)
)

// RecordUpstream records one outbound request.
func RecordUpstream(endpoint, outcome string, seconds float64) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(seconds)
}

// RecordThrottleWait records time spent in the throttle.
func RecordThrottleWait(seconds float64) {
	ThrottleWaitDuration.Observe(seconds)
}

// RecordDetailFallback records a degraded detail lookup.
func RecordDetailFallback() {
	DetailFallbacksTotal.Inc()
}

// RecordHTTP records a served facade request.
func RecordHTTP(route, code string) {
	HTTPRequestsTotal.WithLabelValues(route, code).Inc()
}
