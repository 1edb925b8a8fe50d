package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

var (
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booksearch_searches_total",
		Help: "Settled searches by outcome (success, empty, error, stale)",
	}, []string{"outcome"})

	UpstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booksearch_upstream_errors_total",
		Help: "Failed upstream calls by class (transport, status, decode)",
	}, []string{"class"})

	UpstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "booksearch_upstream_duration_seconds",
		Help:    "Duration of volumes requests in seconds",
		Buckets: prometheus.DefBuckets,
	})

	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booksearch_http_requests_total",
		Help: "Total number of HTTP requests to the web adapter",
	}, []string{"method", "route", "status"})

	HttpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "booksearch_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// Push sends the default registry to a pushgateway. Used by short-lived processes.
func Push(url, job string) error {
	if url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(prometheus.DefaultGatherer).Push(); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
