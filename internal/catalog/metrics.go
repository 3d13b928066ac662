package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes.
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeNetwork  = "network_error"
	outcomeError    = "error"
)

var (
	// requestsTotal counts catalog operations by outcome.
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of catalog API operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	// requestDuration observes the latency of catalog operations.
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Duration of catalog API operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// productsNormalized counts normalized products by the rating shape received.
	productsNormalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_products_normalized_total",
			Help: "Total number of products normalized, by upstream rating shape",
		},
		[]string{"rating_shape"},
	)

	// cacheLookups counts response cache lookups by result.
	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_lookups_total",
			Help: "Total number of catalog response cache lookups",
		},
		[]string{"result"},
	)
)
