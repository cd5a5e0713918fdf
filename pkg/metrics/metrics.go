// Package metrics defines the Prometheus collectors exposed on the metrics port.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysesTotal counts completed spending analyses by type.
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cardwise_analyses_total",
		Help: "Completed spending analyses.",
	}, []string{"analysis_type"})

	// AnalysisDuration observes end-to-end pipeline latency.
	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cardwise_analysis_duration_seconds",
		Help:    "Spending analysis pipeline duration.",
		Buckets: prometheus.DefBuckets,
	})

	// RecommendationsReturned observes how many offers each analysis surfaced.
	RecommendationsReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cardwise_recommendations_returned",
		Help:    "Recommendations returned per analysis.",
		Buckets: []float64{0, 1, 2, 3, 5, 10},
	})

	// MalformedTransactions counts transactions aggregated under degenerate keys.
	MalformedTransactions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cardwise_malformed_transactions_total",
		Help: "Transactions with unparseable dates or negative amounts.",
	})

	// CatalogUnavailable counts analyses that degraded to empty recommendations.
	CatalogUnavailable = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cardwise_catalog_unavailable_total",
		Help: "Analyses completed without recommendations because the offer catalog failed.",
	})

	// HTTPDuration observes request latency per route and status.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cardwise_http_request_duration_seconds",
		Help:    "HTTP request duration.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "method", "status"})
)
