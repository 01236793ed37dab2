// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OutcomeOK labels successful analyses in AnalysesTotal. Failures are
// labelled with their error kind.
const OutcomeOK = "ok"

var (
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seoinsight_analyses_total",
		Help: "Total number of page analyses by outcome",
	}, []string{"outcome"})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "seoinsight_analysis_duration_seconds",
		Help:    "Wall-clock time of a full analysis, fetch and discovery included",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
	})

	Score = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "seoinsight_score",
		Help:    "Distribution of computed page scores",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})

	CheckResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seoinsight_check_results_total",
		Help: "Check verdicts emitted, by check id and status",
	}, []string{"check", "status"})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "seoinsight_rate_limited_total",
		Help: "Requests rejected by the per-client rate limiter",
	})
)
