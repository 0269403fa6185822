package aggregators

import (
	"vitals-insights/internal/shared/metrics"
)

var (
	// metricFallbackAggregationTotal counts per-metric merges that had to use
	// the weighted-average fallback because at least one input record lacked
	// a histogram for that metric. A rising rate usually means a producer
	// stopped emitting histograms.
	metricFallbackAggregationTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "fallback_aggregation_total",
		},
		[]string{"metric"},
	)

	// metricMalformedRecordTotal counts aggregations rejected because a
	// stored record violated a data-model invariant.
	metricMalformedRecordTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "malformed_record_total",
		},
		[]string{"metric"},
	)
)
