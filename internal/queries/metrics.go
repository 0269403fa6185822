package queries

import (
	"vitals-insights/internal/shared/metrics"
)

// metricQueryDuration observes end-to-end query latency per operation
// ("list" or "series") and dimension kind, including store fan-out and
// aggregation.
var metricQueryDuration = metrics.NewHistogramVec(
	metrics.HistogramOpts{
		Namespace: metrics.Namespace,
		Subsystem: metrics.SubQuery,
		Name:      "duration_seconds",
		Buckets:   metrics.DefBuckets,
	},
	[]string{"op", "kind"},
)
