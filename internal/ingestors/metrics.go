package ingestors

import (
	"vitals-insights/internal/shared/metrics"
)

var (
	// metricRollupsIngestedTotal counts ingested rollup records, labelled
	// with the error code when validation or storage rejected the batch.
	metricRollupsIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngest,
			Name:      "rollups_ingested_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
