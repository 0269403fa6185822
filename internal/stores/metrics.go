package stores

import (
	"vitals-insights/internal/shared/metrics"
)

var (
	// metricScanPagesTotal counts pages served per scan strategy. The ratio
	// to query counts shows how often listings page past the first batch.
	metricScanPagesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStorage,
			Name:      "scan_pages_total",
		},
		[]string{"strategy"},
	)

	// metricRecordsWritten counts rollup records upserted via the ingest
	// surface.
	metricRecordsWritten = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStorage,
			Name:      "records_written_total",
		},
	)
)
