package stores

import (
	"context"

	"vitals-insights/internal/models"
)

// ScanPage is one page of a paginated scan. Cursor is opaque; callers pass it
// back unchanged to fetch the next page and stop when it is empty.
type ScanPage struct {
	Records []*models.RollupRecord
	Cursor  string
}

// RollupStore is the sorted key-value storage surface the query engine reads
// from. The engine is read-only; Put exists for the ingest write API. Failed
// reads are propagated, never retried here, and never substituted with
// zero-valued defaults.
//
//go:generate mockgen -source=rollup_store.go -destination=./mocks/rollup_store_mock.go -package=mocks
type RollupStore interface {
	// Put upserts one daily rollup record and, for unfiltered-scope records,
	// its secondary index entry.
	Put(ctx context.Context, record *models.RollupRecord) error

	// ScanByPrefix returns records in one partition whose sort key starts
	// with sortKeyPrefix.
	ScanByPrefix(ctx context.Context, partitionKey, sortKeyPrefix, cursor string) (*ScanPage, error)

	// ScanByIndex returns one dimension value's records across an inclusive
	// date range via the secondary index, in date order.
	ScanByIndex(ctx context.Context, dimensionKey, startDate, endDate, cursor string) (*ScanPage, error)
}
