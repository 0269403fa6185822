package queries

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"vitals-insights/internal/aggregators"
	"vitals-insights/internal/models"
	"vitals-insights/internal/rollupkeys"
	"vitals-insights/internal/shared/loggers"
	"vitals-insights/internal/shared/svcerrors"
	"vitals-insights/internal/stores"
)

const (
	// MinDays and MaxDays bound every caller-supplied day-range, inclusive,
	// ending today (UTC).
	MinDays = 1
	MaxDays = 30
)

// DimensionListItem is one dimension value with its aggregated period summary.
type DimensionListItem struct {
	Value   string                `json:"value"`
	Summary *models.PeriodSummary `json:"summary"`
}

// DimensionListing is the result of a listing query. Total is the group count
// before truncation.
type DimensionListing struct {
	Items []DimensionListItem `json:"items"`
	Total int                 `json:"total"`
}

// DimensionSeries is one dimension value's chronological daily records plus
// the aggregated summary over the same period. Aggregated is nil when the
// period holds no data.
type DimensionSeries struct {
	Series     []*models.RollupRecord `json:"series"`
	Aggregated *models.PeriodSummary  `json:"aggregated"`
}

//go:generate mockgen -source=query_service.go -destination=./mocks/query_service_mock.go -package=mocks
type QueryService interface {
	// ListDimension aggregates every value of one breakdown dimension over
	// the trailing day range, sorted by the requested field, optionally
	// truncated to the first limit items (limit <= 0 means no truncation).
	ListDimension(ctx context.Context, kind models.DimensionKind, days int, filters models.ScopeFilters, sortBy Sort, limit int) (*DimensionListing, *svcerrors.ServiceError)

	// DimensionTimeSeries fetches one dimension value's per-day records over
	// the trailing day range for charting, plus one period summary.
	DimensionTimeSeries(ctx context.Context, kind models.DimensionKind, value string, days int) (*DimensionSeries, *svcerrors.ServiceError)
}

type queryService struct {
	store      stores.RollupStore
	aggregator aggregators.PeriodAggregator
	now        func() time.Time
}

func NewQueryService(store stores.RollupStore, aggregator aggregators.PeriodAggregator) QueryService {
	return &queryService{store: store, aggregator: aggregator, now: time.Now}
}

func (s *queryService) ListDimension(ctx context.Context, kind models.DimensionKind, days int, filters models.ScopeFilters, sortBy Sort, limit int) (*DimensionListing, *svcerrors.ServiceError) {
	start := time.Now()
	defer func() {
		metricQueryDuration.WithLabelValues("list", string(kind)).Observe(time.Since(start).Seconds())
	}()

	if kind == models.KindSummary {
		return nil, errInvalidQuery("listing requires a breakdown dimension, not summary", nil)
	}
	prefix, err := rollupkeys.SortKeyPrefix(kind)
	if err != nil {
		return nil, errInvalidQuery("unknown dimension kind", err)
	}

	dates := s.trailingDays(days)
	loggers.Ctx(ctx).Debug().Msgf("listing dimension %s over %d days", kind, len(dates))

	// Per-day reads are independent; fan out and join. Any day failing (or
	// the request context being cancelled) aborts the whole listing: partial
	// aggregates would misrepresent the period.
	perDay := make([][]*models.RollupRecord, len(dates))
	g, gctx := errgroup.WithContext(ctx)
	for i, date := range dates {
		i, date := i, date
		g.Go(func() error {
			records, err := s.scanPrefixAll(gctx, rollupkeys.PartitionKey(date, filters), prefix)
			if err != nil {
				return err
			}
			perDay[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errInternalStoreScanFailed(err)
	}

	groups := make(map[string][]*models.RollupRecord)
	for _, records := range perDay {
		for _, r := range records {
			groups[r.Value] = append(groups[r.Value], r)
		}
	}

	items := make([]DimensionListItem, 0, len(groups))
	for value, records := range groups {
		summary, err := s.aggregator.Aggregate(records)
		if err != nil {
			return nil, errInternalAggregationFailed(err)
		}
		// Zero-weight groups do not appear in listings.
		if summary == nil {
			continue
		}
		items = append(items, DimensionListItem{Value: value, Summary: summary})
	}

	sortItems(items, sortBy)
	listing := &DimensionListing{Items: items, Total: len(items)}
	if limit > 0 && len(items) > limit {
		listing.Items = items[:limit]
	}
	return listing, nil
}

func (s *queryService) DimensionTimeSeries(ctx context.Context, kind models.DimensionKind, value string, days int) (*DimensionSeries, *svcerrors.ServiceError) {
	start := time.Now()
	defer func() {
		metricQueryDuration.WithLabelValues("series", string(kind)).Observe(time.Since(start).Seconds())
	}()

	dimensionKey, err := rollupkeys.IndexKey(kind, value)
	if err != nil {
		return nil, errInvalidQuery("invalid dimension", err)
	}

	dates := s.trailingDays(days)
	startDate := rollupkeys.FormatDate(dates[0])
	endDate := rollupkeys.FormatDate(dates[len(dates)-1])

	// Pages of one index scan are causally ordered by the store's pagination
	// contract, so this loop stays sequential.
	var series []*models.RollupRecord
	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, errInternalStoreScanFailed(err)
		}
		page, err := s.store.ScanByIndex(ctx, dimensionKey, startDate, endDate, cursor)
		if err != nil {
			return nil, errInternalStoreScanFailed(err)
		}
		series = append(series, page.Records...)
		if page.Cursor == "" {
			break
		}
		cursor = page.Cursor
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	aggregated, err := s.aggregator.Aggregate(series)
	if err != nil {
		return nil, errInternalAggregationFailed(err)
	}
	return &DimensionSeries{Series: series, Aggregated: aggregated}, nil
}

// scanPrefixAll drains one partition's prefix scan across pages.
func (s *queryService) scanPrefixAll(ctx context.Context, partitionKey, sortKeyPrefix string) ([]*models.RollupRecord, error) {
	var records []*models.RollupRecord
	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := s.store.ScanByPrefix(ctx, partitionKey, sortKeyPrefix, cursor)
		if err != nil {
			return nil, err
		}
		records = append(records, page.Records...)
		if page.Cursor == "" {
			return records, nil
		}
		cursor = page.Cursor
	}
}

// trailingDays returns the clamped inclusive day range ending today, oldest
// first.
func (s *queryService) trailingDays(days int) []time.Time {
	if days < MinDays {
		days = MinDays
	}
	if days > MaxDays {
		days = MaxDays
	}
	today := s.now().UTC().Truncate(24 * time.Hour)
	dates := make([]time.Time, days)
	for i := range dates {
		dates[i] = today.AddDate(0, 0, i-days+1)
	}
	return dates
}
