package aggregators

import (
	"testing"
	"time"

	"vitals-insights/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// durationHist builds a histogram aligned to the duration boundary set with n
// samples in one bucket.
func durationHist(bucket int, n int64) []int64 {
	h := make([]int64, 12)
	h[bucket] = n
	return h
}

// lcpHist builds a histogram aligned to the LCP boundary set with n samples in
// one bucket.
func lcpHist(bucket int, n int64) []int64 {
	h := make([]int64, 15)
	h[bucket] = n
	return h
}

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregate_EmptyInputReturnsNil(t *testing.T) {
	t.Parallel()

	aggregator := NewPeriodAggregator()

	summary, err := aggregator.Aggregate(nil)
	require.NoError(t, err)
	assert.Nil(t, summary)

	summary, err = aggregator.Aggregate([]*models.RollupRecord{})
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestAggregate_ZeroTotalWeightReturnsNil(t *testing.T) {
	t.Parallel()

	aggregator := NewPeriodAggregator()

	records := []*models.RollupRecord{
		{
			Date: day(1),
			Kind: models.KindSummary,
			Metrics: map[models.Metric]*models.PercentileStats{
				models.MetricDuration: {Count: 10, Histogram: durationHist(4, 10)},
			},
		},
	}

	summary, err := aggregator.Aggregate(records)
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestAggregate_ConservesWeightsAndCounts(t *testing.T) {
	t.Parallel()

	aggregator := NewPeriodAggregator()

	records := []*models.RollupRecord{
		{
			Date:         day(1),
			Kind:         models.KindSummary,
			Pageviews:    120,
			RequestCount: 40,
			Metrics: map[models.Metric]*models.PercentileStats{
				models.MetricLCP: {Count: 3, P75: 900, Histogram: lcpHist(4, 3)},
			},
		},
		{
			Date:         day(2),
			Kind:         models.KindSummary,
			Pageviews:    80,
			RequestCount: 60,
			Metrics: map[models.Metric]*models.PercentileStats{
				models.MetricLCP: {Count: 7, P75: 900, Histogram: lcpHist(4, 7)},
			},
		},
	}

	summary, err := aggregator.Aggregate(records)
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, int64(200), summary.Pageviews)
	assert.Equal(t, int64(100), summary.RequestCount)
	assert.Equal(t, int64(10), summary.Metrics[models.MetricLCP].Count)
}

func TestAggregate_HistogramPathDerivesPercentilesFromMergedShape(t *testing.T) {
	t.Parallel()

	aggregator := NewPeriodAggregator()

	// Day 1: 100 requests in the 50..100ms bucket. Day 2: 100 requests in
	// the 250..500ms bucket.
	records := []*models.RollupRecord{
		{
			Date:         day(1),
			Kind:         models.KindSummary,
			RequestCount: 100,
			Metrics: map[models.Metric]*models.PercentileStats{
				models.MetricDuration: {Count: 100, P75: 90, Histogram: durationHist(4, 100)},
			},
		},
		{
			Date:         day(2),
			Kind:         models.KindSummary,
			RequestCount: 100,
			Metrics: map[models.Metric]*models.PercentileStats{
				models.MetricDuration: {Count: 100, P75: 450, Histogram: durationHist(6, 100)},
			},
		},
	}

	summary, err := aggregator.Aggregate(records)
	require.NoError(t, err)
	require.NotNil(t, summary)

	merged := summary.Metrics[models.MetricDuration]
	require.NotNil(t, merged)

	expectedHist := make([]int64, 12)
	expectedHist[4] = 100
	expectedHist[6] = 100
	assert.Equal(t, expectedHist, merged.Histogram)

	// p75 of 200 samples targets rank 150: halfway into the 250..500 bucket.
	assert.InDelta(t, 375.0, merged.P75, 1e-9)
	assert.Equal(t, int64(200), merged.Count)
}

func TestAggregate_FallbackIsAllOrNothingPerMetric(t *testing.T) {
	t.Parallel()

	aggregator := NewPeriodAggregator()

	// One record carries a histogram, the other does not: the whole metric
	// must take the weighted-average path, never a partial histogram merge.
	records := []*models.RollupRecord{
		{
			Date:      day(1),
			Kind:      models.KindSummary,
			Pageviews: 100,
			Metrics: map[models.Metric]*models.PercentileStats{
				models.MetricLCP: {Count: 100, P75: 80, Histogram: lcpHist(0, 100)},
			},
		},
		{
			Date:      day(2),
			Kind:      models.KindSummary,
			Pageviews: 300,
			Metrics: map[models.Metric]*models.PercentileStats{
				models.MetricLCP: {Count: 300, P75: 200},
			},
		},
	}

	summary, err := aggregator.Aggregate(records)
	require.NoError(t, err)
	require.NotNil(t, summary)

	merged := summary.Metrics[models.MetricLCP]
	require.NotNil(t, merged)

	// (80*100 + 200*300) / 400
	assert.InDelta(t, 170.0, merged.P75, 1e-9)
	assert.Nil(t, merged.Histogram, "fallback path must not emit a partial histogram")
	assert.Equal(t, int64(400), merged.Count)
}

func TestAggregate_MetricPresentInOnlySomeRecords(t *testing.T) {
	t.Parallel()

	aggregator := NewPeriodAggregator()

	records := []*models.RollupRecord{
		{
			Date:      day(1),
			Kind:      models.KindSummary,
			Pageviews: 50,
			Metrics: map[models.Metric]*models.PercentileStats{
				models.MetricLCP: {Count: 50, P75: 900, Histogram: lcpHist(4, 50)},
			},
		},
		{
			Date:      day(2),
			Kind:      models.KindSummary,
			Pageviews: 50,
		},
	}

	summary, err := aggregator.Aggregate(records)
	require.NoError(t, err)
	require.NotNil(t, summary)

	// Only the reporting record participates; all of it has histograms, so
	// the histogram path applies.
	merged := summary.Metrics[models.MetricLCP]
	require.NotNil(t, merged)
	assert.Equal(t, int64(50), merged.Count)
	assert.NotNil(t, merged.Histogram)
}

func TestAggregate_RatingsAreSummedExactly(t *testing.T) {
	t.Parallel()

	aggregator := NewPeriodAggregator()

	records := []*models.RollupRecord{
		{
			Date:      day(1),
			Kind:      models.KindSummary,
			Pageviews: 16,
			Metrics: map[models.Metric]*models.PercentileStats{
				models.MetricCLS: {Count: 16, P75: 0.05, Ratings: &models.RatingCounts{Good: 10, NeedsImprovement: 5, Poor: 1}},
			},
		},
		{
			Date:      day(2),
			Kind:      models.KindSummary,
			Pageviews: 3,
			Metrics: map[models.Metric]*models.PercentileStats{
				models.MetricCLS: {Count: 3, P75: 0.3, Ratings: &models.RatingCounts{Good: 1, NeedsImprovement: 1, Poor: 1}},
			},
		},
	}

	summary, err := aggregator.Aggregate(records)
	require.NoError(t, err)
	require.NotNil(t, summary)

	ratings := summary.Metrics[models.MetricCLS].Ratings
	require.NotNil(t, ratings)
	assert.Equal(t, int64(11), ratings.Good)
	assert.Equal(t, int64(6), ratings.NeedsImprovement)
	assert.Equal(t, int64(2), ratings.Poor)
}

func TestAggregate_ErrorRateFromSummedTotalsNotAveragedRates(t *testing.T) {
	t.Parallel()

	aggregator := NewPeriodAggregator()

	// Day A: 10 requests, 5 errors (50%). Day B: 1000 requests, 10 errors
	// (1%). Combined must be 15/1010, not the naive 25.5% average.
	records := []*models.RollupRecord{
		{
			Date:         day(1),
			Kind:         models.KindSummary,
			RequestCount: 10,
			StatusCodes:  &models.StatusCounts{Success: 5, ServerError: 5},
		},
		{
			Date:         day(2),
			Kind:         models.KindSummary,
			RequestCount: 1000,
			StatusCodes:  &models.StatusCounts{Success: 985, Redirect: 5, ClientError: 7, ServerError: 3},
		},
	}

	summary, err := aggregator.Aggregate(records)
	require.NoError(t, err)
	require.NotNil(t, summary)

	require.NotNil(t, summary.StatusCodes)
	assert.Equal(t, int64(990), summary.StatusCodes.Success)
	assert.Equal(t, int64(5), summary.StatusCodes.Redirect)
	assert.Equal(t, int64(7), summary.StatusCodes.ClientError)
	assert.Equal(t, int64(8), summary.StatusCodes.ServerError)

	assert.InDelta(t, 1.49, summary.ErrorRate, 1e-9)
}

func TestAggregate_ScoreRecomputedFromMergedPercentiles(t *testing.T) {
	t.Parallel()

	aggregator := NewPeriodAggregator()

	fast := &models.RollupRecord{
		Date:      day(1),
		Kind:      models.KindSummary,
		Pageviews: 100,
		Metrics: map[models.Metric]*models.PercentileStats{
			models.MetricLCP: {Count: 100, Histogram: lcpHist(4, 100)}, // 750..1000ms
		},
	}
	slow := &models.RollupRecord{
		Date:      day(2),
		Kind:      models.KindSummary,
		Pageviews: 100,
		Metrics: map[models.Metric]*models.PercentileStats{
			models.MetricLCP: {Count: 100, Histogram: lcpHist(12, 100)}, // 6000..8000ms
		},
	}

	fastSummary, err := aggregator.Aggregate([]*models.RollupRecord{fast})
	require.NoError(t, err)
	slowSummary, err := aggregator.Aggregate([]*models.RollupRecord{slow})
	require.NoError(t, err)

	merged, err := aggregator.Aggregate([]*models.RollupRecord{fast, slow})
	require.NoError(t, err)
	require.NotNil(t, merged)

	// The score function is nonlinear in its inputs: the merged score is not
	// the mean of the per-record scores, it is the score of the merged
	// percentiles.
	naiveAverage := (fastSummary.Score + slowSummary.Score) / 2
	assert.NotEqual(t, naiveAverage, merged.Score)
	assert.Equal(t, ComputeScore(merged.Metrics), merged.Score)
}

func TestAggregate_DependenciesMergedKeyWise(t *testing.T) {
	t.Parallel()

	aggregator := NewPeriodAggregator()

	records := []*models.RollupRecord{
		{
			Date:         day(1),
			Kind:         models.KindSummary,
			RequestCount: 100,
			Dependencies: map[string]*models.PercentileStats{
				"redis": {Count: 100, Histogram: durationHist(2, 100)},
			},
		},
		{
			Date:         day(2),
			Kind:         models.KindSummary,
			RequestCount: 100,
			Dependencies: map[string]*models.PercentileStats{
				"redis":    {Count: 100, Histogram: durationHist(2, 100)},
				"postgres": {Count: 100, Histogram: durationHist(4, 100)},
			},
		},
	}

	summary, err := aggregator.Aggregate(records)
	require.NoError(t, err)
	require.NotNil(t, summary)
	require.Len(t, summary.Dependencies, 2)

	// redis merges both days: 200 samples in the 10..25ms bucket.
	redis := summary.Dependencies["redis"]
	require.NotNil(t, redis)
	assert.Equal(t, int64(200), redis.Count)
	assert.InDelta(t, 21.25, redis.P75, 1e-9)

	// postgres is reported by one record only and merges from just that one.
	postgres := summary.Dependencies["postgres"]
	require.NotNil(t, postgres)
	assert.Equal(t, int64(100), postgres.Count)
	assert.InDelta(t, 87.5, postgres.P75, 1e-9)
}

func TestAggregate_RejectsHistogramCountMismatch(t *testing.T) {
	t.Parallel()

	aggregator := NewPeriodAggregator()

	records := []*models.RollupRecord{
		{
			Date:         day(1),
			Kind:         models.KindSummary,
			RequestCount: 100,
			Metrics: map[models.Metric]*models.PercentileStats{
				models.MetricDuration: {Count: 100, Histogram: durationHist(4, 90)},
			},
		},
	}

	summary, err := aggregator.Aggregate(records)
	assert.Nil(t, summary)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), "sum to 90 but count is 100")
}

func TestAggregate_RejectsWrongHistogramShape(t *testing.T) {
	t.Parallel()

	aggregator := NewPeriodAggregator()

	records := []*models.RollupRecord{
		{
			Date:         day(1),
			Kind:         models.KindSummary,
			RequestCount: 10,
			Metrics: map[models.Metric]*models.PercentileStats{
				models.MetricDuration: {Count: 10, Histogram: []int64{10}},
			},
		},
	}

	summary, err := aggregator.Aggregate(records)
	assert.Nil(t, summary)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestAggregate_ThreeDayPeriodWithZeroWeightMiddleDay(t *testing.T) {
	t.Parallel()

	aggregator := NewPeriodAggregator()

	records := []*models.RollupRecord{
		{
			Date:         day(1),
			Kind:         models.KindSummary,
			RequestCount: 100,
			Metrics: map[models.Metric]*models.PercentileStats{
				models.MetricDuration: {Count: 100, Histogram: durationHist(4, 100)},
			},
		},
		{
			// Zero-weight day: contributes no weight but its samples still
			// merge.
			Date:         day(2),
			Kind:         models.KindSummary,
			RequestCount: 0,
			Metrics: map[models.Metric]*models.PercentileStats{
				models.MetricDuration: {Count: 50, Histogram: durationHist(4, 50)},
			},
		},
		{
			Date:         day(3),
			Kind:         models.KindSummary,
			RequestCount: 300,
			Metrics: map[models.Metric]*models.PercentileStats{
				models.MetricDuration: {Count: 300, Histogram: durationHist(6, 300)},
			},
		},
	}

	summary, err := aggregator.Aggregate(records)
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, int64(400), summary.RequestCount)

	merged := summary.Metrics[models.MetricDuration]
	require.NotNil(t, merged)
	assert.Equal(t, int64(450), merged.Count, "zero-weight day's samples must not be dropped")

	// p75 of 450 samples targets rank 337.5, inside the 250..500 bucket.
	assert.Greater(t, merged.P75, 250.0)
	assert.Less(t, merged.P75, 500.0)
	assert.InDelta(t, 406.25, merged.P75, 1e-9)
}

func TestAggregate_DoesNotMutateInputRecords(t *testing.T) {
	t.Parallel()

	aggregator := NewPeriodAggregator()

	hist := durationHist(4, 100)
	record := &models.RollupRecord{
		Date:         day(1),
		Kind:         models.KindSummary,
		RequestCount: 100,
		Metrics: map[models.Metric]*models.PercentileStats{
			models.MetricDuration: {Count: 100, P75: 80, Histogram: hist},
		},
	}

	_, err := aggregator.Aggregate([]*models.RollupRecord{record, record})
	require.NoError(t, err)

	assert.Equal(t, durationHist(4, 100), record.Metrics[models.MetricDuration].Histogram)
	assert.Equal(t, int64(100), record.Metrics[models.MetricDuration].Count)
	assert.InDelta(t, 80.0, record.Metrics[models.MetricDuration].P75, 1e-9)
}
