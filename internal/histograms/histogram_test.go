package histograms

import (
	"math/rand"
	"testing"

	"vitals-insights/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundaries_EveryMetricHasASet(t *testing.T) {
	t.Parallel()

	for _, metric := range models.Metrics {
		bounds, ok := Boundaries(metric)
		require.True(t, ok, "metric %s has no boundary set", metric)
		require.NotEmpty(t, bounds)

		// Boundary sets must be strictly increasing or interpolation breaks.
		for i := 1; i < len(bounds); i++ {
			assert.Greater(t, bounds[i], bounds[i-1], "metric %s boundaries not increasing", metric)
		}
	}
}

func TestMerge_ElementWiseSum(t *testing.T) {
	t.Parallel()

	merged, err := Merge(
		[]int64{1, 2, 3},
		[]int64{10, 0, 5},
		[]int64{0, 0, 1},
	)
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 2, 9}, merged)
}

func TestMerge_IsCommutative(t *testing.T) {
	t.Parallel()

	histograms := [][]int64{
		{5, 0, 2, 9},
		{0, 1, 1, 0},
		{3, 3, 3, 3},
		{100, 0, 0, 7},
	}

	expected, err := Merge(histograms...)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([][]int64, len(histograms))
		copy(shuffled, histograms)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		merged, err := Merge(shuffled...)
		require.NoError(t, err)
		assert.Equal(t, expected, merged)
	}
}

func TestMerge_RejectsShapeMismatch(t *testing.T) {
	t.Parallel()

	_, err := Merge([]int64{1, 2, 3}, []int64{1, 2})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "shape mismatch")
}

func TestMerge_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Merge()
	assert.Error(t, err)
}

func TestPercentile_InterpolatesWithinCrossingBucket(t *testing.T) {
	t.Parallel()

	bounds := []float64{10, 20, 30}
	buckets := []int64{10, 10, 0}

	// p75 of 20 samples targets rank 15: 10 samples fill the first bucket,
	// the remaining 5 sit halfway into the 10..20 bucket.
	v, err := Percentile(buckets, bounds, 75)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, v, 1e-9)

	// p50 lands exactly on the first bucket's upper edge.
	v, err = Percentile(buckets, bounds, 50)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, v, 1e-9)
}

func TestPercentile_FirstBucketClampsToOwnBoundary(t *testing.T) {
	t.Parallel()

	bounds := []float64{10, 20, 30}
	buckets := []int64{4, 0, 0}

	v, err := Percentile(buckets, bounds, 25)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, v, 1e-9)

	// Even p100 cannot exceed the bucket's own boundary.
	v, err = Percentile(buckets, bounds, 100)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, v, 1e-9)
}

func TestPercentile_LastBucketClampsToOwnBoundary(t *testing.T) {
	t.Parallel()

	bounds := []float64{10, 20, 30}
	buckets := []int64{0, 0, 5}

	v, err := Percentile(buckets, bounds, 50)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, v, 1e-9)

	v, err = Percentile(buckets, bounds, 100)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, v, 1e-9)
}

func TestPercentile_AllZeroHistogramIsZero(t *testing.T) {
	t.Parallel()

	v, err := Percentile([]int64{0, 0, 0}, []float64{10, 20, 30}, 75)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestPercentile_RejectsShapeMismatch(t *testing.T) {
	t.Parallel()

	_, err := Percentile([]int64{1, 2}, []float64{10, 20, 30}, 75)
	assert.Error(t, err)
}

func TestPercentile_RejectsNegativeCounts(t *testing.T) {
	t.Parallel()

	_, err := Percentile([]int64{1, -2, 3}, []float64{10, 20, 30}, 75)
	assert.Error(t, err)
}
