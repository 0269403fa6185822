// Package histograms merges fixed-boundary bucketed histograms and estimates
// percentiles from the merged shape. Every metric has one frozen boundary set;
// rollups produced on different days therefore always share a shape and merge
// by element-wise summation, which is exact (unlike averaging percentiles).
package histograms

import (
	"fmt"

	"vitals-insights/internal/models"
)

// boundaries holds the upper edge of each bucket per metric. The first bucket
// spans from 0 to its edge; the last bucket is closed at its edge and
// percentile interpolation clamps to it. These sets are frozen: changing them
// would make previously stored histograms unmergeable.
var boundaries = map[models.Metric][]float64{
	models.MetricLCP:  {100, 250, 500, 750, 1000, 1500, 2000, 2500, 3000, 4000, 5000, 6000, 8000, 10000, 15000},
	models.MetricFCP:  {100, 250, 500, 750, 1000, 1500, 1800, 2500, 3000, 4000, 6000, 10000},
	models.MetricINP:  {25, 50, 100, 150, 200, 300, 400, 500, 750, 1000, 1500, 2000, 3000, 5000},
	models.MetricTTFB: {50, 100, 200, 300, 500, 800, 1200, 1800, 2500, 4000, 6000, 10000},
	models.MetricCLS:  {0.01, 0.025, 0.05, 0.075, 0.1, 0.15, 0.25, 0.4, 0.6, 1, 2},

	models.MetricDuration: {5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
}

// dependencyBoundaries is the shared boundary set for per-dependency latency
// histograms, regardless of dependency name.
var dependencyBoundaries = boundaries[models.MetricDuration]

// Boundaries returns the fixed bucket boundary set for a metric.
func Boundaries(m models.Metric) ([]float64, bool) {
	b, ok := boundaries[m]
	return b, ok
}

// DependencyBoundaries returns the boundary set used for dependency latency
// histograms.
func DependencyBoundaries() []float64 {
	return dependencyBoundaries
}

// Merge element-wise sums a set of same-shape histograms. The result is
// invariant to input order. Shape disagreement is a data integrity error.
func Merge(histograms ...[]int64) ([]int64, error) {
	if len(histograms) == 0 {
		return nil, fmt.Errorf("no histograms to merge")
	}
	merged := make([]int64, len(histograms[0]))
	for _, h := range histograms {
		if len(h) != len(merged) {
			return nil, fmt.Errorf("histogram shape mismatch: %d buckets vs %d", len(h), len(merged))
		}
		for i, c := range h {
			merged[i] += c
		}
	}
	return merged, nil
}

// Percentile estimates the value at percentile p (0..100) from bucket counts
// over the given boundary set, assuming a uniform distribution within each
// bucket. Returns 0 for an all-zero histogram.
func Percentile(buckets []int64, bounds []float64, p float64) (float64, error) {
	if len(buckets) != len(bounds) {
		return 0, fmt.Errorf("histogram has %d buckets but boundary set has %d", len(buckets), len(bounds))
	}
	var total int64
	for _, c := range buckets {
		if c < 0 {
			return 0, fmt.Errorf("negative bucket count: %d", c)
		}
		total += c
	}
	if total == 0 {
		return 0, nil
	}

	target := float64(total) * p / 100
	var cum int64
	for i, c := range buckets {
		if c == 0 {
			continue
		}
		if float64(cum+c) >= target {
			lower := 0.0
			if i > 0 {
				lower = bounds[i-1]
			}
			upper := bounds[i]
			frac := (target - float64(cum)) / float64(c)
			if frac < 0 {
				frac = 0
			}
			if frac > 1 {
				frac = 1
			}
			return lower + (upper-lower)*frac, nil
		}
		cum += c
	}

	// Rounding pushed the target past the final cumulative count; clamp to
	// the last boundary.
	return bounds[len(bounds)-1], nil
}
