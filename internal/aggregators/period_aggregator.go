package aggregators

import (
	"fmt"
	"math"
	"sort"

	"vitals-insights/internal/histograms"
	"vitals-insights/internal/models"
)

//go:generate mockgen -source=period_aggregator.go -destination=./mocks/period_aggregator_mock.go -package=mocks
type PeriodAggregator interface {
	// Aggregate combines daily rollup records for one dimension value into a
	// single period summary. Returns (nil, nil) when records is empty or the
	// summed weight is zero; callers treat nil as "no data for this period".
	// Input records are never mutated.
	Aggregate(records []*models.RollupRecord) (*models.PeriodSummary, error)
}

type periodAggregator struct{}

func NewPeriodAggregator() PeriodAggregator {
	return &periodAggregator{}
}

func (a *periodAggregator) Aggregate(records []*models.RollupRecord) (*models.PeriodSummary, error) {
	if len(records) == 0 {
		return nil, nil
	}
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	summary := &models.PeriodSummary{}
	var totalWeight int64
	for _, r := range records {
		summary.Pageviews += r.Pageviews
		summary.RequestCount += r.RequestCount
		totalWeight += r.Weight()
	}
	if totalWeight == 0 {
		return nil, nil
	}

	for _, metric := range models.Metrics {
		parts := metricParticipants(records, metric)
		if len(parts) == 0 {
			continue
		}
		bounds, _ := histograms.Boundaries(metric)
		merged, err := mergeStats(parts, bounds, string(metric))
		if err != nil {
			return nil, err
		}
		if summary.Metrics == nil {
			summary.Metrics = make(map[models.Metric]*models.PercentileStats)
		}
		summary.Metrics[metric] = merged
	}

	if err := a.mergeDependencies(records, summary); err != nil {
		return nil, err
	}

	a.mergeStatusCounts(records, summary)
	summary.Score = ComputeScore(summary.Metrics)
	return summary, nil
}

// mergeStatusCounts sums status category counts exactly and derives the error
// rate from the summed totals. Averaging per-record error rates instead would
// bias the result toward low-volume days.
func (a *periodAggregator) mergeStatusCounts(records []*models.RollupRecord, summary *models.PeriodSummary) {
	var counts models.StatusCounts
	seen := false
	for _, r := range records {
		if r.StatusCodes == nil {
			continue
		}
		seen = true
		counts.Success += r.StatusCodes.Success
		counts.Redirect += r.StatusCodes.Redirect
		counts.ClientError += r.StatusCodes.ClientError
		counts.ServerError += r.StatusCodes.ServerError
	}
	if !seen {
		return
	}
	summary.StatusCodes = &counts
	if total := counts.Total(); total > 0 {
		errors := counts.ClientError + counts.ServerError
		summary.ErrorRate = math.Round(float64(errors)/float64(total)*10000) / 100
	}
}

// mergeDependencies merges per-dependency latency maps key-wise with the same
// histogram-or-fallback rule as metrics. A dependency present in only some
// records is merged using only the records that report it.
func (a *periodAggregator) mergeDependencies(records []*models.RollupRecord, summary *models.PeriodSummary) error {
	names := make(map[string]struct{})
	for _, r := range records {
		for name := range r.Dependencies {
			names[name] = struct{}{}
		}
	}
	if len(names) == 0 {
		return nil
	}

	ordered := make([]string, 0, len(names))
	for name := range names {
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)

	summary.Dependencies = make(map[string]*models.PercentileStats, len(ordered))
	for _, name := range ordered {
		var parts []weightedStats
		for _, r := range records {
			if stats := r.Dependencies[name]; stats != nil {
				parts = append(parts, weightedStats{stats: stats, weight: r.Weight()})
			}
		}
		merged, err := mergeStats(parts, histograms.DependencyBoundaries(), "dependency:"+name)
		if err != nil {
			return err
		}
		summary.Dependencies[name] = merged
	}
	return nil
}

type weightedStats struct {
	stats  *models.PercentileStats
	weight int64
}

func metricParticipants(records []*models.RollupRecord, metric models.Metric) []weightedStats {
	var parts []weightedStats
	for _, r := range records {
		if stats := r.Metrics[metric]; stats != nil {
			parts = append(parts, weightedStats{stats: stats, weight: r.Weight()})
		}
	}
	return parts
}

// mergeStats combines one metric's stats across the participating records.
// The histogram-vs-fallback choice is all-or-nothing across the whole merge
// set: pass one checks whether every participant carries a histogram, and only
// then does pass two pick the merge path. Mixing the two estimation models for
// sub-ranges of the same metric is never allowed.
func mergeStats(parts []weightedStats, bounds []float64, metricLabel string) (*models.PercentileStats, error) {
	merged := &models.PercentileStats{}

	allHaveHistograms := true
	for _, p := range parts {
		merged.Count += p.stats.Count
		if p.stats.Histogram == nil {
			allHaveHistograms = false
		}
		if p.stats.Ratings != nil {
			if merged.Ratings == nil {
				merged.Ratings = &models.RatingCounts{}
			}
			merged.Ratings.Good += p.stats.Ratings.Good
			merged.Ratings.NeedsImprovement += p.stats.Ratings.NeedsImprovement
			merged.Ratings.Poor += p.stats.Ratings.Poor
		}
	}

	if allHaveHistograms && bounds != nil {
		buckets := make([][]int64, len(parts))
		for i, p := range parts {
			buckets[i] = p.stats.Histogram
		}
		mergedBuckets, err := histograms.Merge(buckets...)
		if err != nil {
			metricMalformedRecordTotal.WithLabelValues(metricLabel).Inc()
			return nil, errMalformedRecord("metric %s: %v", metricLabel, err)
		}
		for _, target := range []struct {
			p   float64
			dst *float64
		}{{75, &merged.P75}, {90, &merged.P90}, {95, &merged.P95}, {99, &merged.P99}} {
			v, err := histograms.Percentile(mergedBuckets, bounds, target.p)
			if err != nil {
				metricMalformedRecordTotal.WithLabelValues(metricLabel).Inc()
				return nil, errMalformedRecord("metric %s: %v", metricLabel, err)
			}
			*target.dst = v
		}
		merged.Histogram = mergedBuckets
		return merged, nil
	}

	metricFallbackAggregationTotal.WithLabelValues(metricLabel).Inc()
	fallbackAverage(parts, merged)
	return merged, nil
}

// fallbackAverage fills the merged percentiles with the weight-weighted
// average of the participants' pre-computed percentile values. When every
// participating day has zero weight the sample counts stand in as weights so
// the stats are not silently zeroed.
func fallbackAverage(parts []weightedStats, merged *models.PercentileStats) {
	var totalWeight int64
	for _, p := range parts {
		totalWeight += p.weight
	}
	weightOf := func(p weightedStats) float64 { return float64(p.weight) }
	if totalWeight == 0 {
		for _, p := range parts {
			totalWeight += p.stats.Count
		}
		weightOf = func(p weightedStats) float64 { return float64(p.stats.Count) }
	}
	if totalWeight == 0 {
		return
	}

	var p75, p90, p95, p99 float64
	for _, p := range parts {
		w := weightOf(p)
		p75 += p.stats.P75 * w
		p90 += p.stats.P90 * w
		p95 += p.stats.P95 * w
		p99 += p.stats.P99 * w
	}
	merged.P75 = p75 / float64(totalWeight)
	merged.P90 = p90 / float64(totalWeight)
	merged.P95 = p95 / float64(totalWeight)
	merged.P99 = p99 / float64(totalWeight)
}

// validateRecords rejects records violating data-model invariants before any
// merging happens, so a summary is never built from partially-validated input.
func validateRecords(records []*models.RollupRecord) error {
	for _, r := range records {
		for metric, stats := range r.Metrics {
			bounds, ok := histograms.Boundaries(metric)
			if !ok {
				metricMalformedRecordTotal.WithLabelValues(string(metric)).Inc()
				return errMalformedRecord("record %s %s: unknown metric %q", r.Kind, r.Value, metric)
			}
			if err := validateStats(stats, bounds); err != nil {
				metricMalformedRecordTotal.WithLabelValues(string(metric)).Inc()
				return errMalformedRecord("record %s %s metric %s: %v", r.Kind, r.Value, metric, err)
			}
		}
		for name, stats := range r.Dependencies {
			if err := validateStats(stats, histograms.DependencyBoundaries()); err != nil {
				metricMalformedRecordTotal.WithLabelValues("dependency").Inc()
				return errMalformedRecord("record %s %s dependency %s: %v", r.Kind, r.Value, name, err)
			}
		}
	}
	return nil
}

func validateStats(stats *models.PercentileStats, bounds []float64) error {
	if stats.Count < 0 {
		return fmt.Errorf("negative count %d", stats.Count)
	}
	if stats.Histogram == nil {
		return nil
	}
	if len(stats.Histogram) != len(bounds) {
		return fmt.Errorf("histogram has %d buckets, boundary set has %d", len(stats.Histogram), len(bounds))
	}
	var sum int64
	for _, c := range stats.Histogram {
		if c < 0 {
			return fmt.Errorf("negative bucket count %d", c)
		}
		sum += c
	}
	if sum != stats.Count {
		return fmt.Errorf("histogram buckets sum to %d but count is %d", sum, stats.Count)
	}
	return nil
}
