package aggregators

import (
	"math"

	"vitals-insights/internal/models"
)

// scoringCurve positions a metric on a log-normal distribution: the curve
// scores 0.9 at p10 and 0.5 at median. Control points follow the published
// Core Web Vitals thresholds (p10 = "good" boundary, median = "poor"
// boundary).
type scoringCurve struct {
	p10    float64
	median float64
}

var scoringCurves = map[models.Metric]scoringCurve{
	models.MetricLCP: {p10: 2500, median: 4000},
	models.MetricINP: {p10: 200, median: 500},
	models.MetricCLS: {p10: 0.1, median: 0.25},
	models.MetricFCP: {p10: 1800, median: 3000},
}

// scoringWeights blends the per-metric curve scores into the composite score.
// TTFB is tracked for diagnostics but deliberately excluded from scoring, as
// is API duration.
var scoringWeights = map[models.Metric]float64{
	models.MetricLCP: 0.30,
	models.MetricINP: 0.30,
	models.MetricCLS: 0.25,
	models.MetricFCP: 0.15,
}

// inverseErfcOneFifth is erfc^-1(1/5), the standardized distance at which the
// log-normal curve evaluates to 0.9.
const inverseErfcOneFifth = 0.9061938024368232

// ComputeScore derives the 0-100 composite score from a set of merged
// per-metric stats, evaluated at each metric's p75. The score is a nonlinear
// function of its inputs, so it must always be recomputed from merged
// percentiles; averaging per-record scores gives a different (wrong) answer.
// Metrics with no samples are skipped and the remaining weights renormalized.
func ComputeScore(metrics map[models.Metric]*models.PercentileStats) float64 {
	var sum, totalWeight float64
	for metric, weight := range scoringWeights {
		stats := metrics[metric]
		if stats == nil || stats.Count == 0 {
			continue
		}
		sum += weight * logNormalScore(scoringCurves[metric], stats.P75)
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0
	}
	return math.Round(sum / totalWeight * 100)
}

// logNormalScore evaluates the complementary percentile of value on the curve,
// yielding 1 for instant, 0.9 at p10, 0.5 at median, approaching 0 as the
// value grows.
func logNormalScore(c scoringCurve, value float64) float64 {
	if value <= 0 {
		return 1
	}
	logRatio := math.Log(value / c.median)
	p10LogRatio := -math.Log(c.p10 / c.median)
	standardized := logRatio * inverseErfcOneFifth / p10LogRatio
	score := (1 - math.Erf(standardized)) / 2
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
