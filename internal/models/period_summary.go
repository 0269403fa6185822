package models

// PeriodSummary is the result of aggregating multiple rollup records (one
// dimension value across a day range) into one combined statistic set. It is
// request-scoped and never persisted.
type PeriodSummary struct {
	Pageviews    int64 `json:"pageviews,omitempty"`
	RequestCount int64 `json:"requestCount,omitempty"`

	Metrics      map[Metric]*PercentileStats `json:"metrics,omitempty"`
	StatusCodes  *StatusCounts               `json:"statusCodes,omitempty"`
	Dependencies map[string]*PercentileStats `json:"dependencies,omitempty"`

	// ErrorRate is (clientError+serverError)/total in percent with two
	// decimals, computed from the summed status counts.
	ErrorRate float64 `json:"errorRate,omitempty"`

	// Score is recomputed from the merged percentiles, never averaged from
	// the source records' individual scores.
	Score float64 `json:"score"`
}

// Weight returns the summary's total aggregation weight, mirroring
// RollupRecord.Weight.
func (s *PeriodSummary) Weight() int64 {
	if s.RequestCount > 0 {
		return s.RequestCount
	}
	return s.Pageviews
}
