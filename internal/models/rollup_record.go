package models

import "time"

// RollupRecord is one pre-aggregated bucket of metrics for one UTC day and one
// dimension scope. Records are written once by the ingest side and never
// mutated afterwards; the aggregator only combines them into request-scoped
// PeriodSummary values.
type RollupRecord struct {
	Date  time.Time     `json:"date"`
	Scope ScopeFilters  `json:"scope,omitempty"`
	Kind  DimensionKind `json:"kind"`
	// Value is the breakdown dimension value (route pattern, country code,
	// device class, ...). Empty for summary records.
	Value string `json:"value,omitempty"`

	// Pageviews and RequestCount are the authoritative weights for any
	// weighted computation. They are summed across records, never averaged,
	// and never estimated from percentiles.
	Pageviews    int64 `json:"pageviews,omitempty"`
	RequestCount int64 `json:"requestCount,omitempty"`

	Metrics      map[Metric]*PercentileStats `json:"metrics,omitempty"`
	StatusCodes  *StatusCounts               `json:"statusCodes,omitempty"`
	Dependencies map[string]*PercentileStats `json:"dependencies,omitempty"`

	// Score is the composite score stored at ingest time for this single
	// record. Aggregation ignores it and recomputes from merged percentiles.
	Score float64 `json:"score,omitempty"`
}

// Weight returns the record's aggregation weight: request count for API
// rollups, pageviews for browser rollups. A record carries one or the other.
func (r *RollupRecord) Weight() int64 {
	if r.RequestCount > 0 {
		return r.RequestCount
	}
	return r.Pageviews
}

// PercentileStats holds pre-computed percentiles for one metric, optionally
// with the fixed-boundary histogram they were derived from and Web-Vitals
// style rating counts.
type PercentileStats struct {
	Count int64   `json:"count"`
	P75   float64 `json:"p75"`
	P90   float64 `json:"p90"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
	// Histogram, when present, is the per-bucket sample counts aligned to the
	// metric's fixed boundary set. Invariant: sum(Histogram) == Count.
	Histogram []int64       `json:"histogram,omitempty"`
	Ratings   *RatingCounts `json:"ratings,omitempty"`
}

// RatingCounts are Web-Vitals style threshold bucket counts.
type RatingCounts struct {
	Good             int64 `json:"good"`
	NeedsImprovement int64 `json:"needsImprovement"`
	Poor             int64 `json:"poor"`
}

// StatusCounts are HTTP status category counts for API rollups.
type StatusCounts struct {
	Success     int64 `json:"success"`
	Redirect    int64 `json:"redirect"`
	ClientError int64 `json:"clientError"`
	ServerError int64 `json:"serverError"`
}

func (s *StatusCounts) Total() int64 {
	return s.Success + s.Redirect + s.ClientError + s.ServerError
}

// ScopeFilters are the optional partition filters a record was produced under,
// serialized in canonical order device, country, platform.
type ScopeFilters struct {
	Device   string `json:"device,omitempty"`
	Country  string `json:"country,omitempty"`
	Platform string `json:"platform,omitempty"`
}

func (f ScopeFilters) IsZero() bool {
	return f == ScopeFilters{}
}
