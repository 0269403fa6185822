package queries

import (
	"fmt"
	"sort"

	"vitals-insights/internal/models"
)

// SortField selects which aggregated value a listing is ordered by.
type SortField string

const (
	SortByRequests  SortField = "requests"
	SortByPageviews SortField = "pageviews"
	SortByScore     SortField = "score"
	// SortByP75 orders by one metric's merged p75; Sort.Metric names it.
	SortByP75 SortField = "p75"
)

// Sort describes a listing ordering. The zero value sorts by requests
// descending.
type Sort struct {
	Field     SortField
	Metric    models.Metric
	Ascending bool
}

// NewSortFromStrings parses caller-supplied sort parameters. sortBy may be a
// sort field name or, for p75 ordering, "p75:<metric>". dir is "asc" or
// "desc"; empty means descending.
func NewSortFromStrings(sortBy, dir string) (Sort, error) {
	s := Sort{Field: SortByRequests}
	switch dir {
	case "", "desc":
	case "asc":
		s.Ascending = true
	default:
		return Sort{}, fmt.Errorf("unknown sort direction: %q", dir)
	}

	switch SortField(sortBy) {
	case "", SortByRequests:
		s.Field = SortByRequests
	case SortByPageviews, SortByScore:
		s.Field = SortField(sortBy)
	default:
		var metric string
		if n, _ := fmt.Sscanf(sortBy, "p75:%s", &metric); n == 1 {
			m, err := models.NewMetricFromString(metric)
			if err != nil {
				return Sort{}, err
			}
			s.Field = SortByP75
			s.Metric = m
			return s, nil
		}
		return Sort{}, fmt.Errorf("unknown sort field: %q", sortBy)
	}
	return s, nil
}

func sortItems(items []DimensionListItem, s Sort) {
	// Secondary ordering by value keeps equal-keyed items deterministic.
	sort.Slice(items, func(i, j int) bool {
		a, b := sortKeyOf(items[i], s), sortKeyOf(items[j], s)
		if a == b {
			return items[i].Value < items[j].Value
		}
		if s.Ascending {
			return a < b
		}
		return a > b
	})
}

func sortKeyOf(item DimensionListItem, s Sort) float64 {
	switch s.Field {
	case SortByPageviews:
		return float64(item.Summary.Pageviews)
	case SortByScore:
		return item.Summary.Score
	case SortByP75:
		if stats := item.Summary.Metrics[s.Metric]; stats != nil {
			return stats.P75
		}
		return 0
	default:
		return float64(item.Summary.RequestCount)
	}
}
