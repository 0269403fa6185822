package models

import "fmt"

// DimensionKind is the closed set of breakdown axes a rollup record can be
// keyed by. Each kind owns its sort-key tag; the summary kind is the single
// unfiltered record per date+scope.
type DimensionKind string

const (
	KindSummary  DimensionKind = "summary"
	KindRoute    DimensionKind = "route"
	KindCountry  DimensionKind = "country"
	KindDevice   DimensionKind = "device"
	KindPlatform DimensionKind = "platform"
	KindStatus   DimensionKind = "status"
	KindEndpoint DimensionKind = "endpoint"
)

// BreakdownKinds lists the kinds that carry a dimension value, i.e. everything
// except the summary record.
var BreakdownKinds = []DimensionKind{KindRoute, KindCountry, KindDevice, KindPlatform, KindStatus, KindEndpoint}

func NewDimensionKindFromString(s string) (DimensionKind, error) {
	switch DimensionKind(s) {
	case KindSummary, KindRoute, KindCountry, KindDevice, KindPlatform, KindStatus, KindEndpoint:
		return DimensionKind(s), nil
	}
	return "", fmt.Errorf("unknown dimension kind: %q", s)
}

// Tag returns the sort-key tag for the kind. The summary kind has no tag; its
// sort key is the literal "SUMMARY".
func (k DimensionKind) Tag() string {
	switch k {
	case KindRoute:
		return "R"
	case KindCountry:
		return "C"
	case KindDevice:
		return "D"
	case KindPlatform:
		return "P"
	case KindStatus:
		return "S"
	case KindEndpoint:
		return "E"
	}
	return ""
}
