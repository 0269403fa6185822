// Package rollupkeys builds and parses the composite keys under which daily
// rollup records are stored: a partition key encoding the date plus optional
// scope filters, and a sort key encoding the record kind and breakdown value.
// Encoding and decoding are a lossless bijection for the supported kinds;
// unknown tags are rejected.
package rollupkeys

import (
	"fmt"
	"strings"
	"time"

	"vitals-insights/internal/models"
)

const (
	// Delimiter separates tag and value segments inside keys. Dimension
	// values must not contain it when used as a partition filter.
	Delimiter = "#"

	// DateFormat is the calendar-day granularity all keys are stored at.
	DateFormat = "2006-01-02"

	dayPrefix      = "DAY"
	summarySortKey = "SUMMARY"
)

var tagToKind = map[string]models.DimensionKind{
	"R": models.KindRoute,
	"C": models.KindCountry,
	"D": models.KindDevice,
	"P": models.KindPlatform,
	"S": models.KindStatus,
	"E": models.KindEndpoint,
}

// PartitionKey encodes a UTC day plus optional scope filters, appending each
// present filter as #<TAG>#<value> in the canonical order device, country,
// platform so the same logical scope always serializes identically.
func PartitionKey(date time.Time, scope models.ScopeFilters) string {
	var b strings.Builder
	b.WriteString(dayPrefix)
	b.WriteString(Delimiter)
	b.WriteString(FormatDate(date))
	if scope.Device != "" {
		b.WriteString(Delimiter + models.KindDevice.Tag() + Delimiter + scope.Device)
	}
	if scope.Country != "" {
		b.WriteString(Delimiter + models.KindCountry.Tag() + Delimiter + scope.Country)
	}
	if scope.Platform != "" {
		b.WriteString(Delimiter + models.KindPlatform.Tag() + Delimiter + scope.Platform)
	}
	return b.String()
}

// SortKey encodes a record kind and its breakdown value. Summary records use
// the bare SUMMARY key and must not carry a value.
func SortKey(kind models.DimensionKind, value string) (string, error) {
	if kind == models.KindSummary {
		if value != "" {
			return "", fmt.Errorf("summary sort key takes no value, got %q", value)
		}
		return summarySortKey, nil
	}
	tag := kind.Tag()
	if tag == "" {
		return "", fmt.Errorf("unknown dimension kind: %q", kind)
	}
	if value == "" {
		return "", fmt.Errorf("empty value for dimension kind %q", kind)
	}
	return tag + Delimiter + value, nil
}

// SortKeyPrefix returns the prefix matching every record of the given kind
// within one partition.
func SortKeyPrefix(kind models.DimensionKind) (string, error) {
	if kind == models.KindSummary {
		return summarySortKey, nil
	}
	tag := kind.Tag()
	if tag == "" {
		return "", fmt.Errorf("unknown dimension kind: %q", kind)
	}
	return tag + Delimiter, nil
}

// DecodeSortKey recovers the kind and raw dimension value from a sort key,
// e.g. "C#US" yields (country, "US"). Unknown tags are rejected.
func DecodeSortKey(sortKey string) (models.DimensionKind, string, error) {
	if sortKey == summarySortKey {
		return models.KindSummary, "", nil
	}
	tag, value, found := strings.Cut(sortKey, Delimiter)
	if !found {
		return "", "", fmt.Errorf("malformed sort key: %q", sortKey)
	}
	kind, ok := tagToKind[tag]
	if !ok {
		return "", "", fmt.Errorf("unknown dimension tag %q in sort key %q", tag, sortKey)
	}
	if value == "" {
		return "", "", fmt.Errorf("empty value in sort key %q", sortKey)
	}
	return kind, value, nil
}

// IndexKey is the secondary-index hash key for single-series range scans:
// identical to the sort key, paired with the date string as range component.
func IndexKey(kind models.DimensionKind, value string) (string, error) {
	return SortKey(kind, value)
}

// FormatDate renders t as the UTC calendar day used in keys.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateFormat)
}

// ParseDate parses a key date segment back into a UTC day.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
