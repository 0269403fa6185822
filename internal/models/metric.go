package models

import "fmt"

// Metric identifies one tracked performance metric.
type Metric string

const (
	// Browser Web Vitals, collected per pageview.
	MetricLCP  Metric = "lcp"  // largest contentful paint, ms
	MetricFCP  Metric = "fcp"  // first contentful paint, ms
	MetricINP  Metric = "inp"  // interaction to next paint, ms
	MetricCLS  Metric = "cls"  // cumulative layout shift, unitless
	MetricTTFB Metric = "ttfb" // time to first byte, ms

	// Server-side API latency, collected per request.
	MetricDuration Metric = "duration" // ms
)

// Metrics lists every supported metric in a stable order.
var Metrics = []Metric{MetricLCP, MetricFCP, MetricINP, MetricCLS, MetricTTFB, MetricDuration}

func NewMetricFromString(s string) (Metric, error) {
	switch Metric(s) {
	case MetricLCP, MetricFCP, MetricINP, MetricCLS, MetricTTFB, MetricDuration:
		return Metric(s), nil
	}
	return "", fmt.Errorf("unknown metric: %q", s)
}
