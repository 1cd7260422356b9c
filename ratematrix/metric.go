package ratematrix

import "strings"

// Metric selects which field of a discount record a grid cell displays
type Metric string

const (
	MetricDiscount  Metric = "discount"
	MetricPreMin    Metric = "preMin"
	MetricPostMin   Metric = "postMin"
	MetricFinalRate Metric = "finalRate"
)

// Metrics lists the metrics in tab order
var Metrics = []Metric{MetricDiscount, MetricPreMin, MetricPostMin, MetricFinalRate}

var metricLabels = map[Metric]string{
	MetricDiscount:  "Discount (in %)",
	MetricPreMin:    "Pre Adjustment Minimum",
	MetricPostMin:   "Post Adjustment Minimum",
	MetricFinalRate: "Final Rate",
}

// Label returns the human readable tab title of the metric
func (m Metric) Label() string {
	if label, ok := metricLabels[m]; ok {
		return label
	}
	return string(m)
}

// Valid reports whether m is one of the four known metrics
func (m Metric) Valid() bool {
	_, ok := metricLabels[m]
	return ok
}

// ParseMetric maps a query value to a Metric, case-insensitively.
// Unknown or empty values fall back to MetricDiscount, the first tab.
func ParseMetric(s string) Metric {
	s = strings.TrimSpace(s)
	for _, m := range Metrics {
		if strings.EqualFold(string(m), s) {
			return m
		}
	}
	return MetricDiscount
}

// Highlight is the conditional styling state of a grid cell
type Highlight string

const (
	HighlightNone       Highlight = "none"
	HighlightFloorBound Highlight = "floor-bound"
)
