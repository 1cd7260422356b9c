// Package ratematrix projects a flat list of discount records into the
// weight by zone grid shown by the rate calculator.
package ratematrix

import (
	"sort"
	"strconv"
	"strings"

	"carrier-contracts/models"
)

// ZoneOrder controls how the zone column axis is sorted
type ZoneOrder string

const (
	// ZoneOrderLexical sorts zone labels as plain strings ("10" before "2")
	ZoneOrderLexical ZoneOrder = "lexical"
	// ZoneOrderNumeric sorts by numeric value when every label is a number,
	// falling back to lexical order otherwise
	ZoneOrderNumeric ZoneOrder = "numeric"
)

// Options holds the presentation policies of the projector
type Options struct {
	// ZeroIsPlaceholder renders a present zero value as the placeholder
	ZeroIsPlaceholder bool
	ZoneOrder         ZoneOrder
}

// DefaultOptions returns the historical presentation behavior
func DefaultOptions() Options {
	return Options{
		ZeroIsPlaceholder: true,
		ZoneOrder:         ZoneOrderLexical,
	}
}

type cellKey struct {
	weight string
	zone   string
}

// Projector answers display questions about the records of one service.
// It is immutable once built; a new selection means a new Projector.
type Projector struct {
	service string
	opts    Options
	records []models.DiscountRecord
	weights []string
	zones   []string
	cells   map[cellKey]models.DiscountRecord
}

// New builds a projector for the records of service
func New(records []models.DiscountRecord, service string, opts Options) *Projector {
	if opts.ZoneOrder == "" {
		opts.ZoneOrder = ZoneOrderLexical
	}
	filtered := SelectService(records, service)
	weights, zones := DeriveAxes(filtered, opts.ZoneOrder)

	cells := make(map[cellKey]models.DiscountRecord, len(filtered))
	for _, rec := range filtered {
		key := cellKey{weight: rec.Weight, zone: rec.Zone}
		// first record wins on duplicates
		if _, exists := cells[key]; !exists {
			cells[key] = rec
		}
	}

	return &Projector{
		service: service,
		opts:    opts,
		records: filtered,
		weights: weights,
		zones:   zones,
		cells:   cells,
	}
}

// SelectService returns the records whose service equals service, in their original order
func SelectService(records []models.DiscountRecord, service string) []models.DiscountRecord {
	filtered := make([]models.DiscountRecord, 0)
	for _, rec := range records {
		if rec.Service == service {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// DeriveAxes returns the distinct weights in first-seen order and the
// distinct zones sorted according to order.
func DeriveAxes(records []models.DiscountRecord, order ZoneOrder) (weights []string, zones []string) {
	weights = make([]string, 0)
	zones = make([]string, 0)
	seenWeights := make(map[string]bool)
	seenZones := make(map[string]bool)

	for _, rec := range records {
		if !seenWeights[rec.Weight] {
			seenWeights[rec.Weight] = true
			weights = append(weights, rec.Weight)
		}
		if !seenZones[rec.Zone] {
			seenZones[rec.Zone] = true
			zones = append(zones, rec.Zone)
		}
	}

	sortZones(zones, order)
	return weights, zones
}

func sortZones(zones []string, order ZoneOrder) {
	if order == ZoneOrderNumeric {
		values := make(map[string]float64, len(zones))
		numeric := true
		for _, z := range zones {
			v, err := strconv.ParseFloat(strings.TrimSpace(z), 64)
			if err != nil {
				numeric = false
				break
			}
			values[z] = v
		}
		if numeric {
			sort.SliceStable(zones, func(i, j int) bool {
				if values[zones[i]] == values[zones[j]] {
					return zones[i] < zones[j]
				}
				return values[zones[i]] < values[zones[j]]
			})
			return
		}
	}
	sort.Strings(zones)
}

// Service returns the selected service label
func (p *Projector) Service() string {
	return p.service
}

// Records returns the filtered records of the selected service
func (p *Projector) Records() []models.DiscountRecord {
	return p.records
}

// Weights returns the row axis
func (p *Projector) Weights() []string {
	return p.weights
}

// Zones returns the column axis
func (p *Projector) Zones() []string {
	return p.zones
}

// Empty reports whether the selection produced no records
func (p *Projector) Empty() bool {
	return len(p.records) == 0
}

// CellValue returns the formatted value of metric at (weight, zone),
// or Placeholder when there is nothing to show.
func (p *Projector) CellValue(weight, zone string, metric Metric) string {
	rec, ok := p.cells[cellKey{weight: weight, zone: zone}]
	if !ok {
		return Placeholder
	}

	switch metric {
	case MetricDiscount:
		if v, ok := displayable(rec.TotalDiscount, p.opts.ZeroIsPlaceholder); ok {
			return FormatPercent(v)
		}
	case MetricPreMin:
		if v, ok := displayable(rec.PreMinimum, p.opts.ZeroIsPlaceholder); ok {
			return FormatCurrency(v)
		}
	case MetricPostMin:
		if v, ok := displayable(rec.FinalMinimum, p.opts.ZeroIsPlaceholder); ok {
			return FormatCurrency(v)
		}
	case MetricFinalRate:
		if v, ok := displayable(rec.FinalRate, p.opts.ZeroIsPlaceholder); ok {
			return FormatCurrency(v)
		}
	}
	return Placeholder
}

// CellHighlight returns HighlightFloorBound when the final rate tab is active
// and the minimum charge was binding for the cell.
func (p *Projector) CellHighlight(weight, zone string, active Metric) Highlight {
	if active != MetricFinalRate {
		return HighlightNone
	}
	rec, ok := p.cells[cellKey{weight: weight, zone: zone}]
	if ok && rec.IsMinimum {
		return HighlightFloorBound
	}
	return HighlightNone
}
