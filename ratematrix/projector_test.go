package ratematrix

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrier-contracts/models"
)

const ground = "UPS Ground - Commercial Package - Prepaid"

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func record(weight, zone string) models.DiscountRecord {
	return models.DiscountRecord{Service: ground, Weight: weight, Zone: zone}
}

func TestSelectService(t *testing.T) {
	records := []models.DiscountRecord{
		record("1-5", "2"),
		{Service: "Next Day Air", Weight: "Letter", Zone: "102"},
		record("6-10", "3"),
	}

	t.Run("keeps matching records in order", func(t *testing.T) {
		got := SelectService(records, ground)
		require.Len(t, got, 2)
		assert.Equal(t, "1-5", got[0].Weight)
		assert.Equal(t, "6-10", got[1].Weight)
	})

	t.Run("unknown service yields empty selection and empty axes", func(t *testing.T) {
		got := SelectService(records, "Freight")
		assert.Empty(t, got)

		weights, zones := DeriveAxes(got, ZoneOrderLexical)
		assert.Empty(t, weights)
		assert.Empty(t, zones)
	})
}

func TestDeriveAxes(t *testing.T) {
	tests := []struct {
		name        string
		records     []models.DiscountRecord
		order       ZoneOrder
		wantWeights []string
		wantZones   []string
	}{
		{
			name:        "empty input",
			order:       ZoneOrderLexical,
			wantWeights: []string{},
			wantZones:   []string{},
		},
		{
			name: "weights keep first-seen order, zones sort lexically",
			records: []models.DiscountRecord{
				record("Letter", "8"),
				record("1-5", "10"),
				record("1-5", "2"),
				record("Letter", "2"),
				record("6-10", "8"),
			},
			order:       ZoneOrderLexical,
			wantWeights: []string{"Letter", "1-5", "6-10"},
			wantZones:   []string{"10", "2", "8"},
		},
		{
			name: "numeric order when every zone parses",
			records: []models.DiscountRecord{
				record("1-5", "10"),
				record("1-5", "2"),
				record("1-5", "8"),
			},
			order:       ZoneOrderNumeric,
			wantWeights: []string{"1-5"},
			wantZones:   []string{"2", "8", "10"},
		},
		{
			name: "numeric order falls back to lexical on labels",
			records: []models.DiscountRecord{
				record("1-5", "10"),
				record("1-5", "ALL"),
				record("1-5", "2"),
			},
			order:       ZoneOrderNumeric,
			wantWeights: []string{"1-5"},
			wantZones:   []string{"10", "2", "ALL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weights, zones := DeriveAxes(tt.records, tt.order)
			if diff := cmp.Diff(tt.wantWeights, weights); diff != "" {
				t.Errorf("weights mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantZones, zones); diff != "" {
				t.Errorf("zones mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProjector_CellValue(t *testing.T) {
	full := record("1-5", "2")
	full.TotalDiscount = dec("30")
	full.PreMinimum = dec("9.876")
	full.FinalMinimum = dec("11")
	full.FinalRate = dec("12.5")

	zero := record("1-5", "3")
	zero.TotalDiscount = dec("0")
	zero.FinalRate = dec("0")

	missing := record("1-5", "4")

	records := []models.DiscountRecord{full, zero, missing}
	p := New(records, ground, DefaultOptions())

	tests := []struct {
		name   string
		zone   string
		metric Metric
		want   string
	}{
		{"discount as percentage", "2", MetricDiscount, "30.00%"},
		{"pre minimum as currency", "2", MetricPreMin, "$9.88"},
		{"post minimum as currency", "2", MetricPostMin, "$11.00"},
		{"final rate as currency", "2", MetricFinalRate, "$12.50"},
		{"zero discount is placeholder", "3", MetricDiscount, Placeholder},
		{"zero final rate is placeholder", "3", MetricFinalRate, Placeholder},
		{"missing discount is placeholder", "4", MetricDiscount, Placeholder},
		{"unmatched cell is placeholder", "9", MetricDiscount, Placeholder},
		{"unknown metric is placeholder", "2", Metric("rate"), Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.CellValue("1-5", tt.zone, tt.metric))
		})
	}
}

// A present zero and a missing value currently render the same placeholder.
// Changing this is a deliberate switch of Options.ZeroIsPlaceholder.
func TestProjector_ZeroAndMissingDiscountRenderAlike(t *testing.T) {
	zero := record("1-5", "2")
	zero.TotalDiscount = dec("0")
	missing := record("1-5", "3")

	p := New([]models.DiscountRecord{zero, missing}, ground, DefaultOptions())

	assert.Equal(t, "-", p.CellValue("1-5", "2", MetricDiscount))
	assert.Equal(t, p.CellValue("1-5", "2", MetricDiscount), p.CellValue("1-5", "3", MetricDiscount))
}

func TestProjector_ZeroShownWhenPolicyDisabled(t *testing.T) {
	zero := record("1-5", "2")
	zero.TotalDiscount = dec("0")
	zero.FinalRate = dec("0")
	missing := record("1-5", "3")

	opts := DefaultOptions()
	opts.ZeroIsPlaceholder = false
	p := New([]models.DiscountRecord{zero, missing}, ground, opts)

	assert.Equal(t, "0.00%", p.CellValue("1-5", "2", MetricDiscount))
	assert.Equal(t, "$0.00", p.CellValue("1-5", "2", MetricFinalRate))
	assert.Equal(t, Placeholder, p.CellValue("1-5", "3", MetricDiscount))
}

func TestProjector_CellValueIsIdempotent(t *testing.T) {
	rec := record("1-5", "2")
	rec.FinalRate = dec("10")
	p := New([]models.DiscountRecord{rec}, ground, DefaultOptions())

	for _, m := range Metrics {
		first := p.CellValue("1-5", "2", m)
		assert.Equal(t, first, p.CellValue("1-5", "2", m), m)
	}
}

func TestProjector_CellHighlight(t *testing.T) {
	rec := record("1-5", "2")
	rec.FinalRate = dec("12.50")
	rec.IsMinimum = true
	p := New([]models.DiscountRecord{rec}, ground, DefaultOptions())

	assert.Equal(t, "$12.50", p.CellValue("1-5", "2", MetricFinalRate))
	assert.Equal(t, HighlightFloorBound, p.CellHighlight("1-5", "2", MetricFinalRate))

	for _, m := range []Metric{MetricDiscount, MetricPreMin, MetricPostMin} {
		assert.Equal(t, HighlightNone, p.CellHighlight("1-5", "2", m), m)
	}
	assert.Equal(t, HighlightNone, p.CellHighlight("1-5", "9", MetricFinalRate))
}

func TestProjector_DuplicateCellKeepsFirstRecord(t *testing.T) {
	first := record("1-5", "2")
	first.FinalRate = dec("10")
	second := record("1-5", "2")
	second.FinalRate = dec("20")

	p := New([]models.DiscountRecord{first, second}, ground, DefaultOptions())
	assert.Equal(t, "$10.00", p.CellValue("1-5", "2", MetricFinalRate))
}

func TestProjector_Scenario(t *testing.T) {
	a := record("1-5", "2")
	a.FinalRate = dec("10.00")
	b := record("1-5", "10")
	b.FinalRate = dec("12.00")
	b.IsMinimum = true

	p := New([]models.DiscountRecord{a, b}, ground, DefaultOptions())

	assert.Equal(t, []string{"1-5"}, p.Weights())
	assert.Equal(t, []string{"10", "2"}, p.Zones())
	assert.Equal(t, "$10.00", p.CellValue("1-5", "2", MetricFinalRate))
	assert.Equal(t, HighlightNone, p.CellHighlight("1-5", "2", MetricFinalRate))
	assert.Equal(t, "$12.00", p.CellValue("1-5", "10", MetricFinalRate))
	assert.Equal(t, HighlightFloorBound, p.CellHighlight("1-5", "10", MetricFinalRate))

	grid := p.Grid(MetricFinalRate)
	want := Grid{
		Service: ground,
		Metric:  MetricFinalRate,
		Label:   "Final Rate",
		Zones:   []string{"10", "2"},
		Rows: []GridRow{{
			Weight: "1-5",
			Label:  "1-5 lbs",
			Cells: []GridCell{
				{Zone: "10", Value: "$12.00", Highlight: HighlightFloorBound},
				{Zone: "2", Value: "$10.00", Highlight: HighlightNone},
			},
		}},
	}
	if diff := cmp.Diff(want, grid); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, [][]string{
		{"Weight \\ Zone", "10", "2"},
		{"1-5 lbs", "$12.00", "$10.00"},
	}, grid.Table())
}

func TestProjector_EmptySelection(t *testing.T) {
	p := New([]models.DiscountRecord{record("1-5", "2")}, "Freight", DefaultOptions())

	assert.True(t, p.Empty())
	assert.Empty(t, p.Weights())
	assert.Empty(t, p.Zones())
	assert.True(t, p.Grid(MetricDiscount).Empty())
	assert.Len(t, p.Grids(), len(Metrics))
}

func TestParseMetric(t *testing.T) {
	assert.Equal(t, MetricFinalRate, ParseMetric("finalrate"))
	assert.Equal(t, MetricPreMin, ParseMetric(" preMin "))
	assert.Equal(t, MetricDiscount, ParseMetric(""))
	assert.Equal(t, MetricDiscount, ParseMetric("bogus"))
	assert.False(t, Metric("bogus").Valid())
	assert.Equal(t, "Post Adjustment Minimum", MetricPostMin.Label())
}

func TestWeightLabel(t *testing.T) {
	assert.Equal(t, "Letter", WeightLabel("Letter"))
	assert.Equal(t, "1-20 lbs", WeightLabel("1-20"))
}
