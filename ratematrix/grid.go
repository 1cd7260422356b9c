package ratematrix

// Grid is a fully resolved rendering of one metric for one service
type Grid struct {
	Service string    `json:"service"`
	Metric  Metric    `json:"metric"`
	Label   string    `json:"label"`
	Zones   []string  `json:"zones"`
	Rows    []GridRow `json:"rows"`
}

// GridRow is one weight bracket of the grid
type GridRow struct {
	Weight string     `json:"weight"`
	Label  string     `json:"label"`
	Cells  []GridCell `json:"cells"`
}

// GridCell is a formatted value plus its highlight state
type GridCell struct {
	Zone      string    `json:"zone"`
	Value     string    `json:"value"`
	Highlight Highlight `json:"highlight"`
}

// FloorBound reports whether the cell should be highlighted
func (c GridCell) FloorBound() bool {
	return c.Highlight == HighlightFloorBound
}

// Empty reports whether the grid has no rows
func (g Grid) Empty() bool {
	return len(g.Rows) == 0
}

// Grid resolves every cell of the projector for metric
func (p *Projector) Grid(metric Metric) Grid {
	grid := Grid{
		Service: p.service,
		Metric:  metric,
		Label:   metric.Label(),
		Zones:   p.zones,
		Rows:    make([]GridRow, 0, len(p.weights)),
	}

	for _, weight := range p.weights {
		row := GridRow{
			Weight: weight,
			Label:  WeightLabel(weight),
			Cells:  make([]GridCell, 0, len(p.zones)),
		}
		for _, zone := range p.zones {
			row.Cells = append(row.Cells, GridCell{
				Zone:      zone,
				Value:     p.CellValue(weight, zone, metric),
				Highlight: p.CellHighlight(weight, zone, metric),
			})
		}
		grid.Rows = append(grid.Rows, row)
	}

	return grid
}

// Grids resolves the grid of every metric in tab order
func (p *Projector) Grids() []Grid {
	grids := make([]Grid, 0, len(Metrics))
	for _, m := range Metrics {
		grids = append(grids, p.Grid(m))
	}
	return grids
}

// Table returns the grid as plain string rows with a header row first,
// the shape used by spreadsheet and terminal exports.
func (g Grid) Table() [][]string {
	header := make([]string, 0, len(g.Zones)+1)
	header = append(header, "Weight \\ Zone")
	header = append(header, g.Zones...)

	table := [][]string{header}
	for _, row := range g.Rows {
		line := make([]string, 0, len(row.Cells)+1)
		line = append(line, row.Label)
		for _, cell := range row.Cells {
			line = append(line, cell.Value)
		}
		table = append(table, line)
	}
	return table
}
