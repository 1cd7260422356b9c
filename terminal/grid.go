// Package terminal renders rate grids for the command line.
package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"carrier-contracts/ratematrix"
)

// FloorMarker is appended to floor-bound values so they stand out without colors
const FloorMarker = " *"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	cellStyle   = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
	floorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("221"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// RenderGrid lays grid out as aligned columns: a header row of zones and one row per weight.
func RenderGrid(grid ratematrix.Grid) string {
	var b strings.Builder

	service := grid.Service
	if service == "" {
		service = "No service selected"
	}
	b.WriteString(titleStyle.Render(service + " · " + grid.Label))
	b.WriteString("\n")

	if grid.Empty() {
		b.WriteString(mutedStyle.Render("No data available for this service."))
		b.WriteString("\n")
		return b.String()
	}

	table := grid.Table()
	floor := make(map[[2]int]bool)
	for r, row := range grid.Rows {
		for c, cell := range row.Cells {
			if cell.FloorBound() {
				floor[[2]int{r + 1, c + 1}] = true
				table[r+1][c+1] += FloorMarker
			}
		}
	}

	widths := make([]int, len(table[0]))
	for _, row := range table {
		for c, value := range row {
			if w := lipgloss.Width(value); w > widths[c] {
				widths[c] = w
			}
		}
	}

	for r, row := range table {
		cells := make([]string, len(row))
		for c, value := range row {
			align := lipgloss.Right
			if c == 0 {
				align = lipgloss.Left
			}
			style := cellStyle.Width(widths[c] + 2).Align(align)
			switch {
			case r == 0 || c == 0:
				style = style.Inherit(headerStyle)
			case floor[[2]int{r, c}]:
				style = style.Inherit(floorStyle)
			}
			cells[c] = style.Render(value)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	if len(floor) > 0 {
		b.WriteString(mutedStyle.Render(strings.TrimSpace(FloorMarker) + " minimum charge applies"))
		b.WriteString("\n")
	}
	return b.String()
}
