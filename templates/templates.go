// Package templates holds the embedded HTML views and the data each one renders.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"carrier-contracts/models"
	"carrier-contracts/ratematrix"
)

//go:embed *.html
var files embed.FS

// Page names accepted by Renderer.Render
const (
	PageHome      = "home"
	PageViewer    = "viewer"
	PageCalculate = "calculate"
	PageMatrix    = "matrix"
)

// Page carries the banners every layout page can show
type Page struct {
	Notice string
	Error  string
}

// HomePage is the upload form plus the contract list
type HomePage struct {
	Page
	Contracts []models.Contract
}

// TableOption is one entry of the viewer's table select
type TableOption struct {
	Key      string
	Title    string
	Selected bool
}

// ViewerPage shows one table of a contract version
type ViewerPage struct {
	Page
	ContractID    string
	VersionID     string
	WeeklyCharges string
	Version       *models.ContractVersion
	Tables        []TableOption
	Table         ratematrix.TableView
}

// Link is a labelled URL
type Link struct {
	Label  string
	URL    string
	Active bool
}

// CalculatorPage shows the rate matrix of one service and metric
type CalculatorPage struct {
	Page
	ContractID      string
	VersionID       string
	WeeklyCharges   string
	Services        []string
	SelectedService string
	Metric          ratematrix.Metric
	Tabs            []Link
	Exports         []Link
	Grid            ratematrix.Grid
}

// MatrixPage is the standalone grid used for HTML, PDF and PNG exports
type MatrixPage struct {
	WeeklyCharges string
	// Notice is printed above the grid, e.g. when sample rates are shown
	Notice string
	Grid   ratematrix.Grid
}

// Renderer executes the embedded templates
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared layout and grid partial
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}

	for _, page := range []string{PageHome, PageViewer, PageCalculate} {
		tmpl, err := template.ParseFS(files, "layout.html", "grid.html", page+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.pages[page] = tmpl.Lookup("layout")
	}

	matrix, err := template.ParseFS(files, "grid.html", "matrix.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", PageMatrix, err)
	}
	r.pages[PageMatrix] = matrix.Lookup("matrix")

	return r, nil
}

// Render writes page to w. Output is buffered so a failing template
// never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, page string, data interface{}) error {
	tmpl, ok := r.pages[page]
	if !ok || tmpl == nil {
		return fmt.Errorf("unknown template %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", page, err)
	}

	_, err := buf.WriteTo(w)
	return err
}
