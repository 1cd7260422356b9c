package controller

import (
	"mime"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"carrier-contracts/ratematrix"
	"carrier-contracts/service"
	"carrier-contracts/templates"
	"carrier-contracts/utils"
)

type exportFormat struct {
	Name  string
	Label string
}

// exportFormats lists the accepted ?format= values in menu order
var exportFormats = []exportFormat{
	{Name: "html", Label: "HTML"},
	{Name: "pdf", Label: "PDF"},
	{Name: "png", Label: "PNG"},
	{Name: "sheets", Label: "Google Sheets"},
}

func validExportFormat(name string) bool {
	for _, f := range exportFormats {
		if f.Name == name {
			return true
		}
	}
	return false
}

// ExportController renders the rate grid as standalone HTML, PDF, PNG or a Google Sheets tab
type ExportController struct {
	calculations service.CalculationServiceInterface
	exporter     service.ExportServiceInterface
	sheets       service.SheetsServiceInterface // nil when Sheets export is not configured
	renderer     *templates.Renderer
	logger       *zap.SugaredLogger
}

// NewExportController creates a new ExportController. sheets may be nil.
func NewExportController(
	calculations service.CalculationServiceInterface,
	exporter service.ExportServiceInterface,
	sheets service.SheetsServiceInterface,
	renderer *templates.Renderer,
	logger *zap.SugaredLogger,
) *ExportController {
	return &ExportController{
		calculations: calculations,
		exporter:     exporter,
		sheets:       sheets,
		renderer:     renderer,
		logger:       logger,
	}
}

// Export handles GET /contract/{contractID}/version/{versionID}/calculate/export?format=html|pdf|png|sheets
func (c *ExportController) Export(w http.ResponseWriter, r *http.Request) {
	contractID := r.PathValue("contractID")
	versionID := r.PathValue("versionID")
	query := r.URL.Query()

	format := strings.ToLower(strings.TrimSpace(query.Get("format")))
	if format == "" {
		format = "html"
	}
	if !validExportFormat(format) {
		c.logger.Warnf("⚠️  Export: invalid format %q", format)
		http.Error(w, "Invalid format. Valid formats: html, pdf, png, sheets", http.StatusBadRequest)
		return
	}

	weeklyCharges, _, err := parseWeeklyCharges(query.Get("weeklyCharges"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	metric := ratematrix.ParseMetric(query.Get("metric"))

	if format == "sheets" && c.sheets == nil {
		writeFailure(w, http.StatusServiceUnavailable, "Google Sheets export is not configured")
		return
	}

	// Calculated up front so PDF and PNG fail fast instead of waiting on the browser
	view, err := c.calculations.BuildMatrix(r.Context(), versionID, weeklyCharges, query.Get("service"))
	if err != nil {
		c.logger.Errorf("❌ Export: version=%s: %v", versionID, err)
		if format == "sheets" {
			writeFailure(w, http.StatusInternalServerError, "Failed to calculate rates")
			return
		}
		http.Error(w, "Failed to calculate rates", http.StatusInternalServerError)
		return
	}

	switch format {
	case "pdf":
		c.exportBinary(w, r, "application/pdf", "pdf", query, func(renderURL string) ([]byte, error) {
			return c.exporter.GeneratePDF(r.Context(), renderURL)
		})
		return
	case "png":
		c.exportBinary(w, r, "image/png", "png", query, func(renderURL string) ([]byte, error) {
			return c.exporter.GeneratePNG(r.Context(), renderURL)
		})
		return
	case "sheets":
		// sample rates must never land in a real spreadsheet
		if view.UsedSample {
			c.logger.Warnf("⚠️  Export: sheets refused for version=%s, backend failed: %s", versionID, view.FallbackReason)
			writeFailure(w, http.StatusInternalServerError, "Failed to calculate rates")
			return
		}
		c.exportSheets(w, r, view.Projector.Grid(metric))
		return
	}

	page := templates.MatrixPage{
		WeeklyCharges: weeklyCharges,
		Grid:          view.Projector.Grid(metric),
	}
	if view.UsedSample {
		page.Notice = sampleNotice
	}

	var buf strings.Builder
	if err := c.renderer.Render(&buf, templates.PageMatrix, page); err != nil {
		c.logger.Errorf("❌ Export: rendering HTML for contract=%s version=%s: %v", contractID, versionID, err)
		http.Error(w, "Failed to render grid", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(buf.String()))
}

func (c *ExportController) exportBinary(
	w http.ResponseWriter,
	r *http.Request,
	contentType, ext string,
	query url.Values,
	generate func(renderURL string) ([]byte, error),
) {
	contractID := r.PathValue("contractID")
	versionID := r.PathValue("versionID")

	renderURL := c.exporter.RenderURL(contractID, versionID, query)
	data, err := generate(renderURL)
	if err != nil {
		c.logger.Errorf("❌ Export: %s for contract=%s version=%s: %v", ext, contractID, versionID, err)
		http.Error(w, "Failed to generate "+strings.ToUpper(ext), http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	fileName := utils.ExportFileName(ext, "rates", q.Get("service"), string(ratematrix.ParseMetric(q.Get("metric"))))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (c *ExportController) exportSheets(w http.ResponseWriter, r *http.Request, grid ratematrix.Grid) {
	link, err := c.sheets.ExportGrid(r.Context(), grid)
	if err != nil {
		c.logger.Errorf("❌ Export: sheets: %v", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to export to Google Sheets")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Grid exported to Google Sheets",
		"url":     link,
		"sheet":   service.SheetTitle(grid),
	})
}
