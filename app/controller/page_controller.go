package controller

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"carrier-contracts/ratematrix"
	"carrier-contracts/repository"
	"carrier-contracts/service"
	"carrier-contracts/templates"
)

// PageController serves the server-rendered contract pages
type PageController struct {
	repository   repository.ContractRepositoryInterface
	calculations service.CalculationServiceInterface
	renderer     *templates.Renderer
	displayMode  ratematrix.DisplayMode
	logger       *zap.SugaredLogger
}

// NewPageController creates a new PageController
func NewPageController(
	repo repository.ContractRepositoryInterface,
	calculations service.CalculationServiceInterface,
	renderer *templates.Renderer,
	displayMode ratematrix.DisplayMode,
	logger *zap.SugaredLogger,
) *PageController {
	return &PageController{
		repository:   repo,
		calculations: calculations,
		renderer:     renderer,
		displayMode:  displayMode,
		logger:       logger,
	}
}

func (c *PageController) render(w http.ResponseWriter, status int, page string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var buf strings.Builder
	if err := c.renderer.Render(&buf, page, data); err != nil {
		c.logger.Errorf("❌ render %s: %v", page, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

// Home handles GET /
func (c *PageController) Home(w http.ResponseWriter, r *http.Request) {
	page := templates.HomePage{}
	if name := r.URL.Query().Get("uploaded"); name != "" {
		page.Notice = fmt.Sprintf("%s uploaded successfully", name)
	}

	contracts, err := c.repository.ListContracts(r.Context())
	if err != nil {
		c.logger.Errorf("❌ Home: %v", err)
		page.Error = "Failed to fetch contracts"
	}
	page.Contracts = contracts

	c.render(w, http.StatusOK, templates.PageHome, page)
}

// UploadForm handles POST /upload from the home page form
func (c *PageController) UploadForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		c.logger.Warnf("⚠️  UploadForm: no file in request: %v", err)
		c.renderHomeError(w, r, http.StatusBadRequest, "Please choose a contract PDF to upload")
		return
	}
	defer file.Close()

	if _, err := c.repository.Upload(r.Context(), header.Filename, file); err != nil {
		c.logger.Errorf("❌ UploadForm: %s: %v", header.Filename, err)
		c.renderHomeError(w, r, http.StatusInternalServerError, "Failed to upload contract")
		return
	}

	c.logger.Infof("✅ UploadForm: uploaded %s", header.Filename)
	http.Redirect(w, r, "/?"+url.Values{"uploaded": {header.Filename}}.Encode(), http.StatusSeeOther)
}

func (c *PageController) renderHomeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	page := templates.HomePage{Page: templates.Page{Error: message}}
	if contracts, err := c.repository.ListContracts(r.Context()); err == nil {
		page.Contracts = contracts
	}
	c.render(w, status, templates.PageHome, page)
}

// Viewer handles GET /contract/{contractID}/version/{versionID}?table=&service=&weeklyCharges=
func (c *PageController) Viewer(w http.ResponseWriter, r *http.Request) {
	contractID := r.PathValue("contractID")
	versionID := r.PathValue("versionID")
	query := r.URL.Query()

	page := templates.ViewerPage{
		ContractID:    contractID,
		VersionID:     versionID,
		WeeklyCharges: strings.TrimSpace(query.Get("weeklyCharges")),
	}

	version, err := c.repository.GetContractVersion(r.Context(), contractID, versionID)
	if err != nil {
		c.logger.Errorf("❌ Viewer: contract=%s version=%s: %v", contractID, versionID, err)
		page.Error = "Failed to fetch contract details"
		c.render(w, http.StatusInternalServerError, templates.PageViewer, page)
		return
	}
	page.Version = version

	page.Table = ratematrix.BuildTableView(version, query.Get("table"), query.Get("service"), c.displayMode)
	for _, key := range ratematrix.TableKeys(version) {
		page.Tables = append(page.Tables, templates.TableOption{
			Key:      key,
			Title:    ratematrix.TableTitle(version, key),
			Selected: key == page.Table.Key,
		})
	}

	c.render(w, http.StatusOK, templates.PageViewer, page)
}

// Calculator handles GET /contract/{contractID}/version/{versionID}/calculate?weeklyCharges=&service=&metric=
func (c *PageController) Calculator(w http.ResponseWriter, r *http.Request) {
	contractID := r.PathValue("contractID")
	versionID := r.PathValue("versionID")
	query := r.URL.Query()

	if strings.TrimSpace(query.Get("weeklyCharges")) == "" {
		http.Redirect(w, r, viewerURL(contractID, versionID, ""), http.StatusSeeOther)
		return
	}

	metric := ratematrix.ParseMetric(query.Get("metric"))
	page := templates.CalculatorPage{
		ContractID:    contractID,
		VersionID:     versionID,
		WeeklyCharges: strings.TrimSpace(query.Get("weeklyCharges")),
		Metric:        metric,
		Grid:          ratematrix.Grid{Metric: metric, Label: metric.Label()},
	}

	weeklyCharges, _, err := parseWeeklyCharges(query.Get("weeklyCharges"))
	if err != nil {
		page.Error = err.Error()
		c.render(w, http.StatusBadRequest, templates.PageCalculate, page)
		return
	}

	view, err := c.calculations.BuildMatrix(r.Context(), versionID, weeklyCharges, query.Get("service"))
	if err != nil {
		c.logger.Errorf("❌ Calculator: version=%s: %v", versionID, err)
		page.Error = "Failed to calculate rates"
		c.render(w, http.StatusInternalServerError, templates.PageCalculate, page)
		return
	}

	if view.UsedSample {
		page.Notice = sampleNotice
	}
	page.Services = view.Services
	page.SelectedService = view.SelectedService
	page.Grid = view.Projector.Grid(metric)

	base := url.Values{}
	base.Set("weeklyCharges", weeklyCharges)
	if view.SelectedService != "" {
		base.Set("service", view.SelectedService)
	}

	for _, m := range ratematrix.Metrics {
		q := cloneValues(base)
		q.Set("metric", string(m))
		page.Tabs = append(page.Tabs, templates.Link{
			Label:  m.Label(),
			URL:    calculatorURL(contractID, versionID, q),
			Active: m == metric,
		})
	}

	for _, format := range exportFormats {
		q := cloneValues(base)
		q.Set("metric", string(metric))
		q.Set("format", format.Name)
		page.Exports = append(page.Exports, templates.Link{
			Label: format.Label,
			URL:   calculatorURL(contractID, versionID, nil) + "/export?" + q.Encode(),
		})
	}

	c.render(w, http.StatusOK, templates.PageCalculate, page)
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
