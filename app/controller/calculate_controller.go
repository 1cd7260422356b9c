package controller

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"carrier-contracts/models"
	"carrier-contracts/ratematrix"
	"carrier-contracts/repository"
	"carrier-contracts/service"
	"carrier-contracts/utils"
)

// CalculateController proxies rate calculations and serves projected grids as JSON
type CalculateController struct {
	repository repository.ContractRepositoryInterface
	options    ratematrix.Options
	logger     *zap.SugaredLogger
}

// NewCalculateController creates a new CalculateController
func NewCalculateController(repo repository.ContractRepositoryInterface, options ratematrix.Options, logger *zap.SugaredLogger) *CalculateController {
	return &CalculateController{
		repository: repo,
		options:    options,
		logger:     logger,
	}
}

// calculateBody accepts weekly_price as a JSON string or number
type calculateBody struct {
	WeeklyPrice json.Number `json:"weekly_price"`
}

// MatrixResponse is the JSON form of a projected grid
type MatrixResponse struct {
	Success       bool            `json:"success"`
	WeeklyCharges string          `json:"weekly_charges"`
	Services      []string        `json:"services"`
	Service       string          `json:"service"`
	Metrics       []string        `json:"metrics"`
	Grid          ratematrix.Grid `json:"grid"`
}

// Calculate handles POST /api/contract/{id}/calculate where id is the version id.
// The backend JSON is passed through untouched.
func (c *CalculateController) Calculate(w http.ResponseWriter, r *http.Request) {
	versionID := r.PathValue("id")

	var body calculateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	weeklyPrice, _, err := parseWeeklyCharges(body.WeeklyPrice.String())
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	raw, err := c.repository.CalculateRaw(r.Context(), versionID, weeklyPrice)
	if err != nil {
		c.logger.Errorf("❌ Calculate: version=%s weekly_price=%s: %s", versionID, weeklyPrice, backendDetail(err))
		writeFailure(w, http.StatusInternalServerError, "Failed to calculate rates")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// Matrix handles GET /api/contract/{id}/matrix?weeklyCharges=&service=&metric=
func (c *CalculateController) Matrix(w http.ResponseWriter, r *http.Request) {
	versionID := r.PathValue("id")
	query := r.URL.Query()

	weeklyCharges, _, err := parseWeeklyCharges(query.Get("weeklyCharges"))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	metric := ratematrix.ParseMetric(query.Get("metric"))

	card, err := c.repository.Calculate(r.Context(), versionID, weeklyCharges)
	if err != nil {
		c.logger.Errorf("❌ Matrix: version=%s: %s", versionID, backendDetail(err))
		writeFailure(w, http.StatusInternalServerError, "Failed to calculate rates")
		return
	}

	view := service.ProjectCard(card, query.Get("service"), c.options)

	metrics := make([]string, 0, len(ratematrix.Metrics))
	for _, m := range ratematrix.Metrics {
		metrics = append(metrics, string(m))
	}

	writeJSON(w, http.StatusOK, MatrixResponse{
		Success:       true,
		WeeklyCharges: weeklyCharges,
		Services:      view.Services,
		Service:       view.SelectedService,
		Metrics:       metrics,
		Grid:          view.Projector.Grid(metric),
	})
}

// Download handles POST /api/contract/{id}/download and streams the backend spreadsheet
func (c *CalculateController) Download(w http.ResponseWriter, r *http.Request) {
	versionID := r.PathValue("id")

	var req models.DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.WeeklySpend < 0 {
		writeFailure(w, http.StatusBadRequest, "weekly_spend cannot be negative")
		return
	}

	download, err := c.repository.DownloadSpreadsheet(r.Context(), versionID, req)
	if err != nil {
		c.logger.Errorf("❌ Download: version=%s: %s", versionID, backendDetail(err))
		writeFailure(w, http.StatusInternalServerError, "Failed to download file")
		return
	}
	defer download.Body.Close()

	contentType := download.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if download.ContentDisposition != "" {
		w.Header().Set("Content-Disposition", download.ContentDisposition)
	} else {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
			"filename": utils.ExportFileName("xlsx", "contract-rates", versionID),
		}))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, download.Body); err != nil {
		c.logger.Errorf("❌ Download: streaming version=%s: %v", versionID, err)
	}
}
