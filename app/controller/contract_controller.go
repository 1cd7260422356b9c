package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"carrier-contracts/models"
	"carrier-contracts/repository"
)

const (
	// maxUploadSize bounds multipart contract uploads
	maxUploadSize             = 32 << 20
	defaultVersionDescription = "Updated contract details"
)

// ContractController proxies contract operations to the backend as JSON
type ContractController struct {
	repository repository.ContractRepositoryInterface
	logger     *zap.SugaredLogger
}

// NewContractController creates a new ContractController
func NewContractController(repo repository.ContractRepositoryInterface, logger *zap.SugaredLogger) *ContractController {
	return &ContractController{
		repository: repo,
		logger:     logger,
	}
}

// ListContracts handles GET /api/contracts
func (c *ContractController) ListContracts(w http.ResponseWriter, r *http.Request) {
	contracts, err := c.repository.ListContracts(r.Context())
	if err != nil {
		c.logger.Errorf("❌ ListContracts: %v", err)
		writeFailure(w, http.StatusInternalServerError, "Failed to fetch contracts")
		return
	}

	resp := models.ContractListResponse{Success: true}
	resp.Data.Contracts = contracts
	if resp.Data.Contracts == nil {
		resp.Data.Contracts = []models.Contract{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetContractVersion handles GET /api/contract/{id}/version/{versionId}
func (c *ContractController) GetContractVersion(w http.ResponseWriter, r *http.Request) {
	contractID := r.PathValue("id")
	versionID := r.PathValue("versionId")

	version, err := c.repository.GetContractVersion(r.Context(), contractID, versionID)
	if err != nil {
		c.logger.Errorf("❌ GetContractVersion: contract=%s version=%s: %v", contractID, versionID, err)
		writeFailure(w, http.StatusInternalServerError, "Failed to fetch contract version")
		return
	}

	writeJSON(w, http.StatusOK, models.ContractVersionResponse{Success: true, Data: version})
}

// Upload handles POST /api/upload (multipart, field "file")
func (c *ContractController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		c.logger.Warnf("⚠️  Upload: no file in request: %v", err)
		writeFailure(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	resp, err := c.repository.Upload(r.Context(), header.Filename, file)
	if err != nil {
		c.logger.Errorf("❌ Upload: %s: %v", header.Filename, err)
		writeFailure(w, http.StatusInternalServerError, "Failed to upload contract")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateVersion handles POST /api/contract/{id}/version.
// Without a version_name the next "v<N>" name is derived from the contract's version count.
func (c *ContractController) CreateVersion(w http.ResponseWriter, r *http.Request) {
	contractID := r.PathValue("id")

	var req models.CreateVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.NewJSON == nil {
		writeFailure(w, http.StatusBadRequest, "new_json is required")
		return
	}

	if req.VersionName == "" {
		name, err := c.nextVersionName(r, contractID)
		if err != nil {
			c.logger.Errorf("❌ CreateVersion: contract=%s: %v", contractID, err)
			writeFailure(w, http.StatusInternalServerError, "Failed to save contract")
			return
		}
		req.VersionName = name
	}
	if req.VersionDescription == "" {
		req.VersionDescription = defaultVersionDescription
	}

	resp, err := c.repository.CreateVersion(r.Context(), contractID, req)
	if err != nil {
		c.logger.Errorf("❌ CreateVersion: contract=%s: %v", contractID, err)
		writeFailure(w, http.StatusInternalServerError, "Failed to save contract")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (c *ContractController) nextVersionName(r *http.Request, contractID string) (string, error) {
	id, err := strconv.ParseInt(contractID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid contract id %q", contractID)
	}

	contracts, err := c.repository.ListContracts(r.Context())
	if err != nil {
		return "", err
	}
	for _, contract := range contracts {
		if contract.ContractID == id {
			return NextVersionName(contract), nil
		}
	}
	return "", fmt.Errorf("contract %d not found", id)
}

// NextVersionName is the name given to the version saved after the contract's latest one
func NextVersionName(contract models.Contract) string {
	return fmt.Sprintf("v%d", contract.VersionsCount+1)
}
