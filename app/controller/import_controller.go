package controller

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"carrier-contracts/service"
)

// ImportController handles Google Drive contract imports
type ImportController struct {
	importService   service.ImportServiceInterface // nil when Drive is not configured
	defaultFolderID string
	logger          *zap.SugaredLogger
}

// NewImportController creates a new ImportController. importService may be nil.
func NewImportController(importService service.ImportServiceInterface, defaultFolderID string, logger *zap.SugaredLogger) *ImportController {
	return &ImportController{
		importService:   importService,
		defaultFolderID: defaultFolderID,
		logger:          logger,
	}
}

// ImportFromDrive handles POST /admin/contracts/import-drive?folder_id=
// Uploads every contract PDF of the folder that the backend does not have yet.
func (c *ImportController) ImportFromDrive(w http.ResponseWriter, r *http.Request) {
	if c.importService == nil {
		writeFailure(w, http.StatusServiceUnavailable, "Google Drive import is not configured")
		return
	}

	folderID := strings.TrimSpace(r.URL.Query().Get("folder_id"))
	if folderID == "" {
		folderID = c.defaultFolderID
	}
	if folderID == "" {
		writeFailure(w, http.StatusBadRequest, "folder_id parameter is required")
		return
	}

	result, err := c.importService.ImportFromDrive(r.Context(), folderID)
	if err != nil {
		c.logger.Errorf("❌ ImportFromDrive: folder=%s: %v", folderID, err)
		writeFailure(w, http.StatusInternalServerError, "Failed to import contracts from Drive")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Import completed",
		"result":  result,
	})
}
