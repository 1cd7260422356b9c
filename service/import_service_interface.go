package service

import (
	"context"

	"carrier-contracts/models"
)

// ImportServiceInterface defines the contract for Drive import operations
type ImportServiceInterface interface {
	// ImportFromDrive uploads the folder's contract PDFs that are not in the backend yet
	ImportFromDrive(ctx context.Context, folderID string) (*models.ImportResult, error)
}
