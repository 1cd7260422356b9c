package service

import (
	"context"
	"io"

	"carrier-contracts/models"
)

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListContractFiles(ctx context.Context, folderID string) ([]models.DriveFile, error)
	DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, error)
}
