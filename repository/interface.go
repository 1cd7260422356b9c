package repository

import (
	"context"
	"encoding/json"
	"io"

	"carrier-contracts/models"
)

// ContractRepositoryInterface defines the contract for backend contract operations
type ContractRepositoryInterface interface {
	ListContracts(ctx context.Context) ([]models.Contract, error)
	GetContractVersion(ctx context.Context, contractID, versionID string) (*models.ContractVersion, error)
	Calculate(ctx context.Context, versionID string, weeklyPrice string) (models.DiscountCard, error)
	CalculateRaw(ctx context.Context, versionID string, weeklyPrice string) (json.RawMessage, error)
	Upload(ctx context.Context, fileName string, content io.Reader) (*models.UploadResponse, error)
	CreateVersion(ctx context.Context, contractID string, req models.CreateVersionRequest) (*models.UploadResponse, error)
	DownloadSpreadsheet(ctx context.Context, versionID string, req models.DownloadRequest) (*Download, error)
}

// Download is a streamed binary response from the backend
type Download struct {
	Body               io.ReadCloser
	ContentType        string
	ContentDisposition string
}
