package service

import (
	"context"
	"net/url"
)

// ExportServiceInterface defines the contract for grid export operations
type ExportServiceInterface interface {
	RenderURL(contractID, versionID string, query url.Values) string
	GeneratePDF(ctx context.Context, renderURL string) ([]byte, error)
	GeneratePNG(ctx context.Context, renderURL string) ([]byte, error)
}
