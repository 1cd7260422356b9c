package service

import (
	"context"

	"carrier-contracts/ratematrix"
)

// SheetsServiceInterface defines the contract for spreadsheet export operations
type SheetsServiceInterface interface {
	ExportGrid(ctx context.Context, grid ratematrix.Grid) (string, error)
}
