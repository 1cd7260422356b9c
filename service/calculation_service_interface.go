package service

import "context"

// CalculationServiceInterface defines the contract for rate calculation operations
type CalculationServiceInterface interface {
	Calculate(ctx context.Context, versionID, weeklyPrice string) (*CalculationResult, error)
	BuildMatrix(ctx context.Context, versionID, weeklyPrice, service string) (*MatrixView, error)
}
