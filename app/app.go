package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"carrier-contracts/app/controller"
	"carrier-contracts/app/router"
	"carrier-contracts/config"
	"carrier-contracts/ratematrix"
	"carrier-contracts/repository"
	"carrier-contracts/service"
	"carrier-contracts/templates"
)

// App holds the wired dependencies of the HTTP service
type App struct {
	Config     *config.Config
	Repository *repository.ContractRepository
	Handler    http.Handler
}

// NewRepository builds the backend client used by the server and the CLI
func NewRepository(cfg *config.Config, logger *zap.SugaredLogger) *repository.ContractRepository {
	client := &http.Client{Timeout: cfg.RequestTimeout}
	return repository.NewContractRepository(cfg.APIURL, client, logger)
}

// NewImportService builds the Drive import service.
// Returns nil without error when no Google credentials are configured.
func NewImportService(ctx context.Context, cfg *config.Config, repo repository.ContractRepositoryInterface, logger *zap.SugaredLogger) (*service.ImportService, error) {
	if cfg.GoogleCredentialsPath == "" {
		return nil, nil
	}

	driveService, err := service.NewDriveService(ctx, cfg.GoogleCredentialsPath, logger)
	if err != nil {
		return nil, err
	}
	return service.NewImportService(driveService, repo, cfg.ImportConcurrency, logger), nil
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	renderer, err := templates.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	repo := NewRepository(cfg, logger)
	options := cfg.MatrixOptions()

	calculations := service.NewCalculationService(repo, options, cfg.FallbackSample, logger)
	exporter := service.NewExportService(cfg.BaseURL, cfg.ChromePath, logger)

	// Google integrations are optional; their routes answer 503 when unset
	var sheets service.SheetsServiceInterface
	if cfg.GoogleCredentialsPath != "" && cfg.SheetsSpreadsheetID != "" {
		sheetsService, err := service.NewSheetsService(ctx, cfg.GoogleCredentialsPath, cfg.SheetsSpreadsheetID, logger)
		if err != nil {
			return nil, err
		}
		sheets = sheetsService
	} else {
		logger.Infof("ℹ️  Sheets export disabled (GOOGLE_APPLICATION_CREDENTIALS or SHEETS_SPREADSHEET_ID not set)")
	}

	var importer service.ImportServiceInterface
	importService, err := NewImportService(ctx, cfg, repo, logger)
	if err != nil {
		return nil, err
	}
	if importService != nil {
		importer = importService
	} else {
		logger.Infof("ℹ️  Drive import disabled (GOOGLE_APPLICATION_CREDENTIALS not set)")
	}

	controllers := &router.Controllers{
		Page:      controller.NewPageController(repo, calculations, renderer, ratematrix.DisplayMode(cfg.DisplayMode), logger),
		Contract:  controller.NewContractController(repo, logger),
		Calculate: controller.NewCalculateController(repo, options, logger),
		Export:    controller.NewExportController(calculations, exporter, sheets, renderer, logger),
		Import:    controller.NewImportController(importer, cfg.DriveFolderID, logger),
	}

	return &App{
		Config:     cfg,
		Repository: repo,
		Handler:    router.SetupRoutes(controllers, logger),
	}, nil
}
