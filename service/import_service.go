package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"carrier-contracts/models"
	"carrier-contracts/repository"
)

// ImportService copies contract PDFs from Google Drive into the contract backend.
// Implements ImportServiceInterface
type ImportService struct {
	driveService DriveServiceInterface
	repository   repository.ContractRepositoryInterface
	concurrency  int
	logger       *zap.SugaredLogger
}

// NewImportService creates a new ImportService.
// concurrency bounds the number of simultaneous download+upload pairs.
func NewImportService(
	driveService DriveServiceInterface,
	repo repository.ContractRepositoryInterface,
	concurrency int,
	logger *zap.SugaredLogger,
) *ImportService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ImportService{
		driveService: driveService,
		repository:   repo,
		concurrency:  concurrency,
		logger:       logger,
	}
}

// Ensure ImportService implements ImportServiceInterface
var _ ImportServiceInterface = (*ImportService)(nil)

// ImportFromDrive uploads every PDF of folderID that the backend does not know yet.
// Files are matched against existing contracts by file name, case-insensitively.
// Per-file failures are counted in the result; only listing failures abort the run.
func (s *ImportService) ImportFromDrive(ctx context.Context, folderID string) (*models.ImportResult, error) {
	if folderID == "" {
		return nil, fmt.Errorf("drive folder id is required")
	}
	s.logger.Infof("🔄 ImportFromDrive: starting import for folder %s", folderID)

	files, err := s.driveService.ListContractFiles(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contract files from Drive: %w", err)
	}

	contracts, err := s.repository.ListContracts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing contracts: %w", err)
	}

	known := make(map[string]bool, len(contracts))
	for _, c := range contracts {
		if c.ContractFileName != "" {
			known[strings.ToLower(c.ContractFileName)] = true
		}
	}

	result := &models.ImportResult{FolderID: folderID, Total: len(files)}
	var mu sync.Mutex
	fail := func(file models.DriveFile, err error) {
		mu.Lock()
		defer mu.Unlock()
		result.Failed++
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file.Name, err))
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.concurrency)

	for _, file := range files {
		name := strings.ToLower(file.Name)
		if known[name] {
			s.logger.Infof("⏭️  ImportFromDrive: skipping %s (already uploaded)", file.Name)
			result.Skipped++
			continue
		}
		// Two Drive files with the same name import once.
		known[name] = true

		eg.Go(func() error {
			if err := s.importFile(egCtx, file); err != nil {
				s.logger.Errorf("❌ ImportFromDrive: %s: %v", file.Name, err)
				fail(file, err)
				return nil
			}
			mu.Lock()
			result.Imported++
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return result, err
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("import interrupted: %w", err)
	}

	s.logger.Infof("🎉 ImportFromDrive: %d imported, %d skipped, %d failed, %d total",
		result.Imported, result.Skipped, result.Failed, result.Total)
	return result, nil
}

func (s *ImportService) importFile(ctx context.Context, file models.DriveFile) error {
	body, err := s.driveService.DownloadFile(ctx, file.ID)
	if err != nil {
		return err
	}
	defer body.Close()

	if _, err := s.repository.Upload(ctx, file.Name, body); err != nil {
		return err
	}
	s.logger.Infof("✅ ImportFromDrive: uploaded %s (drive_file_id: %s)", file.Name, file.ID)
	return nil
}
