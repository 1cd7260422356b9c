package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"carrier-contracts/models"
)

const pdfMimeType = "application/pdf"

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
	logger *zap.SugaredLogger
}

// NewDriveService creates a new DriveService instance.
// credentialsPath should be the path to the Service Account JSON file.
func NewDriveService(ctx context.Context, credentialsPath string, logger *zap.SugaredLogger) (*DriveService, error) {
	return NewDriveServiceWithOptions(ctx, logger, option.WithCredentialsFile(credentialsPath), option.WithScopes(drive.DriveReadonlyScope))
}

// NewDriveServiceWithOptions creates a DriveService from raw client options
func NewDriveServiceWithOptions(ctx context.Context, logger *zap.SugaredLogger, opts ...option.ClientOption) (*DriveService, error) {
	client, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: client,
		logger: logger,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// ListContractFiles lists every PDF in a Google Drive folder
func (ds *DriveService) ListContractFiles(ctx context.Context, folderID string) ([]models.DriveFile, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", strings.ReplaceAll(folderID, "'", "\\'"))

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType, size, modifiedTime)").
			Context(ctx)

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken

		if pageToken == "" {
			break
		}
	}

	var files []models.DriveFile
	for _, file := range allFiles {
		if !isContractDocument(file) {
			ds.logger.Debugf("⏭️  ListContractFiles: skipping %s (%s)", file.Name, file.MimeType)
			continue
		}
		files = append(files, models.DriveFile{
			ID:           file.Id,
			Name:         file.Name,
			MimeType:     file.MimeType,
			Size:         file.Size,
			ModifiedTime: file.ModifiedTime,
		})
	}

	ds.logger.Infof("📦 ListContractFiles: %d contract PDFs in folder %s (%d files seen)", len(files), folderID, len(allFiles))
	return files, nil
}

// DownloadFile streams the content of a Drive file. The caller must close it.
func (ds *DriveService) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, error) {
	resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	return resp.Body, nil
}

func isContractDocument(file *drive.File) bool {
	if strings.EqualFold(file.MimeType, pdfMimeType) {
		return true
	}
	return strings.HasSuffix(strings.ToLower(file.Name), ".pdf")
}
