package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"carrier-contracts/models"
	"carrier-contracts/repository"
)

type fakeRepository struct {
	mu        sync.Mutex
	contracts []models.Contract
	listErr   error
	card      models.DiscountCard
	calcErr   error
	uploadErr map[string]error
	uploaded  map[string]string
}

var _ repository.ContractRepositoryInterface = (*fakeRepository)(nil)

func (f *fakeRepository) ListContracts(ctx context.Context) ([]models.Contract, error) {
	return f.contracts, f.listErr
}

func (f *fakeRepository) GetContractVersion(ctx context.Context, contractID, versionID string) (*models.ContractVersion, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepository) Calculate(ctx context.Context, versionID, weeklyPrice string) (models.DiscountCard, error) {
	return f.card, f.calcErr
}

func (f *fakeRepository) CalculateRaw(ctx context.Context, versionID, weeklyPrice string) (json.RawMessage, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepository) Upload(ctx context.Context, fileName string, content io.Reader) (*models.UploadResponse, error) {
	if err := f.uploadErr[fileName]; err != nil {
		return nil, err
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploaded == nil {
		f.uploaded = map[string]string{}
	}
	f.uploaded[fileName] = string(data)
	return &models.UploadResponse{Success: true}, nil
}

func (f *fakeRepository) CreateVersion(ctx context.Context, contractID string, req models.CreateVersionRequest) (*models.UploadResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepository) DownloadSpreadsheet(ctx context.Context, versionID string, req models.DownloadRequest) (*repository.Download, error) {
	return nil, errors.New("not implemented")
}

type fakeDrive struct {
	files   []models.DriveFile
	content map[string]string
	listErr error
}

var _ DriveServiceInterface = (*fakeDrive)(nil)

func (f *fakeDrive) ListContractFiles(ctx context.Context, folderID string) ([]models.DriveFile, error) {
	return f.files, f.listErr
}

func (f *fakeDrive) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, error) {
	content, ok := f.content[fileID]
	if !ok {
		return nil, fmt.Errorf("file %s not found", fileID)
	}
	return io.NopCloser(bytes.NewBufferString(content)), nil
}
