package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"carrier-contracts/models"
)

var (
	// ErrBackendStatus is matched by every non-2xx backend response
	ErrBackendStatus = errors.New("backend returned an error status")
	// ErrInvalidResponse is returned when a response body does not have the expected shape
	ErrInvalidResponse = errors.New("invalid response format")
)

// StatusError carries the status of a failed backend call
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// Is makes errors.Is(err, ErrBackendStatus) match any StatusError
func (e *StatusError) Is(target error) bool {
	return target == ErrBackendStatus
}

// ContractRepository talks to the contract backend over HTTP
type ContractRepository struct {
	baseURL string
	client  *http.Client
	logger  *zap.SugaredLogger
}

// NewContractRepository creates a new ContractRepository.
// baseURL is the backend root, e.g. "http://localhost:8000".
func NewContractRepository(baseURL string, client *http.Client, logger *zap.SugaredLogger) *ContractRepository {
	if client == nil {
		client = http.DefaultClient
	}
	return &ContractRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// Ensure ContractRepository implements ContractRepositoryInterface
var _ ContractRepositoryInterface = (*ContractRepository)(nil)

// apiURL joins a backend path onto the base URL without doubling slashes
func (r *ContractRepository) apiURL(path string) string {
	return r.baseURL + "/" + strings.TrimPrefix(path, "/")
}

// ListContracts retrieves every uploaded contract
func (r *ContractRepository) ListContracts(ctx context.Context) ([]models.Contract, error) {
	apiURL := r.apiURL("api/v1/contract/list")
	r.logger.Debugf("🔍 ListContracts: Fetching contracts from %s", apiURL)

	var resp models.ContractListResponse
	if err := r.getJSON(ctx, apiURL, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch contracts: %w", err)
	}

	if !resp.Success {
		return nil, fmt.Errorf("failed to fetch contracts: %w", ErrInvalidResponse)
	}

	return resp.Data.Contracts, nil
}

// GetContractVersion retrieves the parsed tables of one contract version
func (r *ContractRepository) GetContractVersion(ctx context.Context, contractID, versionID string) (*models.ContractVersion, error) {
	apiURL := r.apiURL(fmt.Sprintf("api/v1/contract/%s/version/%s", url.PathEscape(contractID), url.PathEscape(versionID)))
	r.logger.Debugf("🔍 GetContractVersion: Fetching contract version from %s", apiURL)

	var resp models.ContractVersionResponse
	if err := r.getJSON(ctx, apiURL, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch contract version: %w", err)
	}

	if !resp.Success || resp.Data == nil {
		return nil, fmt.Errorf("failed to fetch contract version: %w", ErrInvalidResponse)
	}

	return resp.Data, nil
}

// Calculate asks the backend to project the discounts of a version for a weekly spend
func (r *ContractRepository) Calculate(ctx context.Context, versionID string, weeklyPrice string) (models.DiscountCard, error) {
	apiURL := r.apiURL(fmt.Sprintf("api/v1/contract/calculate/%s", url.PathEscape(versionID)))
	r.logger.Debugf("🧮 Calculate: POST %s weekly_price=%s", apiURL, weeklyPrice)

	var resp models.CalculateResponse
	if err := r.postJSON(ctx, apiURL, models.CalculateRequest{WeeklyPrice: weeklyPrice}, &resp); err != nil {
		return nil, fmt.Errorf("failed to calculate rates: %w", err)
	}

	return resp.DiscountCard, nil
}

// CalculateRaw forwards a calculate request and returns the backend JSON untouched
func (r *ContractRepository) CalculateRaw(ctx context.Context, versionID string, weeklyPrice string) (json.RawMessage, error) {
	apiURL := r.apiURL(fmt.Sprintf("api/v1/contract/calculate/%s", url.PathEscape(versionID)))

	var raw json.RawMessage
	if err := r.postJSON(ctx, apiURL, models.CalculateRequest{WeeklyPrice: weeklyPrice}, &raw); err != nil {
		return nil, fmt.Errorf("failed to calculate rates: %w", err)
	}
	return raw, nil
}

// Upload forwards a contract document to the backend as multipart field "file"
func (r *ContractRepository) Upload(ctx context.Context, fileName string, content io.Reader) (*models.UploadResponse, error) {
	apiURL := r.apiURL("api/v1/contract/upload")
	r.logger.Infof("📤 Upload: Uploading contract %s to %s", fileName, apiURL)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to copy contract content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp models.UploadResponse
	if err := r.do(req, &resp); err != nil {
		return nil, fmt.Errorf("failed to upload contract: %w", err)
	}

	if !resp.Success {
		message := resp.Message
		if message == "" {
			message = "Upload failed"
		}
		return &resp, fmt.Errorf("failed to upload contract: %s", message)
	}

	return &resp, nil
}

// CreateVersion saves edited contract data as a new version
func (r *ContractRepository) CreateVersion(ctx context.Context, contractID string, req models.CreateVersionRequest) (*models.UploadResponse, error) {
	apiURL := r.apiURL(fmt.Sprintf("api/v1/contract/%s/version", url.PathEscape(contractID)))
	r.logger.Infof("📝 CreateVersion: contract=%s version_name=%s", contractID, req.VersionName)

	var resp models.UploadResponse
	if err := r.postJSON(ctx, apiURL, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to save contract: %w", err)
	}

	if !resp.Success {
		return &resp, fmt.Errorf("failed to save contract: %s", resp.Message)
	}

	return &resp, nil
}

// DownloadSpreadsheet retrieves the backend spreadsheet for a version.
// The caller must close the returned body.
func (r *ContractRepository) DownloadSpreadsheet(ctx context.Context, versionID string, req models.DownloadRequest) (*Download, error) {
	apiURL := r.apiURL(fmt.Sprintf("api/v1/contract/download/%s", url.PathEscape(versionID)))
	r.logger.Infof("📥 DownloadSpreadsheet: POST %s weekly_spend=%v", apiURL, req.WeeklySpend)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode download request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to download spreadsheet: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, fmt.Errorf("failed to download spreadsheet: %w", statusError(resp))
	}

	return &Download{
		Body:               resp.Body,
		ContentType:        resp.Header.Get("Content-Type"),
		ContentDisposition: resp.Header.Get("Content-Disposition"),
	}, nil
}

func (r *ContractRepository) getJSON(ctx context.Context, apiURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return r.do(req, out)
}

func (r *ContractRepository) postJSON(ctx context.Context, apiURL string, in interface{}, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return r.do(req, out)
}

// do executes req and decodes a 2xx JSON body into out
func (r *ContractRepository) do(req *http.Request, out interface{}) error {
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := statusError(resp)
		r.logger.Errorf("❌ %s %s: %d %s", req.Method, req.URL.Path, statusErr.StatusCode, statusErr.Status)
		return statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func statusError(resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}
