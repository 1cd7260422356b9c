package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"carrier-contracts/logging"
	"carrier-contracts/models"
	"carrier-contracts/ratematrix"
	"carrier-contracts/repository"
	"carrier-contracts/service"
	"carrier-contracts/templates"
)

var errBackendDown = errors.New("dial tcp 127.0.0.1:8000: connection refused")

type fakeRepository struct {
	contracts   []models.Contract
	version     *models.ContractVersion
	card        models.DiscountCard
	raw         json.RawMessage
	download    *repository.Download
	err         error
	uploadName  string
	uploadBody  string
	weeklyPrice string
	created     *models.CreateVersionRequest
}

var _ repository.ContractRepositoryInterface = (*fakeRepository)(nil)

func (f *fakeRepository) ListContracts(ctx context.Context) ([]models.Contract, error) {
	return f.contracts, f.err
}

func (f *fakeRepository) GetContractVersion(ctx context.Context, contractID, versionID string) (*models.ContractVersion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.version, nil
}

func (f *fakeRepository) Calculate(ctx context.Context, versionID, weeklyPrice string) (models.DiscountCard, error) {
	f.weeklyPrice = weeklyPrice
	return f.card, f.err
}

func (f *fakeRepository) CalculateRaw(ctx context.Context, versionID, weeklyPrice string) (json.RawMessage, error) {
	f.weeklyPrice = weeklyPrice
	return f.raw, f.err
}

func (f *fakeRepository) Upload(ctx context.Context, fileName string, content io.Reader) (*models.UploadResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, _ := io.ReadAll(content)
	f.uploadName = fileName
	f.uploadBody = string(data)
	return &models.UploadResponse{Success: true, Message: "uploaded"}, nil
}

func (f *fakeRepository) CreateVersion(ctx context.Context, contractID string, req models.CreateVersionRequest) (*models.UploadResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &req
	return &models.UploadResponse{Success: true, Message: "saved"}, nil
}

func (f *fakeRepository) DownloadSpreadsheet(ctx context.Context, versionID string, req models.DownloadRequest) (*repository.Download, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.download, nil
}

type fakeExporter struct {
	renderURL string
	err       error
}

func (f *fakeExporter) RenderURL(contractID, versionID string, query url.Values) string {
	return "http://localhost:8080/contract/" + contractID + "/version/" + versionID + "/calculate/export?format=html"
}

func (f *fakeExporter) GeneratePDF(ctx context.Context, renderURL string) ([]byte, error) {
	f.renderURL = renderURL
	return []byte("%PDF-1.4"), f.err
}

func (f *fakeExporter) GeneratePNG(ctx context.Context, renderURL string) ([]byte, error) {
	f.renderURL = renderURL
	return []byte("\x89PNG"), f.err
}

type fakeSheets struct {
	grid ratematrix.Grid
	err  error
}

func (f *fakeSheets) ExportGrid(ctx context.Context, grid ratematrix.Grid) (string, error) {
	f.grid = grid
	return "https://docs.google.com/spreadsheets/d/s/edit#gid=1", f.err
}

type fakeImporter struct {
	folderID string
	err      error
}

func (f *fakeImporter) ImportFromDrive(ctx context.Context, folderID string) (*models.ImportResult, error) {
	f.folderID = folderID
	if f.err != nil {
		return nil, f.err
	}
	return &models.ImportResult{FolderID: folderID, Total: 2, Imported: 1, Skipped: 1}, nil
}

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func testCard() models.DiscountCard {
	return models.DiscountCard{
		{
			Service: "Ground",
			DiscountsDatas: []models.DiscountRecord{
				{Weight: "1-5", Zone: "2", TotalDiscount: nd("30"), FinalRate: nd("9.12"), IsMinimum: true},
				{Weight: "1-5", Zone: "3", TotalDiscount: nd("25"), FinalRate: nd("10.50")},
			},
		},
		{
			Service: "Air",
			DiscountsDatas: []models.DiscountRecord{
				{Weight: "Letter", Zone: "102", TotalDiscount: nd("40"), FinalRate: nd("21.40")},
			},
		},
	}
}

func testVersion() *models.ContractVersion {
	return &models.ContractVersion{
		ContractID: 7,
		VersionID:  3,
		Carrier:    "UPS",
		Tables: map[string]models.ContractTable{
			"tier_discount": {
				Title: "Portfolio Tier Incentive",
				TableData: models.TableData{
					Headers: []string{"service", "tier"},
					Rows: []map[string]json.RawMessage{
						{"service": json.RawMessage(`"Ground"`), "tier": json.RawMessage(`["A", "B"]`)},
						{"service": json.RawMessage(`"Air"`), "tier": json.RawMessage(`null`)},
					},
				},
			},
			"eligible_accounts": {
				Title:     "Eligible Accounts",
				TableData: models.TableData{Headers: []string{"account"}},
			},
		},
	}
}

func newRenderer(t *testing.T) *templates.Renderer {
	t.Helper()
	r, err := templates.New()
	require.NoError(t, err)
	return r
}

func newCalculations(repo *fakeRepository, fallback bool) *service.CalculationService {
	return service.NewCalculationService(repo, ratematrix.DefaultOptions(), fallback, logging.Nop())
}

func decodeJSON(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}
