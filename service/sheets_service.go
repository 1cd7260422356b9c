package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"carrier-contracts/ratematrix"
)

// Sheet titles are limited to 100 characters by the Sheets API
const maxSheetTitle = 100

// SheetsService writes projected grids into a Google spreadsheet, one tab per service and metric
type SheetsService struct {
	client        *sheets.Service
	spreadsheetID string
	logger        *zap.SugaredLogger
}

// NewSheetsService creates a SheetsService authenticated with a Service Account JSON file
func NewSheetsService(ctx context.Context, credentialsPath, spreadsheetID string, logger *zap.SugaredLogger) (*SheetsService, error) {
	return NewSheetsServiceWithOptions(ctx, spreadsheetID, logger,
		option.WithCredentialsFile(credentialsPath), option.WithScopes(sheets.SpreadsheetsScope))
}

// NewSheetsServiceWithOptions creates a SheetsService from raw client options
func NewSheetsServiceWithOptions(ctx context.Context, spreadsheetID string, logger *zap.SugaredLogger, opts ...option.ClientOption) (*SheetsService, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}

	client, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsService{
		client:        client,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}, nil
}

// Ensure SheetsService implements SheetsServiceInterface
var _ SheetsServiceInterface = (*SheetsService)(nil)

// ExportGrid writes grid into its own tab, replacing previous content.
// Returns the URL of the written tab.
func (s *SheetsService) ExportGrid(ctx context.Context, grid ratematrix.Grid) (string, error) {
	title := SheetTitle(grid)

	sheetID, err := s.ensureSheet(ctx, title)
	if err != nil {
		return "", err
	}

	quoted := "'" + strings.ReplaceAll(title, "'", "''") + "'"
	if _, err := s.client.Spreadsheets.Values.Clear(s.spreadsheetID, quoted, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to clear sheet %q: %w", title, err)
	}

	valueRange := &sheets.ValueRange{
		Range:  quoted + "!A1",
		Values: gridValues(grid),
	}
	if _, err := s.client.Spreadsheets.Values.Update(s.spreadsheetID, quoted+"!A1", valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do(); err != nil {
		return "", fmt.Errorf("failed to write sheet %q: %w", title, err)
	}

	if err := s.formatSheet(ctx, sheetID, grid); err != nil {
		// Values are written at this point, formatting errors are only logged.
		s.logger.Warnf("⚠️  ExportGrid: failed to format sheet %q: %v", title, err)
	}

	s.logger.Infof("✅ ExportGrid: wrote %d rows to sheet %q", len(grid.Rows), title)
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit#gid=%d", s.spreadsheetID, sheetID), nil
}

// ensureSheet returns the id of the tab named title, creating it when missing
func (s *SheetsService) ensureSheet(ctx context.Context, title string) (int64, error) {
	spreadsheet, err := s.client.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to access spreadsheet: %w", err)
	}

	for _, sh := range spreadsheet.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return sh.Properties.SheetId, nil
		}
	}

	resp, err := s.client.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to add sheet %q: %w", title, err)
	}

	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return 0, fmt.Errorf("failed to add sheet %q: empty reply", title)
	}
	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

// formatSheet bolds the header row, shades floor-bound cells and freezes the axes
func (s *SheetsService) formatSheet(ctx context.Context, sheetID int64, grid ratematrix.Grid) error {
	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:       sheetID,
					StartRowIndex: 0,
					EndRowIndex:   1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true},
					},
				},
				Fields: "userEnteredFormat.textFormat.bold",
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: sheetID,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount:    1,
						FrozenColumnCount: 1,
					},
				},
				Fields: "gridProperties.frozenRowCount,gridProperties.frozenColumnCount",
			},
		},
	}

	for r, row := range grid.Rows {
		for c, cell := range row.Cells {
			if !cell.FloorBound() {
				continue
			}
			requests = append(requests, &sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:          sheetID,
						StartRowIndex:    int64(r + 1),
						EndRowIndex:      int64(r + 2),
						StartColumnIndex: int64(c + 1),
						EndColumnIndex:   int64(c + 2),
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							BackgroundColor: &sheets.Color{Red: 0.99, Green: 0.95, Blue: 0.78},
						},
					},
					Fields: "userEnteredFormat.backgroundColor",
				},
			})
		}
	}

	_, err := s.client.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return err
}

// SheetTitle names the tab of a grid: "<service> - <metric label>"
func SheetTitle(grid ratematrix.Grid) string {
	service := grid.Service
	if service == "" {
		service = "No service"
	}
	title := fmt.Sprintf("%s - %s", service, grid.Label)
	// Characters rejected in sheet names
	title = strings.NewReplacer("[", "(", "]", ")", "*", "", "?", "", "/", "-", "\\", "-", ":", " ").Replace(title)
	if runes := []rune(title); len(runes) > maxSheetTitle {
		title = string(runes[:maxSheetTitle])
	}
	return title
}

func gridValues(grid ratematrix.Grid) [][]interface{} {
	table := grid.Table()
	values := make([][]interface{}, len(table))
	for i, row := range table {
		values[i] = make([]interface{}, len(row))
		for j, v := range row {
			values[i][j] = v
		}
	}
	return values
}
