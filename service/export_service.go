package service

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	exportTimeout = 45 * time.Second
	// matrixSelector wraps the grid in the standalone export page
	matrixSelector = "#rate-matrix"
)

// ExportService turns the standalone grid page into PDF or PNG with headless Chrome
type ExportService struct {
	baseURL    string // Base URL this service is reachable on (e.g., "http://localhost:8080")
	chromePath string
	logger     *zap.SugaredLogger
}

// NewExportService creates a new ExportService.
// chromePath may be empty, in which case common install locations are probed.
func NewExportService(baseURL, chromePath string, logger *zap.SugaredLogger) *ExportService {
	return &ExportService{
		baseURL:    baseURL,
		chromePath: chromePath,
		logger:     logger,
	}
}

// Ensure ExportService implements ExportServiceInterface
var _ ExportServiceInterface = (*ExportService)(nil)

// detectChromePath returns the configured Chrome path when it exists,
// otherwise the first common Chrome/Chromium installation found.
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// RenderURL is the address of the standalone HTML grid that the browser loads.
// query carries weeklyCharges, service and metric.
func (s *ExportService) RenderURL(contractID, versionID string, query url.Values) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("format", "html")
	return fmt.Sprintf("%s/contract/%s/version/%s/calculate/export?%s",
		s.baseURL, url.PathEscape(contractID), url.PathEscape(versionID), q.Encode())
}

// browser starts a headless Chrome bound to ctx
func (s *ExportService) browser(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	} else {
		s.logger.Warnf("⚠️  Export: no Chrome binary found, letting chromedp auto-detect")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	return browserCtx, func() {
		browserCancel()
		allocCancel()
	}
}

// GeneratePDF prints the grid page to a landscape PDF
func (s *ExportService) GeneratePDF(ctx context.Context, renderURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	browserCtx, closeBrowser := s.browser(ctx)
	defer closeBrowser()

	s.logger.Infof("🖨️  GeneratePDF: rendering %s", renderURL)

	var pdfBuf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(1280, 900),
		chromedp.Navigate(renderURL),
		chromedp.WaitVisible(matrixSelector, chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// US Letter, landscape
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(true).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	s.logger.Infof("✅ GeneratePDF: %d bytes", len(pdfBuf))
	return pdfBuf, nil
}

// GeneratePNG screenshots the grid element and scales it down to maxSnapshotWidth
func (s *ExportService) GeneratePNG(ctx context.Context, renderURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	browserCtx, closeBrowser := s.browser(ctx)
	defer closeBrowser()

	s.logger.Infof("📸 GeneratePNG: rendering %s", renderURL)

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(1280, 900, chromedp.EmulateScale(snapshotScale)),
		chromedp.Navigate(renderURL),
		chromedp.WaitVisible(matrixSelector, chromedp.ByQuery),
		chromedp.Screenshot(matrixSelector, &buf, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("failed to capture screenshot: empty image")
	}

	resized, err := ResizeSnapshot(buf, maxSnapshotWidth)
	if err != nil {
		return nil, err
	}

	s.logger.Infof("✅ GeneratePNG: %d bytes (raw %d)", len(resized), len(buf))
	return resized, nil
}
