package router

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"carrier-contracts/app/controller"
)

type Controllers struct {
	Page      *controller.PageController
	Contract  *controller.ContractController
	Calculate *controller.CalculateController
	Export    *controller.ExportController
	Import    *controller.ImportController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every route on a new mux and wraps it with request logging
func SetupRoutes(controllers *Controllers, logger *zap.SugaredLogger) http.Handler {
	mux := http.NewServeMux()

	// Ping endpoint
	mux.HandleFunc("GET /ping", pingHandler)

	// Pages
	mux.HandleFunc("GET /{$}", controllers.Page.Home)
	mux.HandleFunc("POST /upload", controllers.Page.UploadForm)
	mux.HandleFunc("GET /contract/{contractID}/version/{versionID}", controllers.Page.Viewer)
	mux.HandleFunc("GET /contract/{contractID}/version/{versionID}/calculate", controllers.Page.Calculator)
	mux.HandleFunc("GET /contract/{contractID}/version/{versionID}/calculate/export", controllers.Export.Export)

	// JSON proxy routes
	mux.HandleFunc("GET /api/contracts", controllers.Contract.ListContracts)
	mux.HandleFunc("GET /api/contract/{id}/version/{versionId}", controllers.Contract.GetContractVersion)
	mux.HandleFunc("POST /api/upload", controllers.Contract.Upload)
	mux.HandleFunc("POST /api/contract/{id}/version", controllers.Contract.CreateVersion)
	mux.HandleFunc("POST /api/contract/{id}/calculate", controllers.Calculate.Calculate)
	mux.HandleFunc("GET /api/contract/{id}/matrix", controllers.Calculate.Matrix)
	mux.HandleFunc("POST /api/contract/{id}/download", controllers.Calculate.Download)

	// Admin
	mux.HandleFunc("POST /admin/contracts/import-drive", controllers.Import.ImportFromDrive)

	return logRequests(mux, logger)
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler, logger *zap.SugaredLogger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
