package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tirehaus/arcade/internal/api/handler"
	"github.com/tirehaus/arcade/internal/api/middleware"
	"github.com/tirehaus/arcade/internal/services/auth"
	"github.com/tirehaus/arcade/internal/services/badge"
	"github.com/tirehaus/arcade/internal/services/contact"
	"github.com/tirehaus/arcade/internal/services/dashboard"
	"github.com/tirehaus/arcade/internal/services/entry"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	AuthService      *auth.Service
	EntryController  *entry.Controller
	DashboardService *dashboard.Service
	BadgeService     *badge.Service
	ContactService   *contact.Service
	// MediaDir, when non-empty, is served under /media/ for stored
	// score photos
	MediaDir string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	entryHandler := handler.NewEntryHandler(cfg.EntryController)
	dashboardHandler := handler.NewDashboardHandler(cfg.DashboardService)
	badgeHandler := handler.NewBadgeHandler(cfg.BadgeService)
	contactHandler := handler.NewContactHandler(cfg.ContactService)

	// Create middleware
	adminMiddleware := middleware.AdminAuth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Entry flow routes (public, kiosk-driven)
	sessions := api.PathPrefix("/entry/sessions").Subrouter()
	sessions.HandleFunc("", entryHandler.Create).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}", entryHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}", entryHandler.End).Methods(http.MethodDelete)
	sessions.HandleFunc("/{id}/scan", entryHandler.Scan).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/confirm", entryHandler.Confirm).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/game", entryHandler.SelectGame).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/back", entryHandler.Back).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/submit", entryHandler.Submit).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/reset", entryHandler.Reset).Methods(http.MethodPost)

	// Dashboard routes (public, read-only)
	api.HandleFunc("/games", dashboardHandler.Games).Methods(http.MethodGet)
	api.HandleFunc("/scores", dashboardHandler.Scores).Methods(http.MethodGet)

	// Contact form
	api.HandleFunc("/contact", contactHandler.Submit).Methods(http.MethodPost)

	// Badge batch routes (operator-only)
	badges := api.PathPrefix("/badges/batches").Subrouter()
	badges.Use(adminMiddleware)
	badges.HandleFunc("", badgeHandler.CreateBatch).Methods(http.MethodPost)
	badges.HandleFunc("/{id}", badgeHandler.GetBatch).Methods(http.MethodGet)
	badges.HandleFunc("/{id}", badgeHandler.DeleteBatch).Methods(http.MethodDelete)
	badges.HandleFunc("/{id}/employees", badgeHandler.AddEmployee).Methods(http.MethodPost)
	badges.HandleFunc("/{id}/employees/{employee_id}", badgeHandler.RemoveEmployee).Methods(http.MethodDelete)
	badges.HandleFunc("/{id}/employees/{employee_id}/badge.png", badgeHandler.Badge).Methods(http.MethodGet)
	badges.HandleFunc("/{id}/import", badgeHandler.ImportCSV).Methods(http.MethodPost)
	badges.HandleFunc("/{id}/export.csv", badgeHandler.ExportMapping).Methods(http.MethodGet)
	badges.HandleFunc("/{id}/export.zip", badgeHandler.ExportArchive).Methods(http.MethodGet)
	badges.HandleFunc("/{id}/sync", badgeHandler.Sync).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Stored score photos
	if cfg.MediaDir != "" {
		r.PathPrefix("/media/").Handler(
			http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaDir))))
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
