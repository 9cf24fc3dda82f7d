package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/expotrack/expotrack/internal/api/handler"
	"github.com/expotrack/expotrack/internal/api/middleware"
	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/services/aggregate"
	"github.com/expotrack/expotrack/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Coordinator *session.Coordinator
	Aggregate   *aggregate.Service
	Catalog     *model.StationCatalog
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	visitorHandler := handler.NewVisitorHandler(cfg.Coordinator, cfg.Aggregate)
	stationHandler := handler.NewStationHandler(cfg.Coordinator, cfg.Catalog)
	sessionHandler := handler.NewSessionHandler(cfg.Coordinator)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.Coordinator)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Registration opens the session, so it takes no auth
	api.HandleFunc("/visitors/register", visitorHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/visitors/{id}/times", visitorHandler.GetTimes).Methods(http.MethodGet)

	// Logout is idempotent and accepts missing/stale tokens
	api.HandleFunc("/logout", sessionHandler.Logout).Methods(http.MethodPost)

	// Station routes (all require an active session)
	stations := api.PathPrefix("/stations").Subrouter()
	stations.Use(authMiddleware)
	stations.HandleFunc("", stationHandler.List).Methods(http.MethodGet)
	stations.HandleFunc("/{id}/start", stationHandler.Start).Methods(http.MethodPost)
	stations.HandleFunc("/{id}/stop", stationHandler.Stop).Methods(http.MethodPost)

	// Session-scoped routes
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/leaderboard", sessionHandler.Leaderboard).Methods(http.MethodGet)
	protected.HandleFunc("/session", sessionHandler.Snapshot).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
