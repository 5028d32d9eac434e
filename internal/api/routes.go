package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"rtref/internal/config"
	"rtref/internal/dataset"
	"rtref/internal/view"
	"rtref/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(store *dataset.Store, builder *view.Builder, renderer *view.Renderer, config *config.Config, logger *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(store, builder, renderer, config, logger),
		middleware: NewMiddleware(logger),
		config:     config,
		logger:     logger.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// Pages
	router.Get("/", r.handler.Index)
	router.Get("/aircraft", r.handler.AircraftPage)

	// HTML fragments
	router.Get("/views/sessions", r.handler.SessionsFragment)
	router.Get("/views/popup/description", r.handler.DescriptionPopup)
	router.Get("/views/popup/command", r.handler.CommandPopup)
	router.Get("/views/popup/awake", r.handler.AwakeNotice)

	// JSON API
	router.Route("/api/v1", func(router chi.Router) {
		router.Get("/airports", r.handler.GetAirports)
		router.Get("/calls", r.handler.GetCalls)
		router.Get("/parameters", r.handler.GetParameters)
		router.Get("/aircraft", r.handler.GetAircraft)
		router.Get("/health", r.handler.GetHealth)
		router.Get("/config", r.handler.GetConfig)
	})

	// Serve static assets from the configured directory
	staticHandler := NewStaticFileHandler(r.config.Server.StaticFilesDir, r.logger)
	router.Handle("/static/*", http.StripPrefix("/static/", staticHandler))

	return router
}
