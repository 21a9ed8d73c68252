package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/transport/httpapi/handler"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/transport/httpapi/middleware"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger           *logger.Logger
	AllowedOrigins   []string
	AuthHandler      *handler.AuthHandler
	StatementHandler *handler.StatementHandler
	HealthHandler    *handler.HealthHandler
	JWTMiddleware    func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit()) // Rate limiting: 100 req/s with burst of 20

	// Health check endpoints (no authentication required)
	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)
	if cfg.HealthHandler != nil {
		r.Get("/health/ready", cfg.HealthHandler.GetReadiness)
		r.Get("/health/detailed", cfg.HealthHandler.GetHealthDetailed)
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public - no authentication required)
		if cfg.AuthHandler != nil {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		// Protected routes (require JWT authentication)
		if cfg.JWTMiddleware != nil && cfg.StatementHandler != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.JWTMiddleware)

				r.Route("/statements", func(r chi.Router) {
					r.Get("/", cfg.StatementHandler.GetView)
					r.Put("/bank", cfg.StatementHandler.SetBank)
					r.Put("/search", cfg.StatementHandler.SetSearch)
					r.Put("/mode", cfg.StatementHandler.SetMode)
					r.Put("/page", cfg.StatementHandler.SetPage)
					r.Get("/export", cfg.StatementHandler.ExportCSV)
					r.Post("/selection", cfg.StatementHandler.Select)
					r.Get("/selection", cfg.StatementHandler.GetSelection)
					r.Delete("/selection", cfg.StatementHandler.ClearSelection)
				})

				r.Route("/banks", func(r chi.Router) {
					r.Get("/", cfg.StatementHandler.ListBanks)
					r.Put("/active", cfg.StatementHandler.SetActiveBank)
				})
			})
		}
	})

	return r
}
