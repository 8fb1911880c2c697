package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/aflcoach/aflcoach-data/internal/api/handler"
	"github.com/aflcoach/aflcoach-data/internal/cache"
	"github.com/aflcoach/aflcoach-data/internal/config"
	"github.com/aflcoach/aflcoach-data/internal/service"
	"github.com/aflcoach/aflcoach-data/internal/store"
)

// NewRouter creates and configures the Chi router with all middleware and
// routes. pool may be nil.
func NewRouter(svc *service.Service, appCache *cache.Cache, pool *store.Pool, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitBurst, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(svc, appCache, cfg, pool)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/cache", h.HealthCheckCache)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/upstream", h.HealthCheckUpstream)
	})

	// Swagger UI backed by the static OpenAPI document.
	r.Get("/docs/doc.json", serveOpenAPISpec)
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard", h.GetDashboard)

		r.Get("/players", h.GetPlayers)
		r.Get("/players/{playerID}", h.GetPlayer)

		r.Get("/captains", h.GetCaptains)
		r.Post("/trades/score", h.PostTradeScore)
		r.Get("/cashcows", h.GetCashCows)

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", h.GetActiveAlerts)
			r.Get("/history", h.GetAlertHistory)
			r.Post("/scan", h.PostAlertScan)
		})
	})

	return r
}
