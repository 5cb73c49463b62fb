package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/neexbeast/petmap/internal/metrics"
)

// NewRouter builds and returns the Chi router with all routes configured.
// Health and metrics are unauthenticated; everything else requires bearer auth.
// Rate limiting is applied globally: rateLimit requests per minute per IP.
func NewRouter(handlers *Handlers, token string, rateLimit int, db dbPinger, redisClient redisPinger, log *slog.Logger) *chi.Mux {
	if rateLimit <= 0 {
		rateLimit = 60
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(AccessLog(log))
	r.Use(metrics.Middleware)
	r.Use(httprate.LimitByIP(rateLimit, time.Minute))

	r.Get("/api/v1/health", HealthHandlerFunc(db, redisClient, log))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(token))

		r.Post("/api/v1/sessions", handlers.CreateSession)
		r.Delete("/api/v1/sessions/{id}", handlers.DeleteSession)
		r.Get("/api/v1/sessions/{id}/markers", handlers.GetMarkers)
		r.Post("/api/v1/sessions/{id}/categories/{category}/toggle", handlers.ToggleCategory)

		r.Get("/api/v1/users/{user}/favorites", handlers.ListFavorites)
		r.Post("/api/v1/users/{user}/favorites", handlers.SaveFavorite)
		r.Delete("/api/v1/users/{user}/favorites", handlers.RemoveFavorite)

		r.Get("/api/v1/i18n/{lang}", handlers.GetDictionary)
		r.Get("/api/v1/i18n/{lang}/next", handlers.NextLanguage)

		r.Get("/api/v1/events", handlers.ListEvents)
		r.Post("/api/v1/catalog/refresh", handlers.RefreshCatalog)
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
