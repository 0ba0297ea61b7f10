package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zapponejosh/rawtime/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	POST   /api/v1/encode
//	GET    /api/v1/decode/{seconds}
//	POST   /api/v1/stamp
//	POST   /api/v1/calc
//	GET    /api/v1/now
//	GET    /api/v1/feasts/{year}
//	GET    /api/v1/bookmarks
//	GET    /api/v1/bookmarks/{name}
//	POST   /api/v1/bookmarks          (API key)
//	DELETE /api/v1/bookmarks/{name}   (API key)
//
// Instant responses accept ?kind= (full, date, time, year, month, day,
// hour, minute, second) and ?style= (plain, dotted).
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RequestIDMiddleware(),
		RecoveryMiddleware(logger),
		middleware.RealIP,
		LoggingMiddleware(logger),
		CORSMiddleware(),
		middleware.Timeout(30*time.Second),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "No route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	authWrap := AuthMiddleware(cfg, logger)

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		// ======================================================================
		// Conversion routes (public)
		// ======================================================================
		r.Post("/encode", handlers.Encode)
		r.Get("/decode/{seconds}", handlers.Decode)
		r.Post("/stamp", handlers.Stamp)
		r.Post("/calc", handlers.Calc)
		r.Get("/now", handlers.Now)
		r.Get("/feasts/{year}", handlers.Feasts)

		// ======================================================================
		// Bookmarks (writes need the API key)
		// ======================================================================
		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", handlers.ListBookmarks)
			r.Get("/{name}", handlers.GetBookmark)
			r.With(authWrap).Post("/", handlers.CreateBookmark)
			r.With(authWrap).Delete("/{name}", handlers.DeleteBookmark)
		})
	})

	return r
}
