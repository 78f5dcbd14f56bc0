// Package router sets up all HTTP routes and middleware chains for the
// recipebox server. It organizes routes into the HTML site and the JSON
// API with their own middleware stacks.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"recipebox/internal/handlers"
	"recipebox/internal/middleware"
	"recipebox/web"
)

// HealthChecker reports the last persistence failure, if any.
type HealthChecker interface {
	PersistErr() error
}

// Options carries the settings that shape the middleware stack.
type Options struct {
	// SecureCookies marks the CSRF cookie Secure (deployments behind TLS).
	SecureCookies bool
	// AllowedOrigins for cross-origin API calls. Empty allows any origin.
	AllowedOrigins []string
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. limiter guards the mutating API routes.
func New(site *handlers.Site, api *handlers.API, health HealthChecker, limiter *middleware.RateLimiter, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check, no CSRF.
	r.Get("/health", healthHandler(health))

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(web.StaticFS())))

	// JSON API: CORS for browser clients, rate limits on writes.
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))

		r.Get("/recipes", api.List)
		r.Get("/recipes/{id}", api.Get)
		r.Get("/categories", api.Categories)

		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)
			r.Post("/recipes", api.Create)
			r.Put("/recipes/{id}", api.Update)
			r.Delete("/recipes/{id}", api.Delete)
		})
	})

	// HTML site, forms protected by CSRF tokens.
	r.Group(func(r chi.Router) {
		r.Use(middleware.LimitBody(handlers.MaxBodyBytes))
		r.Use(middleware.NewCSRF(opts.SecureCookies))

		r.Get("/", site.Index)
		r.Get("/recipes/new", site.New)
		r.Post("/recipes", site.Create)
		r.Get("/recipes/{id}", site.Show)
		r.Get("/recipes/{id}/edit", site.Edit)
		r.Post("/recipes/{id}", site.Update)
		r.Get("/recipes/{id}/delete", site.ConfirmDelete)
		r.Post("/recipes/{id}/delete", site.Delete)
	})

	r.NotFound(site.NotFound)

	return r
}

// healthHandler returns a JSON health check response. The service stays
// up when writes fail, so a persistence error reports "degraded" with 200.
func healthHandler(health HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body := map[string]string{"status": "ok"}
		if err := health.PersistErr(); err != nil {
			body = map[string]string{"status": "degraded", "error": err.Error()}
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(body)
	}
}
