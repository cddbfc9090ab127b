package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tipofmy/portal/internal/pkg/logger"
)

// SetupRoutes configures the router: landing page, static assets,
// intake endpoint and health checks.
func SetupRoutes(wh *WaitlistHandler, hc *HealthChecker, page http.Handler, static http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(jsonRecoverer)

	// The intake endpoint is called cross-origin from anywhere the page
	// is embedded; pre-flights get an empty 200 with these headers.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", hc.HandleHealth)
	r.Get("/health/live", hc.HandleLiveness)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(RateLimit(5, 10))
		r.Post("/waitlist", wh.HandleSubmit)
	})

	if page != nil {
		r.Get("/", page.ServeHTTP)
	}
	if static != nil {
		r.Handle("/static/*", static)
	}

	return r
}

// jsonRecoverer converts panics into the uniform failure shape instead
// of chi's plain-text 500. Nothing throws past the request boundary.
func jsonRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic recovered", "path", r.URL.Path, "panic", rec)
				respondError(w, http.StatusInternalServerError, "server_error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
