package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/prn-tf/chronicle/internal/metrics"
)

// RouterConfig contains the handlers and middleware wired into the router.
type RouterConfig struct {
	EntryHandler   *EntryHandler
	StatsHandler   *StatsHandler
	ProfileHandler *ProfileHandler
	ImageHandler   *ImageHandler
	AuthMiddleware func(http.Handler) http.Handler
	Logger         zerolog.Logger
}

// NewRouter builds the chi router for the API. Everything under /api/v1
// requires bearer authentication; /health does not.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(cfg.Logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cfg.AuthMiddleware)

		r.Route("/entries", func(r chi.Router) {
			r.Post("/", cfg.EntryHandler.Create)
			r.Get("/", cfg.EntryHandler.List)
			r.Get("/on-day", cfg.EntryHandler.GetOnDay)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cfg.EntryHandler.Get)
				r.Put("/", cfg.EntryHandler.Update)
				r.Delete("/", cfg.EntryHandler.Delete)
				r.Post("/lock", cfg.EntryHandler.Lock)
				r.Post("/unlock", cfg.EntryHandler.Unlock)
			})
		})

		r.Get("/search", cfg.StatsHandler.Search)
		r.Get("/stats", cfg.StatsHandler.GetStats)

		r.Get("/profile", cfg.ProfileHandler.Get)
		r.Put("/profile", cfg.ProfileHandler.Update)

		r.Post("/images", cfg.ImageHandler.Upload)
		r.Get("/images/{ref}", cfg.ImageHandler.Download)
	})

	return r
}

// requestLogger logs each request with its status and duration and feeds the
// latency histogram.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			metrics.ObserveRequest(r.Method, route, ww.Status(), start)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
