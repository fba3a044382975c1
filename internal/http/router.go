package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/ncaa-baseball-service/internal/http/handlers"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/http/middleware"
	"github.com/preston-bernstein/ncaa-baseball-service/internal/metrics"
)

// RouterConfig carries the cross-cutting pieces the router installs.
type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *metrics.Recorder
	AllowedOrigins []string
}

// NewRouter registers HTTP routes on a chi router. Admin routes are mounted only
// when admin is configured with a token.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler, cfg RouterConfig) nethttp.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))
	r.Use(chimiddleware.Recoverer)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "PUT", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader},
			MaxAge:         300,
		}))
	}

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/scoreboard", handler.Scoreboard)
		r.Get("/games/{id}/boxscore", handler.BoxScore)
		r.Get("/games/{id}/plays", handler.Plays)
		r.Get("/standings", handler.Standings)
		r.Get("/rankings", handler.Rankings)
	})

	if admin.Enabled() {
		r.Route("/admin", func(r chi.Router) {
			r.Get("/sources", admin.Sources)
			r.Put("/sources", admin.UpdateSources)
			r.Post("/cache/clear", admin.ClearCache)
		})
	}

	return r
}
