package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pawspoint/clinic-assistant/internal/assistant"
	httpmiddleware "github.com/pawspoint/clinic-assistant/internal/http/middleware"
	"github.com/pawspoint/clinic-assistant/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger           *logging.Logger
	AssistantHandler *assistant.Handler
	MetricsHandler   http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}
	r.Post("/webhooks/actions", cfg.AssistantHandler.HandleTurn)

	return r
}
