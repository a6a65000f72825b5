// Package router assembles the HTTP surface: public health and metrics
// endpoints plus the JWT-guarded patient assistant API.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Thakshaka/clinic-management-system/internal/assistant"
	httpmiddleware "github.com/Thakshaka/clinic-management-system/internal/http/middleware"
	"github.com/Thakshaka/clinic-management-system/internal/webchat"
	"github.com/Thakshaka/clinic-management-system/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger           *logging.Logger
	AssistantHandler *assistant.Handler
	WebChatHandler   *webchat.Handler
	MetricsHandler   http.Handler

	PatientJWTSecret   string
	CORSAllowedOrigins []string

	// Rate limiting for the assistant endpoints. Zero disables it.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Patient assistant API
	r.Route("/assistant", func(api chi.Router) {
		api.Use(httpmiddleware.PatientJWT(cfg.PatientJWTSecret))
		if cfg.RateLimitPerSecond > 0 {
			api.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
		}

		api.Post("/message", cfg.AssistantHandler.Message)
		api.Get("/history", cfg.AssistantHandler.History)
		api.Delete("/history", cfg.AssistantHandler.ClearHistory)
		api.Get("/quick-actions", cfg.AssistantHandler.QuickActions)

		if cfg.WebChatHandler != nil {
			api.Get("/ws", cfg.WebChatHandler.HandleWebSocket)
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
