package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vaultpass/passgen-go/internal/middleware"
	"github.com/vaultpass/passgen-go/internal/service"
	"github.com/vaultpass/passgen-go/internal/session"
)

// RouterConfig carries what NewRouter needs besides the service.
type RouterConfig struct {
	Sessions       *session.Store
	SessionSecret  string
	SessionExpiry  time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the HTTP API. Background work started for the router
// stops when ctx is done.
func NewRouter(ctx context.Context, svc *service.GeneratorService, cfg RouterConfig) http.Handler {
	sessions := middleware.NewSessions(cfg.Sessions, cfg.SessionSecret, cfg.SessionExpiry)
	genHandler := NewGeneratorHandler(svc, sessions)
	histHandler := NewHistoryHandler(sessions)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/api/v1/strength", genHandler.HandleStrength)

	// Throttle before any session lookup so rejected requests cost nothing.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Use(sessions.Middleware)

		r.Post("/api/v1/generate", genHandler.HandleGenerate)
		r.Get("/api/v1/history", histHandler.HandleHistory)
		r.Delete("/api/v1/history", histHandler.HandleClearHistory)
	})

	return r
}
