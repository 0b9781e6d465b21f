// Package api exposes capital gains computations over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config holds the HTTP API settings.
type Config struct {
	AllowedOrigins []string // AllowedOrigins for cross-origin requests, none if empty.
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logger)
	r.Use(middleware.Recoverer)
	r.Use(NewCORS(cfg.AllowedOrigins).Handler)

	h := NewHandler()
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Post("/consolidate", h.Consolidate)
		r.Post("/gains", h.Gains)
		r.Post("/gains/yearly", h.Yearly)
		r.Post("/withdrawal", h.Withdrawal)
	})

	return r
}
