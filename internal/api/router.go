// Package api exposes the honorary calculation and the holiday calendar over HTTP.
package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/username/honorary-calc/internal/calendar"
	"github.com/username/honorary-calc/internal/fare"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Engine    *fare.Engine
	Calendar  calendar.Calendar
	Holidays  HolidayLister
	Fares     fare.Fares
	Logger    *zap.Logger
	RateLimit int // requests per minute per IP, 0 disables limiting
}

// NewRouter creates a chi router with all API routes configured
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Order matters: request id first, real ip before the limiter
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)

	h := NewHandler(cfg.Engine, cfg.Calendar, cfg.Holidays, cfg.Fares, cfg.Logger)

	r.Get("/healthz", h.Health)

	r.Route("/v1", func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(rateLimitByIP(cfg.RateLimit, time.Minute))
		}
		r.Get("/honorary", h.Honorary)
		r.Get("/days/{date}", h.Day)
		r.Get("/holidays/{year}", h.Holidays)
	})

	return r
}
