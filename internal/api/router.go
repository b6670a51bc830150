// Package api assembles the StoreRoute HTTP router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/storeroute/storeroute/internal/api/handler"
	"github.com/storeroute/storeroute/internal/api/middleware"
	"github.com/storeroute/storeroute/internal/session"
	"github.com/storeroute/storeroute/internal/store"
)

// RouterConfig holds the dependencies of the HTTP router.
type RouterConfig struct {
	// Catalog is the store catalog. Required.
	Catalog store.Repository

	// Sessions is the planning session service. Required.
	Sessions *session.Service

	// Mailer delivers route emails. Optional; when nil the email endpoint
	// reports 503.
	Mailer handler.Mailer

	// Version is reported by the health endpoints.
	Version string

	// Logger for request logging.
	Logger zerolog.Logger
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing)
	r.Use(middleware.Metrics)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.ContentTypeJSON)

	ops := handler.NewOpsHandler(cfg.Catalog, cfg.Version)
	catalog := handler.NewCatalogHandler(cfg.Catalog)
	sessions := handler.NewSessionHandler(cfg.Sessions)
	routes := handler.NewRouteHandler(cfg.Sessions, cfg.Mailer)

	r.Get("/healthz", ops.Health)
	r.Get("/readyz", ops.Ready)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(middleware.StandardRateLimit))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/retailers", catalog.ListRetailers)
			r.Get("/retailers/{retailer}/stores", catalog.ListStores)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessions.Create)

			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", sessions.Get)
				r.Put("/departure", sessions.SetDeparture)
				r.Post("/destinations", sessions.AddDestination)
				r.Delete("/destinations/{index}", sessions.RemoveDestination)
				r.Post("/reset", sessions.Reset)

				// Route creation and email call external providers, so
				// they get the tighter limit.
				r.Group(func(r chi.Router) {
					r.Use(middleware.RateLimitByIP(middleware.ExpensiveRateLimit))
					r.Post("/route", routes.Create)
					r.Post("/route/email", routes.Email)
				})
			})
		})
	})

	return r
}
