package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/quotedesk/internal/infra/http/handlers"
	"github.com/xavierca1/quotedesk/internal/infra/http/middleware"
	"github.com/xavierca1/quotedesk/internal/infra/metrics"
)

type routerDeps struct {
	AllowedOrigins    []string
	TrustProxyHeaders bool
	Verifier          middleware.Verifier
	Limiter           handlers.Limiter

	Health    *handlers.HealthHandler
	Quotes    *handlers.QuoteHandler
	Leads     *handlers.LeadHandler
	Agents    *handlers.AgentHandler
	Notes     *handlers.NoteHandler
	Documents *handlers.DocumentHandler
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// Only rewrite RemoteAddr from X-Forwarded-For when a proxy we control sets it.
	if d.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", d.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(handlers.RateLimit(d.Limiter))
			r.Use(chimw.Timeout(30 * time.Second))
			r.Post("/quotes", d.Quotes.Create)
			r.Post("/agents/register", d.Agents.Register)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(d.Verifier))

			r.Get("/me", d.Agents.Me)

			r.Route("/leads", func(r chi.Router) {
				r.Get("/", d.Leads.List)
				r.With(middleware.RequireAdmin).Post("/", d.Leads.Create)
				r.With(middleware.RequireAdmin).Post("/batch/assign", d.Leads.BatchAssign)
				r.Post("/batch/status", d.Leads.BatchStatus)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", d.Leads.Get)
					r.Patch("/", d.Leads.Update)
					r.With(middleware.RequireAdmin).Delete("/", d.Leads.Delete)

					r.Get("/notes", d.Notes.List)
					r.Post("/notes", d.Notes.Create)
					r.Get("/documents", d.Documents.List)
					r.Post("/documents", d.Documents.Upload)
				})
			})

			r.Delete("/notes/{id}", d.Notes.Delete)
			r.Delete("/documents/{id}", d.Documents.Delete)

			r.Route("/agents", func(r chi.Router) {
				r.With(middleware.RequireAdmin).Get("/", d.Agents.List)
				r.With(middleware.RequireAdmin).Post("/", d.Agents.Create)
				r.Get("/{id}", d.Agents.Get)
				r.Patch("/{id}", d.Agents.Update)
				r.With(middleware.RequireAdmin).Delete("/{id}", d.Agents.Delete)
			})
		})
	})

	return r
}
