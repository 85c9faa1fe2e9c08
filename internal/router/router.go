// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// catalog admin service. Public document reads are open; everything
// under /api sits behind the Telegram init-data gate.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tattiadmin/internal/handlers"
	"tattiadmin/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(admin *handlers.Admin, botToken string, allowList []int64) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)

	// Health check and metrics — no auth.
	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	// Public site-facing document reads.
	r.Get("/{name}.json", admin.PublicDocument)

	// Admin API — every route requires a verified, allow-listed
	// Telegram identity.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.TelegramAuth(botToken, allowList))

		r.Route("/data/{name}", func(r chi.Router) {
			r.Get("/", admin.DataGet)
			r.Put("/", admin.DataPut)
			r.Post("/", admin.DataAppend)
		})

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", admin.MenuGet)
			r.Put("/", admin.MenuPut)
			r.Post("/items", admin.MenuItemCreate)
			r.Put("/items/{id}", admin.MenuItemUpdate)
			r.Post("/items/{id}/move", admin.MenuItemMove)
			r.Delete("/items/{id}", admin.MenuItemDelete)
			r.Put("/categories/{id}", admin.MenuCategoryRename)
		})

		r.Route("/cakes", func(r chi.Router) {
			r.Get("/", admin.CakesGet)
			r.Put("/", admin.CakesPut)
		})

		r.Route("/easter", func(r chi.Router) {
			r.Get("/", admin.EasterGet)
			r.Put("/", admin.EasterPut)
		})

		r.Route("/new-year", func(r chi.Router) {
			r.Get("/", admin.NewYearGet)
			r.Put("/", admin.NewYearPut)
		})

		r.Route("/service-packages", func(r chi.Router) {
			r.Get("/", admin.PackagesGet)
			r.Put("/", admin.PackagesPut)
		})

		r.Route("/info", func(r chi.Router) {
			r.Get("/", admin.InfoGet)
			r.Put("/", admin.InfoPut)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", admin.ReviewsGet)
			r.Post("/", admin.ReviewCreate)
			r.Put("/", admin.ReviewsPut)
		})

		r.Post("/upload", admin.Upload)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
