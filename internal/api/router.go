// Copyright (c) 2026, the gizitrack contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package api wires the HTTP surface of gizitrack.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/gizitrack/gizitrack/internal/api/handlers"
	"github.com/gizitrack/gizitrack/internal/database"
	"github.com/gizitrack/gizitrack/internal/domain"
	"github.com/gizitrack/gizitrack/internal/metrics"
	"github.com/gizitrack/gizitrack/internal/models"
	"github.com/gizitrack/gizitrack/internal/nutrition"
)

// Deps carries everything the router needs; the composition root owns all
// lifetimes.
type Deps struct {
	Config   *domain.Config
	DB       *database.DB
	Profiles *models.ProfileStore
	FoodLogs *models.FoodLogStore
	Analyzer *nutrition.Analyzer
}

// NewRouter builds the chi router with all API routes mounted.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}).Handler)

	profileHandler := handlers.NewProfileHandler(deps.Profiles)
	foodLogHandler := handlers.NewFoodLogHandler(deps.FoodLogs)
	analysisHandler := handlers.NewAnalysisHandler(deps.Profiles, deps.Analyzer)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Check)

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", profileHandler.List)
			r.Post("/", profileHandler.Create)
			r.Route("/{profileID}", func(r chi.Router) {
				r.Get("/", profileHandler.Get)
				r.Put("/", profileHandler.Update)
				r.Delete("/", profileHandler.Delete)
				r.Get("/analysis", analysisHandler.Analyze)
				r.Route("/logs", func(r chi.Router) {
					r.Get("/", foodLogHandler.List)
					r.Post("/", foodLogHandler.Create)
				})
			})
		})
		r.Delete("/logs/{logID}", foodLogHandler.Delete)
	})

	if deps.Config.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(metrics.NewDBCollector(deps.DB))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}
