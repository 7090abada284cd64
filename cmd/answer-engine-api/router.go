// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nietlabs/answer-engine/cmd/answer-engine-api/handlers"
	"github.com/nietlabs/answer-engine/cmd/answer-engine-api/middleware"
	"github.com/nietlabs/answer-engine/internal/app"
)

// NewRouter creates the API router with all routes configured.
func NewRouter(a *app.App) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(a.Config.Server.ReadTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"answer-engine"}`))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if a.Store.Len() == 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"no knowledge loaded"}`))
			return
		}
		w.Write([]byte(`{"status":"ready"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	chatHandler := handlers.NewChatHandler(a.Logger, a.Engine)
	callbackHandler := handlers.NewCallbackHandler(a.Logger, a.Callbacks)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/chat", chatHandler.Ask)
		r.Route("/callbacks", func(r chi.Router) {
			r.Post("/", callbackHandler.Create)
			r.Get("/", callbackHandler.Recent)
		})
	})

	return r
}
