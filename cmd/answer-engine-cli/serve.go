package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/nietlabs/answer-engine/internal/app"
)

// newServeCmd serves the chat endpoint without the full API surface. Useful
// for local development; production deployments run answer-engine-api.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := app.Build(cfg, logger)
			if err != nil {
				return fmt.Errorf("building engine: %w", err)
			}
			defer a.Close()

			r := chi.NewRouter()
			r.Use(chimiddleware.Recoverer)
			r.Handle("/metrics", promhttp.Handler())
			r.Post("/api/v1/chat", func(w http.ResponseWriter, req *http.Request) {
				var body struct {
					Question  string `json:"question"`
					SessionID string `json:"sessionId"`
				}
				if err := json.NewDecoder(req.Body).Decode(&body); err != nil || strings.TrimSpace(body.Question) == "" {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				if body.SessionID == "" {
					body.SessionID = uuid.NewString()
				}
				answer := a.Engine.Answer(req.Context(), body.Question, body.SessionID)
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]interface{}{
					"type":      string(answer.Type),
					"answer":    answer.Text,
					"details":   answer.Details,
					"actions":   answer.Actions,
					"sessionId": body.SessionID,
				})
			})

			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			srv := &http.Server{Addr: addr, Handler: r, ReadTimeout: cfg.Server.ReadTimeout}

			errs := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", addr).Msg("serving chat endpoint")
				errs <- srv.ListenAndServe()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errs:
				return err
			case <-stop:
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
}
