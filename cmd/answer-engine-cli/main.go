// Package main provides the Answer Engine command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nietlabs/answer-engine/internal/config"
	"github.com/nietlabs/answer-engine/internal/observability"
)

var cfgPath string

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "answer-engine",
		Short:        "NIET chat answer engine",
		Long:         "Routes student questions through safety screening, keyword matching, vector retrieval and generative fallback.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file")

	root.AddCommand(newAskCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newChunksCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *observability.Logger, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      "console",
		ServiceName: cfg.Observability.ServiceName,
	})
	return cfg, logger, nil
}
