package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/parthasastry/notes-app/internal/api"
	"github.com/parthasastry/notes-app/internal/config"
	"github.com/parthasastry/notes-app/internal/logging"
	"github.com/parthasastry/notes-app/internal/note"
	"github.com/parthasastry/notes-app/internal/storage"
)

var (
	logLevel string

	cfg    config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "Per-user notes API",
	Long: `notes serves a per-user notes CRUD API, either as an HTTP server or as an
AWS Lambda handler behind API Gateway, backed by memory, Postgres, Redis or DynamoDB.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		logger = logging.New(cfg.LogLevel, cfg.Development())
		return nil
	},
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override NOTES_LOG_LEVEL")
}

// openAPI wires the configured backend into the core router.
func openAPI(ctx context.Context) (*api.Router, storage.Backend, error) {
	backend, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, storage.Backend{}, err
	}
	svc := &note.Service{Store: backend.Notes}
	return api.NewRouter(svc, logger), backend, nil
}
