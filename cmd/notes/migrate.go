package main

import (
	"github.com/spf13/cobra"

	"github.com/parthasastry/notes-app/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and indexes for the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return storage.Migrate(cmd.Context(), cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
