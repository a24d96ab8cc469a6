package main

import (
	"fmt"

	"github.com/jonathan/onepager/internal/store"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply generation log migrations",
	Long:  "Applies the embedded PostgreSQL migrations to DATABASE_URL. serve also applies them on start.",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := store.Connect(cmd.Context(), cfg.DatabaseURL, store.DefaultOptions())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.RunMigrations(cmd.Context(), db); err != nil {
		return err
	}

	logger.Info("Migrations applied")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
	return nil
}
