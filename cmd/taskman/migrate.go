package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danispp/Task-Management/internal/config"
	"github.com/danispp/Task-Management/internal/infrastructure/persistence/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.Database.Driver != config.StoragePostgres {
			return fmt.Errorf("migrate needs STORAGE_DRIVER=postgres, got %q", cfg.Database.Driver)
		}
		log := newLogger(cfg)
		pool, err := openPool(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := db.Migrate(cmd.Context(), pool); err != nil {
			return err
		}
		log.Info().Msg("schema applied")
		return nil
	},
}
