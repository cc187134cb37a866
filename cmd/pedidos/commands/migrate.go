package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/pedidos_api/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		gdb, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		if err := db.Migrate(ctx, gdb); err != nil {
			return err
		}

		logger.Info("migration_complete", "driver", cfg.DatabaseDriver)
		return nil
	},
}
