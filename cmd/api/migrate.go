package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Hiro-mackay/tripshare/internal/infrastructure/di"
)

func newMigrateCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the tables of the configured store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			container, err := di.NewContainer(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize container: %w", err)
			}
			defer container.Close()

			if err := container.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to migrate store: %w", err)
			}

			slog.Info("store schema is up to date", "store", cfg.Store.Backend)
			return nil
		},
	}
}
