package main

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Freeeeeet/academy_scheduler/internal/app"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|version]",
		Short:     "Applica le migrazioni PostgreSQL",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "up"
			if len(args) == 1 {
				action = args[0]
			}

			dsn := viper.GetString("db_dsn")
			if dsn == "" {
				return fmt.Errorf("DB_DSN or --dsn is required")
			}

			ctx := cmd.Context()
			pool, err := pgxpool.New(ctx, dsn)
			if err != nil {
				return fmt.Errorf("create pool: %w", err)
			}
			defer pool.Close()

			logger := app.NewLogger("development")
			defer logger.Sync()

			migrator, err := app.NewMigrator(pool, viper.GetString("migrations_path"), logger)
			if err != nil {
				return err
			}
			defer migrator.Close()

			switch action {
			case "down":
				return migrator.Down(ctx)
			case "version":
				version, err := migrator.Version(ctx)
				if err != nil {
					return err
				}
				logger.Info("Current schema version", zap.Int64("version", version))
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			default:
				return migrator.Run(ctx)
			}
		},
	}
}
