package cmd

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/skipjar/skipjar/internal/app"
	"github.com/skipjar/skipjar/internal/config"
	"github.com/skipjar/skipjar/internal/db"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations (indexes for mongo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			store, err := app.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			fmt.Println("Database is up to date")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSQL(cmd.Context(), func(database *sqlx.DB, driver string) error {
				return db.MigrateDown(database.DB, driver)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSQL(cmd.Context(), func(database *sqlx.DB, driver string) error {
				version, err := db.MigrationStatus(database.DB, driver)
				if err != nil {
					return err
				}
				fmt.Printf("Schema version: %d\n", version)
				return nil
			})
		},
	})

	return cmd
}

// withSQL opens the configured SQL database without migrating it.
func withSQL(ctx context.Context, fn func(database *sqlx.DB, driver string) error) error {
	cfg := config.Load()
	if cfg.DBDriver == app.DriverMongo {
		return fmt.Errorf("not supported for DB_DRIVER=mongo; mongo only has indexes, see `do migrate up`")
	}

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer database.Close()

	return fn(database, cfg.DBDriver)
}
