package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/hairstudio/salon/internal/config"
	"github.com/hairstudio/salon/internal/db"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(driver string, database *sqlx.DB) error {
				return db.RunMigrations(cmd.Context(), database.DB, driver)
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(driver string, database *sqlx.DB) error {
				return db.MigrateDown(cmd.Context(), database.DB, driver)
			})
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(driver string, database *sqlx.DB) error {
				states, err := db.MigrationStatus(cmd.Context(), database.DB, driver)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tSTATE\tFILE")
				for _, s := range states {
					state := "pending"
					if s.Applied {
						state = "applied"
					}
					fmt.Fprintf(w, "%d\t%s\t%s\n", s.Version, state, s.Path)
				}
				return w.Flush()
			})
		},
	})

	return migrateCmd
}

func withDatabase(fn func(driver string, database *sqlx.DB) error) error {
	driver, connection := config.LoadDatabase()

	database, err := db.Init(driver, connection, 1)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	return fn(driver, database)
}
