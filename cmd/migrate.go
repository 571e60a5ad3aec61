package cmd

import (
	"fmt"
	"strconv"

	"thumbnailbot/database"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Apply or roll back database migrations.

Reads DATABASE_URL and DATABASE_NAME from the environment.`,
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return database.MigrateUp(database.MigrationDatabaseURL())
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := parseSteps(args)
			if err != nil {
				return err
			}
			return database.MigrateDown(database.MigrationDatabaseURL(), steps)
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := database.MigrateStatus(database.MigrationDatabaseURL())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), FormatMigrationStatus(status))
			return nil
		},
	})

	return migrateCmd
}

// parseSteps reads the optional step count of migrate down
func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(args[0])
	if err != nil || steps <= 0 {
		return 0, fmt.Errorf("steps must be a positive integer, got %q", args[0])
	}
	return steps, nil
}

// FormatMigrationStatus renders a schema status line
func FormatMigrationStatus(status *database.MigrationStatus) string {
	if !status.Applied {
		return "No migrations applied"
	}
	if status.Dirty {
		return fmt.Sprintf("Version %d (dirty, fix manually before migrating again)", status.Version)
	}
	return fmt.Sprintf("Version %d", status.Version)
}
