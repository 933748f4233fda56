package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/mindwise/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		url, err := databaseURL()
		if err != nil {
			return err
		}
		if err := migrateUp(url); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [N]",
	Short: "Roll back the last N migrations (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := parseSteps(args)
		if err != nil {
			return err
		}
		return withMigrator(func(m *db.Migrator) error {
			if err := m.Down(steps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rolled back %d migration(s)\n", steps)
			return nil
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(func(m *db.Migrator) error {
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version: %d, dirty: %t\n", version, dirty)
			return nil
		})
	},
}

var migrateForceCmd = &cobra.Command{
	Use:   "force VERSION",
	Short: "Set the schema version without running migrations, clearing the dirty flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.Atoi(args[0])
		if err != nil || version < 0 {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return withMigrator(func(m *db.Migrator) error {
			if err := m.Force(version); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Forced version %d\n", version)
			return nil
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd, migrateForceCmd)
	rootCmd.AddCommand(migrateCmd)
}

// parseSteps reads the optional rollback count.
func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(args[0])
	if err != nil || steps < 1 {
		return 0, fmt.Errorf("invalid step count %q: must be a positive integer", args[0])
	}
	return steps, nil
}

func databaseURL() (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.DatabaseURL == "" {
		return "", fmt.Errorf("DATABASE_URL (or user/password/host/port/dbname) is required")
	}
	return cfg.DatabaseURL, nil
}

func withMigrator(fn func(m *db.Migrator) error) (err error) {
	url, err := databaseURL()
	if err != nil {
		return err
	}
	m, err := db.NewMigrator(url)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := m.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(m)
}
