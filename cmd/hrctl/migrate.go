package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hrerp/internal/platform/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		if steps < 1 {
			return fmt.Errorf("--steps must be at least 1")
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := db.Rollback(cfg.DatabaseURL, steps); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		version, dirty, err := db.Version(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		if dirty {
			fmt.Fprintf(cmd.OutOrStdout(), "%d (dirty)\n", version)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), version)
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().Int("steps", 1, "Number of migrations to roll back")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)
}
