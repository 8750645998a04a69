package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"hrerp/internal/platform/config"
	"hrerp/internal/platform/db"
)

var rootCmd = &cobra.Command{
	Use:           "hrctl",
	Short:         "Operator tool for the HR analytics service",
	Long:          "hrctl manages the hrerp schema and demo data, prints org charts, renders workforce reports and mints local test tokens.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file (overrides CONFIG_FILE)")
	rootCmd.PersistentFlags().String("database-url", "", "Postgres URL (overrides DATABASE_URL)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(orgchartCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(tokenCmd)
}

// loadConfig applies --config and --database-url over the usual
// file + environment resolution.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := os.Setenv("CONFIG_FILE", path); err != nil {
			return config.Config{}, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if url, _ := cmd.Flags().GetString("database-url"); strings.TrimSpace(url) != "" {
		cfg.DatabaseURL = url
	}
	return cfg, cfg.Validate()
}

func connect(ctx context.Context, cmd *cobra.Command) (config.Config, *pgxpool.Pool, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return config.Config{}, nil, err
	}
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, pool, nil
}
