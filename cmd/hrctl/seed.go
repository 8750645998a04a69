package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hrerp/internal/platform/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a demo tenant with a small org",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("tenant-name")
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("--tenant-name is required")
		}

		ctx := cmd.Context()
		_, pool, err := connect(ctx, cmd)
		if err != nil {
			return err
		}
		defer pool.Close()

		tenantID, err := db.Seed(ctx, pool, name)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tenantID)
		return nil
	},
}

func init() {
	seedCmd.Flags().String("tenant-name", "Demo", "Tenant to create or reuse")
}
