package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hrerp/internal/domain/auth"
	"hrerp/internal/platform/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for local testing",
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, _ := cmd.Flags().GetString("secret")
		tenant, _ := cmd.Flags().GetString("tenant")
		user, _ := cmd.Flags().GetString("user")
		role, _ := cmd.Flags().GetString("role")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		if secret == "" {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			secret = cfg.JWTSecret
		}
		if strings.TrimSpace(secret) == "" {
			return fmt.Errorf("no signing secret: pass --secret or set JWT_SECRET")
		}
		if tenant == "" || user == "" {
			return fmt.Errorf("--tenant and --user are required")
		}

		token, err := auth.GenerateToken(secret, auth.Claims{UserID: user, TenantID: tenant, RoleName: role}, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("secret", "", "HMAC secret (defaults to JWT_SECRET)")
	tokenCmd.Flags().String("tenant", "", "Tenant id")
	tokenCmd.Flags().String("user", "", "User id")
	tokenCmd.Flags().String("role", auth.RoleEmployee, "Role name")
	tokenCmd.Flags().Duration("ttl", time.Hour, "Token lifetime")
}
