package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"hrerp/internal/app/server"
	"hrerp/internal/domain/org"
)

var orgchartCmd = &cobra.Command{
	Use:   "orgchart",
	Short: "Print a tenant's reporting tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant, _ := cmd.Flags().GetString("tenant")
		if strings.TrimSpace(tenant) == "" {
			return fmt.Errorf("--tenant is required")
		}
		depth, _ := cmd.Flags().GetInt("depth")

		ctx := cmd.Context()
		cfg, pool, err := connect(ctx, cmd)
		if err != nil {
			return err
		}
		defer pool.Close()

		svc := server.NewServices(pool, cfg)
		chart, err := svc.Org.Chart(ctx, tenant)
		var cycle *org.CycleError
		if err != nil && !errors.As(err, &cycle) {
			return err
		}
		printChart(cmd.OutOrStdout(), chart, depth)
		if cycle != nil {
			return cycle
		}
		return nil
	},
}

func init() {
	orgchartCmd.Flags().String("tenant", "", "Tenant id")
	orgchartCmd.Flags().Int("depth", 0, "Stop printing below this depth (0 prints everything)")
}

// printChart writes one line per node, indented two spaces per level.
func printChart(w io.Writer, chart *org.Chart, maxDepth int) {
	if chart == nil {
		return
	}
	chart.Walk(func(n *org.Node) bool {
		if maxDepth > 0 && n.Depth >= maxDepth {
			return true
		}
		line := strings.Repeat("  ", n.Depth) + n.Name
		if n.Position != "" {
			line += " (" + n.Position + ")"
		}
		line += " [" + n.Department + "]"
		if n.Headcount > 0 {
			line += fmt.Sprintf(" headcount=%d", n.Headcount)
		}
		if n.ManagerMissing {
			line += " manager=" + org.UnknownManager
		}
		fmt.Fprintln(w, line)
		return true
	})
}
