package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hrerp/internal/app/server"
	"hrerp/internal/domain/reports"
	"hrerp/internal/domain/stats"
	"hrerp/internal/platform/pdf"
)

const dateLayout = "2006-01-02"

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render workforce reports",
}

var reportPDFCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Write the workforce dashboard as a PDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant, _ := cmd.Flags().GetString("tenant")
		if strings.TrimSpace(tenant) == "" {
			return fmt.Errorf("--tenant is required")
		}
		rawFrom, _ := cmd.Flags().GetString("from")
		rawTo, _ := cmd.Flags().GetString("to")
		rawPeriod, _ := cmd.Flags().GetString("period")
		out, _ := cmd.Flags().GetString("out")

		from, to, err := reportRange(rawFrom, rawTo, time.Now().UTC())
		if err != nil {
			return err
		}
		period, err := stats.ParsePeriod(rawPeriod)
		if err != nil {
			return err
		}
		if out == "" {
			out = "workforce-" + to.Format(dateLayout) + ".pdf"
		}

		ctx := cmd.Context()
		cfg, pool, err := connect(ctx, cmd)
		if err != nil {
			return err
		}
		defer pool.Close()

		dashboard, err := server.NewServices(pool, cfg).Reports.Dashboard(ctx, tenant, from, to, period)
		if err != nil {
			return err
		}

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := pdf.Render(f, reports.WorkforceDocument(dashboard)); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
		return nil
	},
}

func init() {
	reportPDFCmd.Flags().String("tenant", "", "Tenant id")
	reportPDFCmd.Flags().String("from", "", "Range start (YYYY-MM-DD, default 90 days before --to)")
	reportPDFCmd.Flags().String("to", "", "Range end (YYYY-MM-DD, default today)")
	reportPDFCmd.Flags().String("period", "week", "Attendance bucket: day, week or month")
	reportPDFCmd.Flags().String("out", "", "Output file")

	reportCmd.AddCommand(reportPDFCmd)
}

func reportRange(rawFrom, rawTo string, now time.Time) (time.Time, time.Time, error) {
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if rawTo != "" {
		parsed, err := time.Parse(dateLayout, rawTo)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--to: %w", err)
		}
		to = parsed
	}
	from := to.AddDate(0, 0, -90)
	if rawFrom != "" {
		parsed, err := time.Parse(dateLayout, rawFrom)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
		}
		from = parsed
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("--from %s is after --to %s", from.Format(dateLayout), to.Format(dateLayout))
	}
	return from, to, nil
}
