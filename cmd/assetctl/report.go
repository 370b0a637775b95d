package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simaogato/assetboard-backend/internal/domain"
	"github.com/simaogato/assetboard-backend/internal/report"
)

var (
	reportView   string
	reportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the dashboard charts to an HTML file",
	Long: `Render net worth, change, asset mix and distribution charts for one
view into a standalone HTML page.

Examples:
  assetctl report
  assetctl report --view Joint -o joint.html`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportView, "view", "v", string(domain.ViewAll), "All, Husband, Wife or Joint")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "assetboard-report.html", "output file")
}

func runReport(cmd *cobra.Command, args []string) error {
	view, err := domain.ParseViewMode(reportView)
	if err != nil {
		return err
	}

	res, err := assetService.Dashboard(getContext(cmd), view)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), FormatError("Failed to load snapshots"))
		return err
	}

	f, err := os.Create(reportOutput)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", reportOutput, err)
	}
	defer f.Close()

	if err := report.WriteHTML(f, res); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), FormatSuccess(fmt.Sprintf("Wrote %d periods to %s", len(res.Periods), reportOutput)))
	return nil
}
