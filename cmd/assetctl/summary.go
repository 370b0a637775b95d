package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simaogato/assetboard-backend/internal/domain"
	"github.com/simaogato/assetboard-backend/internal/report"
)

var (
	summaryView  string
	summaryStyle string
	summaryWidth int
	summaryRaw   bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show net worth, history and asset mix",
	Long: `Aggregate the snapshots of one view and print the summary.

Examples:
  assetctl summary
  assetctl summary --view Wife
  assetctl summary --raw > summary.md`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryView, "view", "v", string(domain.ViewAll), "All, Husband, Wife or Joint")
	summaryCmd.Flags().StringVar(&summaryStyle, "style", "", "glamour style (dark, light, notty); empty detects the terminal")
	summaryCmd.Flags().IntVar(&summaryWidth, "width", 100, "word wrap width")
	summaryCmd.Flags().BoolVar(&summaryRaw, "raw", false, "print markdown without terminal rendering")
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx := getContext(cmd)

	view, err := domain.ParseViewMode(summaryView)
	if err != nil {
		return err
	}

	res, err := assetService.Dashboard(ctx, view)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), FormatError("Failed to load snapshots"))
		return err
	}

	comments, err := commentService.List(ctx)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), FormatError("Failed to load comments"))
		return err
	}

	markdown := report.SummaryMarkdown(res, comments, cfg.Currency)
	if summaryRaw {
		fmt.Fprint(cmd.OutOrStdout(), markdown)
		return nil
	}

	out, err := report.RenderTerminal(markdown, summaryStyle, summaryWidth)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
