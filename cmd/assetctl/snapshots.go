package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/simaogato/assetboard-backend/internal/domain"
	"github.com/simaogato/assetboard-backend/internal/report"
)

var snapshotsView string

var snapshotsCmd = &cobra.Command{
	Use:     "snapshots",
	Aliases: []string{"ls"},
	Short:   "List asset snapshots with their row numbers",
	Long: `List every stored snapshot, oldest first. The row column is the
value to pass to "assetctl delete".`,
	Args: cobra.NoArgs,
	RunE: runSnapshots,
}

func init() {
	snapshotsCmd.Flags().StringVarP(&snapshotsView, "view", "v", string(domain.ViewAll), "All, Husband, Wife or Joint")
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	view, err := domain.ParseViewMode(snapshotsView)
	if err != nil {
		return err
	}

	snapshots, err := assetService.List(getContext(cmd))
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), FormatError("Failed to load snapshots"))
		return err
	}

	rows := make([][]string, 0, len(snapshots))
	for _, s := range snapshots {
		if !view.Includes(s.Owner) {
			continue
		}
		rows = append(rows, []string{
			s.RowID.String(),
			s.Date,
			string(s.Owner),
			report.FormatAmount(s.TotalAsset, cfg.Currency),
			report.FormatAmount(s.LongLoan, cfg.Currency),
			report.FormatAmount(s.NetWorth, cfg.Currency),
			s.Memo,
		})
	}

	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), FormatInfo("No snapshots found"))
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleMuted).
		Headers("Row", "Date", "Owner", "Total Asset", "Long Loan", "Net Worth", "Memo").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleTableHeader
			}
			return StyleTableCell
		})

	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}
