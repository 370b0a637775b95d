package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simaogato/assetboard-backend/internal/domain"
)

var deleteComments bool

var deleteCmd = &cobra.Command{
	Use:   "delete ROW...",
	Short: "Delete snapshots (or comments) by row number",
	Long: `Delete one or more rows. Rows are removed from the highest number
down, so the numbers shown by "assetctl snapshots" stay valid for the
whole batch. Rows that no longer exist are skipped.

Examples:
  assetctl delete 4 7
  assetctl delete --comments 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteComments, "comments", false, "delete rows of the Comments table")
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := getContext(cmd)

	ids := make([]domain.RowID, 0, len(args))
	for _, arg := range args {
		id, err := domain.ParseRowID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	if deleteComments {
		for _, id := range domain.DeletionOrder(ids) {
			if err := commentService.Delete(ctx, id); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), FormatError(fmt.Sprintf("Failed to delete comment row %s", id)))
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), FormatSuccess("Comments deleted"))
		return nil
	}

	deleted, err := assetService.Delete(ctx, ids)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), FormatError(fmt.Sprintf("Deleted %d rows before failing", deleted)))
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), FormatSuccess(fmt.Sprintf("Deleted %d of %d rows", deleted, len(ids))))
	return nil
}
