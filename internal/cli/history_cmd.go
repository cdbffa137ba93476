package cli

import (
	"context"
	"fmt"

	"github.com/planpush/planpush/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [ID]",
		Short: "Show recent publish runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				rec, err := app.History.GetByID(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatHistoryRecord(rec))
				return nil
			}

			records, err := app.History.ListRecent(ctx, limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No publish runs recorded yet.")
				return nil
			}
			fmt.Fprint(out, formatter.FormatHistory(records))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")

	return cmd
}
