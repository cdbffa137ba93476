package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/planpush/planpush/internal/cli/formatter"
	"github.com/planpush/planpush/internal/publisher"
	"github.com/planpush/planpush/internal/service"
	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var (
		dryRun    bool
		areaPath  string
		iteration string
		caseType  string
	)

	cmd := &cobra.Command{
		Use:   "publish FILE",
		Short: "Publish a plan file to the remote tracker",
		Long: `Validate a plan file and create its test plan, suites, cases, and work
items on the remote tracker, in dependency order.

The run stops at the first failure; items created before the failure
remain on the server. Use --dry-run to preview the tree without sending
anything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			opts := service.PublishOptions{
				DryRun:    dryRun,
				AreaPath:  areaPath,
				Iteration: iteration,
				CaseType:  caseType,
			}

			out := cmd.OutOrStdout()

			if dryRun {
				result, err := app.Publish.PublishFile(ctx, args[0], opts)
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatDryRun(result.Preview, result.NodeCount))
				return nil
			}

			var result *service.PublishResult
			var err error
			if app.interactive() {
				result, err = runPublishWithProgress(ctx, app, args[0], opts)
			} else {
				opts.Progress = lineProgress{out: out}
				result, err = app.Publish.PublishFile(ctx, args[0], opts)
			}

			if err != nil {
				created, total := 0, 0
				if result != nil {
					created, total = result.CreatedCount, result.NodeCount
				}
				fmt.Fprint(out, formatter.FormatPublishFailure(err, created, total))
				return err
			}

			fmt.Fprint(out, formatter.FormatPublishResult(result.Root, result.CreatedCount, result.NodeCount))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and preview without creating anything")
	cmd.Flags().StringVar(&areaPath, "area", "", "Area path override for this run")
	cmd.Flags().StringVar(&iteration, "iteration", "", "Iteration path override for this run")
	cmd.Flags().StringVar(&caseType, "case-type", "", "Work item type used for test cases")

	return cmd
}

// lineProgress prints one line per created node; used when no TTY is
// attached.
type lineProgress struct {
	out io.Writer
}

func (p lineProgress) OnNodeComplete(event publisher.NodeEvent) {
	fmt.Fprintf(p.out, "%s %s #%d (%s)\n", event.Status, event.Title, event.RemoteID, event.Kind)
}
