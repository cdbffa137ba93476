package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/planpush/planpush/internal/cli/formatter"
	"github.com/planpush/planpush/internal/importer"
	"github.com/planpush/planpush/internal/intelligence"
	"github.com/planpush/planpush/internal/service"
	"github.com/spf13/cobra"
)

func newDraftCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "draft DESCRIPTION",
		Short: "Draft a plan from a plain-language description",
		Long: `Start a conversational session that turns a description into a
publishable plan draft. When the draft is ready you can publish it
directly, save it to a file, or keep refining it.

Requires PLANPUSH_LLM_ENABLED=true and a running Ollama instance.

Examples:
  planpush draft "regression plan for the checkout flow"
  planpush draft "epic with stories for the Q3 search rework" --out plan.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Draft == nil {
				return fmt.Errorf("LLM features are disabled. Write a plan file by hand and run:\n" +
					"  planpush publish plan.json\n\n" +
					"Enable drafting with: PLANPUSH_LLM_ENABLED=true")
			}

			reader := bufio.NewReader(cmd.InOrStdin())
			return runDraftLoop(app, cmd, reader, args[0], outPath)
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Write the accepted draft to this file instead of publishing")

	return cmd
}

// runDraftLoop drives the conversational drafting session.
func runDraftLoop(app *App, cmd *cobra.Command, in *bufio.Reader, description, outPath string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	fmt.Fprint(out, formatter.FormatDraftWelcome())

	stopSpinner := formatter.StartSpinner("Building your plan draft...")
	conv, err := app.Draft.Start(ctx, description)
	stopSpinner()
	if err != nil {
		return fmt.Errorf("failed to start plan draft: %w", err)
	}

	for {
		if conv.Status == intelligence.DraftStatusReady {
			fmt.Fprint(out, formatter.FormatDraftReview(conv))
			fmt.Fprint(out, "\n[p]ublish  [s]ave  [e]dit  [c]ancel: ")

			input, err := readDraftLine(in)
			if err != nil {
				return nil
			}

			switch strings.ToLower(input) {
			case "p", "publish":
				return publishDraft(app, cmd, conv.Draft)
			case "s", "save":
				return saveDraft(cmd, in, conv.Draft, outPath)
			case "c", "cancel":
				fmt.Fprintln(out, "Draft cancelled.")
				return nil
			case "e", "edit":
				fmt.Fprint(out, "\nWhat should change?\n> ")
			default:
				fmt.Fprintln(out, "Invalid option.")
				continue
			}
		} else {
			fmt.Fprint(out, formatter.FormatDraftTurn(conv))
			fmt.Fprint(out, "\n> ")
		}

		input, err := readDraftLine(in)
		if err != nil {
			return nil
		}
		if strings.EqualFold(input, "cancel") {
			fmt.Fprintln(out, "Draft cancelled.")
			return nil
		}
		if input == "" {
			continue
		}

		stopSpinner := formatter.StartSpinner("Thinking...")
		conv, err = app.Draft.NextTurn(ctx, conv, input)
		stopSpinner()
		if err != nil {
			return fmt.Errorf("draft turn failed: %w", err)
		}
	}
}

func publishDraft(app *App, cmd *cobra.Command, draft *importer.PlanSchema) error {
	if draft == nil {
		return fmt.Errorf("the draft is empty")
	}
	result, err := app.Publish.PublishSchema(context.Background(), draft, service.PublishOptions{})
	if err != nil {
		created, total := 0, 0
		if result != nil {
			created, total = result.CreatedCount, result.NodeCount
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPublishFailure(err, created, total))
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPublishResult(result.Root, result.CreatedCount, result.NodeCount))
	return nil
}

func saveDraft(cmd *cobra.Command, in *bufio.Reader, draft *importer.PlanSchema, outPath string) error {
	if draft == nil {
		return fmt.Errorf("the draft is empty")
	}
	if outPath == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Write draft to: ")
		input, err := readDraftLine(in)
		if err != nil || input == "" {
			return fmt.Errorf("no output path given")
		}
		outPath = input
	}

	data, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing draft: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Draft written to %s. Publish it with: planpush publish %s\n", outPath, outPath)
	return nil
}

// readDraftLine reads one trimmed line, tolerating \r\n endings.
func readDraftLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", io.EOF
	}
	return strings.TrimSpace(line), nil
}
