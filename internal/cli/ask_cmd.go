package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/planpush/planpush/internal/cli/formatter"
	"github.com/planpush/planpush/internal/intelligence"
	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ask QUESTION",
		Short: "Ask how to do something with planpush",
		Example: `  planpush ask "how do I publish a plan to a different project?"
  planpush ask "what does a type mapping do?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			commands := collectCommandInfo(cmd.Root())

			var answer *intelligence.HelpAnswer
			if app.Help != nil {
				var err error
				answer, err = app.Help.Ask(context.Background(), question, commands)
				if err != nil {
					return err
				}
			} else {
				answer = intelligence.DeterministicHelp(question, commands)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatHelpAnswer(answer))
			return nil
		},
	}
}

// collectCommandInfo walks the command tree and flattens runnable commands.
func collectCommandInfo(root *cobra.Command) []intelligence.HelpCommandInfo {
	var infos []intelligence.HelpCommandInfo
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		if c.Runnable() && !c.Hidden {
			infos = append(infos, intelligence.HelpCommandInfo{
				FullPath: c.CommandPath(),
				Short:    c.Short,
			})
		}
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(root)
	return infos
}

func formatHelpAnswer(answer *intelligence.HelpAnswer) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(answer.Answer)
	b.WriteString("\n")

	if len(answer.Examples) > 0 {
		b.WriteString("\n")
		for _, ex := range answer.Examples {
			b.WriteString("  $ ")
			b.WriteString(formatter.Bold(ex.Command))
			if ex.Description != "" {
				b.WriteString("\n    ")
				b.WriteString(formatter.Dim(ex.Description))
			}
			b.WriteString("\n")
		}
	}
	if len(answer.NextCommands) > 0 {
		b.WriteString("\n")
		b.WriteString(formatter.Dim("See also: " + strings.Join(answer.NextCommands, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}
