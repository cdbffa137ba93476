package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/planpush/planpush/internal/cli/formatter"
	"github.com/planpush/planpush/internal/domain"
	"github.com/spf13/cobra"
)

func newMappingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapping",
		Short: "Manage work item type mappings",
		Long: `Map friendly type aliases used in plan files ("bug", "story") to the
remote tracker's work item type names, optionally attaching default
fields applied to every item created through the alias.`,
	}

	cmd.AddCommand(
		newMappingSetCmd(app),
		newMappingListCmd(app),
		newMappingRemoveCmd(app),
	)

	return cmd
}

func newMappingSetCmd(app *App) *cobra.Command {
	var fieldFlags []string

	cmd := &cobra.Command{
		Use:   "set ALIAS REMOTE_TYPE",
		Short: "Create or replace a type mapping",
		Example: `  planpush mapping set bug "Bug"
  planpush mapping set story "User Story" --field priority=2 --field tags=imported`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFieldFlags(fieldFlags)
			if err != nil {
				return err
			}

			m := &domain.TypeMapping{
				Alias:         args[0],
				RemoteType:    args[1],
				DefaultFields: fields,
			}
			if err := app.Mappings.Set(context.Background(), m); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Mapped %s -> %s\n", m.Alias, m.RemoteType)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&fieldFlags, "field", nil, "Default field as name=value (repeatable)")

	return cmd
}

func parseFieldFlags(flags []string) ([]domain.Field, error) {
	var fields []domain.Field
	for _, f := range flags {
		name, value, ok := strings.Cut(f, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --field %q: expected name=value", f)
		}
		fields = append(fields, domain.Field{Name: name, Value: value})
	}
	return fields, nil
}

func newMappingListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List type mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			mappings, err := app.Mappings.List(context.Background())
			if err != nil {
				return err
			}
			if len(mappings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No mappings stored. Add one with: planpush mapping set")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMappingList(mappings))
			return nil
		},
	}
}

func newMappingRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ALIAS",
		Short: "Delete a type mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Mappings.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed mapping %s\n", args[0])
			return nil
		},
	}
}
