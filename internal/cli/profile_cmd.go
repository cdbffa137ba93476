package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/planpush/planpush/internal/cli/formatter"
	"github.com/planpush/planpush/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage connection profiles",
	}

	cmd.AddCommand(
		newProfileAddCmd(app),
		newProfileListCmd(app),
		newProfileUseCmd(app),
		newProfileRemoveCmd(app),
	)

	return cmd
}

func newProfileAddCmd(app *App) *cobra.Command {
	var name, org, project, token, areaPath, iteration string

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Add a connection profile",
		Long: `Store a named connection to one organization/project pair.

With a terminal attached and no flags, an interactive form collects the
values. The token may be left empty and supplied per run through
PLANPUSH_AZDO_TOKEN instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				name = args[0]
			}

			if app.interactive() && (org == "" || project == "") {
				if err := runProfileForm(&name, &org, &project, &token, &areaPath, &iteration); err != nil {
					return err
				}
			}

			p := &domain.Profile{
				Name:         name,
				Organization: org,
				Project:      project,
				Token:        token,
				AreaPath:     areaPath,
				Iteration:    iteration,
			}
			if err := app.Profiles.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added profile %s (%s/%s)\n", p.Name, p.Organization, p.Project)
			return nil
		},
	}

	cmd.Flags().StringVar(&org, "org", "", "Organization name")
	cmd.Flags().StringVar(&project, "project", "", "Project name")
	cmd.Flags().StringVar(&token, "token", "", "Personal access token")
	cmd.Flags().StringVar(&areaPath, "area", "", "Default area path")
	cmd.Flags().StringVar(&iteration, "iteration", "", "Default iteration path")

	return cmd
}

func runProfileForm(name, org, project, token, areaPath, iteration *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Profile name").
				Placeholder("work").
				Value(name).
				Validate(requireValue("profile name")),
			huh.NewInput().
				Title("Organization").
				Placeholder("contoso").
				Value(org).
				Validate(requireValue("organization")),
			huh.NewInput().
				Title("Project").
				Placeholder("Webshop").
				Value(project).
				Validate(requireValue("project")),
			huh.NewInput().
				Title("Personal access token (optional)").
				EchoMode(huh.EchoModePassword).
				Value(token),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Default area path (optional)").
				Value(areaPath),
			huh.NewInput().
				Title("Default iteration path (optional)").
				Value(iteration),
		),
	).WithTheme(planpushHuhTheme()).WithShowHelp(false)

	return form.Run()
}

func requireValue(label string) func(string) error {
	return func(v string) error {
		if v == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func newProfileListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := app.Profiles.List(context.Background())
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No profiles stored. Add one with: planpush profile add")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfileList(profiles))
			return nil
		},
	}
}

func newProfileUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use NAME",
		Short: "Make a profile active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Profiles.Use(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active profile: %s\n", args[0])
			return nil
		},
	}
}

func newProfileRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Delete a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Profiles.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed profile %s\n", args[0])
			return nil
		},
	}
}
