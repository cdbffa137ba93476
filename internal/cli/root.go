package cli

import (
	"github.com/planpush/planpush/internal/intelligence"
	"github.com/planpush/planpush/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Profiles service.ProfileService
	Mappings service.MappingService
	Publish  service.PublishService
	History  service.HistoryService

	// Intelligence services; nil when the LLM is disabled.
	Draft intelligence.PlanDraftService
	Steps intelligence.StepsDraftService
	Help  intelligence.HelpService

	// IsInteractive reports whether stdin/stdout are attached to a
	// terminal. Non-interactive runs skip forms and progress displays.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "planpush" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "planpush",
		Short:         "Publish test plans and work item trees to Azure DevOps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPublishCmd(app),
		newProfileCmd(app),
		newMappingCmd(app),
		newDraftCmd(app),
		newHistoryCmd(app),
		newAskCmd(app),
	)

	return root
}
