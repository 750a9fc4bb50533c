package cli

import (
	"github.com/spf13/cobra"

	"sitebudget/internal/remote"
	"sitebudget/internal/service"
)

// App holds references to the service interfaces used by CLI commands.
type App struct {
	Templates service.TemplateService
	Drafts    service.DraftService
	Submit    service.SubmitService
	Projects  service.ProjectService

	// Names is nil when no remote endpoint is configured.
	Names *remote.NameChecker

	// IsInteractive reports whether stdin is a terminal; destructive
	// commands only prompt when it is.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "sitebudget" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "sitebudget",
		Short: "Construction project budget authoring and submission",
	}

	root.AddCommand(
		newTemplateCmd(app),
		newDraftCmd(app),
		newValidateCmd(app),
		newSubmitCmd(app),
		newProjectCmd(app),
	)

	return root
}
