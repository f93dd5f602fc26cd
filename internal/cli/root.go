package cli

import (
	"context"

	"github.com/alexanderramin/studyplan/internal/config"
	"github.com/alexanderramin/studyplan/internal/contract"
	"github.com/alexanderramin/studyplan/internal/logger"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Plans   service.PlanService
	Exports service.ExportService
	Config  config.Config
	Logger  *logger.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// Wizard and Editor replace the huh wizard and the override editor.
	// Tests set them; nil uses the terminal implementations.
	Wizard func(ctx context.Context, req *contract.GenerateRequest) error
	Editor func(ctx context.Context, plan *contract.PlanResponse) (*contract.PlanResponse, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runWizard(ctx context.Context, req *contract.GenerateRequest) error {
	if a.Wizard != nil {
		return a.Wizard(ctx, req)
	}
	return runPlanWizard(ctx, req)
}

func (a *App) runEditor(ctx context.Context, plan *contract.PlanResponse) (*contract.PlanResponse, error) {
	if a.Editor != nil {
		return a.Editor(ctx, plan)
	}
	return runOverrideEditor(ctx, a.Plans, plan)
}

// NewRootCmd creates the top-level "studyplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "studyplan",
		Short:         "Weekly study-hour planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(app),
		newServeCmd(app),
		newFormatsCmd(app),
	)

	return root
}
