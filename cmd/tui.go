package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kimchoi-jjiggae/coachMe/internal/ui"
)

// tuiCmd launches the Bubble Tea TUI.
var tuiCmd = &cobra.Command{
	Use:         "tui",
	Short:       "Open the terminal journal",
	Annotations: map[string]string{withReminders: "true"},
	Args:        cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
		theme := ui.ThemeByName(cfg.Theme)
		return ui.Run(cmd.Context(), a.svc, ui.Options{Theme: &theme, Location: cfg.Location()})
	}),
}
