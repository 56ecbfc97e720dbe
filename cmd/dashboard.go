package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/advisorlane/advisor-admin/internal/collection"
	"github.com/advisorlane/advisor-admin/internal/controller"
	"github.com/advisorlane/advisor-admin/internal/notify"
	"github.com/advisorlane/advisor-admin/internal/settings"
	"github.com/advisorlane/advisor-admin/internal/tui/state"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive admin dashboard",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	notes := notify.NewBuffer(nil)
	ctrls := make(map[collection.ID]*controller.Controller, len(collection.All()))
	for _, id := range collection.All() {
		ctrls[id] = a.controllerFor(id, notes)
	}

	model := state.NewModel(ctrls, notes)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return err
	}

	// Persist the views the operator left behind
	for id, ctrl := range ctrls {
		a.presets[id.String()] = settings.FromState(ctrl.FilterState())
	}
	return settings.Save(a.presets)
}
