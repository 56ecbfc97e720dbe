package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/advisorlane/advisor-admin/internal/collection"
	"github.com/advisorlane/advisor-admin/internal/notify"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh <collection>",
	Short: "Refetch a collection from the remote API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := collection.ParseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctrl := a.controllerFor(id, notify.NewCLI())
		return ctrl.Refresh(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
