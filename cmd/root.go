// Package cmd implements the advisor-admin command line interface.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/advisorlane/advisor-admin/internal/config"
	"github.com/advisorlane/advisor-admin/internal/logging"
	"github.com/advisorlane/advisor-admin/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "advisor-admin",
	Short: "Terminal admin console for the advisor marketplace",
	Long: `Terminal admin console for the advisor marketplace.

Browses, filters, and mutates the marketplace's admin collections
(firm deals, firm parameters, firm profiles, users, blog posts, news
articles, practice listings) against the remote admin API, with
synthetic fallback data when a collection is empty.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		if err := logging.InitGlobal(); err != nil {
			// Logging is best-effort; the console still works without it
			logging.ShutdownGlobal()
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.ShutdownGlobal()
	},
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = version.String()
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}
