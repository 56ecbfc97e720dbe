package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/advisorlane/advisor-admin/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the advisor-admin version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("advisor-admin v%s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
