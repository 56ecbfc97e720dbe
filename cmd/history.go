package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/advisorlane/advisor-admin/internal/collection"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the local log of mutations issued from this machine",
	RunE:  runHistory,
}

var (
	historyCollection string
	historyLimit      int
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyCollection, "collection", "", "Only show entries for one collection")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyCollection != "" {
		if _, err := collection.ParseID(historyCollection); err != nil {
			return err
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if a.store == nil {
		return fmt.Errorf("history is disabled (set history_enabled = true)")
	}

	entries, err := a.store.List(historyCollection, historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no recorded mutations")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %-8s %-18s %-8s %s", e.Timestamp, e.Outcome, e.Collection, e.Op, e.RecordID)
		if e.Outcome != "success" && e.Detail != "" {
			line += "  (" + e.Detail + ")"
		}
		fmt.Println(line)
	}
	return nil
}
