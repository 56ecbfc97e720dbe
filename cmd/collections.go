package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/advisorlane/advisor-admin/internal/collection"
	"github.com/advisorlane/advisor-admin/internal/filter"
)

// collectionsCmd lists the managed collections and their capabilities.
var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List the managed collections",
	Run:   runCollections,
}

func init() {
	rootCmd.AddCommand(collectionsCmd)
}

func runCollections(cmd *cobra.Command, args []string) {
	for _, id := range collection.All() {
		spec := collection.MustSpec(id)

		filters := make([]string, 0, len(spec.Filters))
		for _, f := range spec.Filters {
			filters = append(filters, f.Name)
		}
		ops := make([]string, 0, len(spec.Ops))
		for _, op := range spec.Ops {
			ops = append(ops, op.String())
		}

		fmt.Printf("%s\n", id)
		fmt.Printf("    endpoint:  %s\n", spec.Path)
		fmt.Printf("    filters:   %s\n", orNone(strings.Join(filters, ", ")))
		fmt.Printf("    sorts:     %s\n", orNone(strings.Join(filter.SortKeys(spec), ", ")))
		fmt.Printf("    ops:       %s\n", orNone(strings.Join(ops, ", ")))
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
