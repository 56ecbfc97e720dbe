package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/advisorlane/advisor-admin/internal/collection"
	"github.com/advisorlane/advisor-admin/internal/colors"
	"github.com/advisorlane/advisor-admin/internal/notify"
	"github.com/advisorlane/advisor-admin/internal/settings"
)

var listCmd = &cobra.Command{
	Use:   "list <collection>",
	Short: "List a collection's records with filters, search, and sort",
	Long: `List a collection's records with filters, search, and sort.

USAGE:
    advisor-admin list <collection> [OPTIONS]

OPTIONS:
    --filter <name=value>   Apply a named filter (repeatable)
    --search <text>         Case-insensitive search over searchable fields
    --sort <key>            Sort key (see 'collections' for valid keys)
    --fields <a,b,c>        Columns to print (default: collection columns)
    --tsv                   Tab-separated output without headers
    --save-preset           Persist the view as the collection's preset

Without flags the collection's saved preset, if any, is applied.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

var (
	listFilters    []string
	listSearch     string
	listSort       string
	listFields     string
	listTSV        bool
	listSavePreset bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringArrayVar(&listFilters, "filter", nil, "Apply a named filter (name=value, repeatable)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Case-insensitive search text")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort key")
	listCmd.Flags().StringVar(&listFields, "fields", "", "Comma-separated columns to print")
	listCmd.Flags().BoolVar(&listTSV, "tsv", false, "Tab-separated output without headers")
	listCmd.Flags().BoolVar(&listSavePreset, "save-preset", false, "Persist the view as the collection's preset")
}

func runList(cmd *cobra.Command, args []string) error {
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
	if cmd.Flags().Changed("filter") || cmd.Flags().Changed("search") || cmd.Flags().Changed("sort") {
		ctrl.ResetFilters()
	}
	for _, f := range listFilters {
		name, value, ok := strings.Cut(f, "=")
		if !ok {
			return fmt.Errorf("invalid --filter %q, want name=value", f)
		}
		if err := ctrl.SetFilter(name, value); err != nil {
			return err
		}
	}
	if listSearch != "" {
		ctrl.SetSearch(listSearch)
	}
	if listSort != "" {
		if err := ctrl.SetSort(listSort); err != nil {
			return err
		}
	}

	records, err := ctrl.Visible(context.Background())
	if err != nil {
		return err
	}

	snap, _ := ctrl.Snapshot(context.Background())
	if !listTSV && snap.Source == collection.SourceSynthetic {
		colors.Warning("remote collection is empty, showing synthetic data")
	}

	printRecords(records, listColumns(collection.MustSpec(id)), listTSV)

	if listSavePreset {
		a.presets[id.String()] = settings.FromState(ctrl.FilterState())
		if err := settings.Save(a.presets); err != nil {
			return err
		}
		colors.Success("Saved view preset for " + id.String())
	}
	return nil
}

// listColumns picks the printed columns: the --fields flag, or the
// collection's id plus searchable and sortable fields.
func listColumns(spec collection.Spec) []string {
	if listFields != "" {
		fields := strings.Split(listFields, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		return fields
	}

	columns := []string{collection.FieldID}
	seen := map[string]bool{collection.FieldID: true}
	for _, f := range append(append([]string{}, spec.SearchFields...), spec.SortFields...) {
		if !seen[f] {
			columns = append(columns, f)
			seen[f] = true
		}
	}
	if spec.DateField != "" && !seen[spec.DateField] {
		columns = append(columns, spec.DateField)
	}
	return columns
}

func printRecords(records []collection.Record, columns []string, tsv bool) {
	if tsv {
		for _, r := range records {
			cells := make([]string, len(columns))
			for i, col := range columns {
				cells[i], _ = r.Str(col)
			}
			fmt.Println(strings.Join(cells, "\t"))
		}
		return
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		cells := make([]string, len(columns))
		for i, col := range columns {
			v, _ := r.Str(col)
			cells[i] = v
			if len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
		rows = append(rows, cells)
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], c)
		}
		fmt.Println(strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(columns)
	for _, row := range rows {
		printRow(row)
	}
	fmt.Printf("\n%d record(s)\n", len(records))
}
