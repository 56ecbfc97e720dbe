package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/advisorlane/advisor-admin/internal/collection"
	"github.com/advisorlane/advisor-admin/internal/gateway"
	"github.com/advisorlane/advisor-admin/internal/history"
	"github.com/advisorlane/advisor-admin/internal/logging"
	"github.com/advisorlane/advisor-admin/internal/notify"
)

var createCmd = &cobra.Command{
	Use:   "create <collection> <field=value>...",
	Short: "Create a record in a collection",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMutate(args[0], collection.OpCreate, "", args[1:])
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <collection> <id> <field=value>...",
	Short: "Update a record in a collection",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMutate(args[0], collection.OpUpdate, args[1], args[2:])
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <collection> <id>",
	Short: "Delete a record from a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMutate(args[0], collection.OpDelete, args[1], nil)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
}

// runMutate executes one mutation directly against the gateway and
// records it in the local history log. CLI mutations skip the cache:
// the next list or dashboard load refetches.
func runMutate(collectionArg string, op collection.Op, recordID string, pairs []string) error {
	id, err := collection.ParseID(collectionArg)
	if err != nil {
		return err
	}
	fields, err := parseFieldArgs(pairs)
	if err != nil {
		return err
	}

	var m collection.Mutation
	switch op {
	case collection.OpCreate:
		m = collection.NewCreate(fields)
	case collection.OpUpdate:
		m = collection.NewUpdate(recordID, fields)
	case collection.OpDelete:
		m = collection.NewDelete(recordID)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	spec := collection.MustSpec(id)
	notes := notify.NewCLI()

	outcome, err := a.gateway.Mutate(context.Background(), spec, m)
	recordMutationHistory(a, spec, m, outcome, err)
	if err != nil {
		if gateway.IsKind(err, gateway.KindNotImplemented) {
			notes.Notify("Not supported", err.Error(), notify.KindWarning)
		}
		return err
	}

	notes.Notify(fmt.Sprintf("%s %s record %s", mutationVerb(op), id, outcome.ID()),
		"", notify.KindSuccess)
	return nil
}

func mutationVerb(op collection.Op) string {
	switch op {
	case collection.OpCreate:
		return "Created"
	case collection.OpUpdate:
		return "Updated"
	default:
		return "Deleted"
	}
}

func recordMutationHistory(a *app, spec collection.Spec, m collection.Mutation, outcome collection.Record, err error) {
	if a.store == nil {
		return
	}
	e := history.Entry{
		Collection: spec.ID.String(),
		Op:         m.Op.String(),
		RecordID:   m.ID,
		Outcome:    history.OutcomeSuccess,
	}
	if err != nil {
		e.Outcome = history.OutcomeFailure
		e.Detail = err.Error()
	} else {
		if e.RecordID == "" {
			e.RecordID = outcome.ID()
		}
		e.Detail = "record " + outcome.ID()
	}
	if recErr := a.store.Record(e); recErr != nil {
		logging.Warn("failed to record mutation history", "error", recErr)
	}
}

// parseFieldArgs turns key=value arguments into mutation fields.
// Integer values are sent as integers, everything else as strings.
func parseFieldArgs(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	fields := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q, want field=value", pair)
		}
		if n, err := strconv.Atoi(value); err == nil {
			fields[key] = n
		} else {
			fields[key] = value
		}
	}
	return fields, nil
}
