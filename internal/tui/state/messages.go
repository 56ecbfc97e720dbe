// Package state provides the BubbleTea model for the admin dashboard.
package state

import (
	"github.com/advisorlane/advisor-admin/internal/collection"
)

// visibleLoadedMsg is sent when a collection's visible records finish
// loading. Results for a collection that is no longer displayed are
// dropped by Update.
type visibleLoadedMsg struct {
	id       collection.ID
	records  []collection.Record
	snapshot collection.Snapshot
	err      error
}

// mutationDoneMsg is sent when a dialog submit or delete completes.
type mutationDoneMsg struct {
	id  collection.ID
	err error
}

// statusClearMsg clears the transient status line.
type statusClearMsg struct{}
