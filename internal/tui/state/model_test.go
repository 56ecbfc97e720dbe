package state

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisorlane/advisor-admin/internal/cache"
	"github.com/advisorlane/advisor-admin/internal/collection"
	"github.com/advisorlane/advisor-admin/internal/controller"
	"github.com/advisorlane/advisor-admin/internal/notify"
)

type fakeFetcher struct {
	records map[collection.ID][]collection.Record
}

func (f *fakeFetcher) Fetch(_ context.Context, spec collection.Spec) ([]collection.Record, error) {
	return f.records[spec.ID], nil
}

type fakeMutator struct {
	outcome collection.Record
	err     error
}

func (f *fakeMutator) Mutate(_ context.Context, _ collection.Spec, _ collection.Mutation) (collection.Record, error) {
	return f.outcome, f.err
}

type fakeGenerator struct{}

func (fakeGenerator) Generate(id collection.ID, count int) []collection.Record {
	records := make([]collection.Record, 0, count)
	for i := 0; i < count; i++ {
		records = append(records, collection.Record{"id": "syn", "status": "Active"})
	}
	return records
}

func newTestModel(t *testing.T, records map[collection.ID][]collection.Record) (*Model, *fakeMutator) {
	t.Helper()
	coord := cache.New(&fakeFetcher{records: records}, fakeGenerator{})
	mut := &fakeMutator{}
	notes := notify.NewBuffer(nil)

	ctrls := make(map[collection.ID]*controller.Controller)
	for _, id := range collection.All() {
		ctrls[id] = controller.New(collection.MustSpec(id), coord, mut,
			controller.WithNotifier(notes))
	}
	m := NewModel(ctrls, notes)
	m.statusTTL = 0 // keep drain from blocking on the clear tick
	return m, mut
}

// drain runs a command chain to completion, feeding every produced
// message back into the model.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil && i < 20; i++ {
		msg := cmd()
		if msg == nil {
			return
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				drain(t, m, c)
			}
			return
		}
		if _, isTick := msg.(statusClearMsg); isTick {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func dealRecords() map[collection.ID][]collection.Record {
	return map[collection.ID][]collection.Record{
		collection.FirmDeals: {
			{"id": "1", "firmName": "Alpha Wealth", "stage": "NDA", "location": "Miami, FL"},
			{"id": "2", "firmName": "Beta Capital", "stage": "Closed", "location": "Austin, TX"},
		},
	}
}

func TestInitLoadsActiveCollection(t *testing.T) {
	m, _ := newTestModel(t, dealRecords())
	drain(t, m, m.Init())

	assert.Equal(t, collection.FirmDeals, m.ActiveID())
	assert.Len(t, m.visible, 2)
	assert.False(t, m.loading)
}

func TestStaleLoadResultsAreDropped(t *testing.T) {
	m, _ := newTestModel(t, dealRecords())
	drain(t, m, m.Init())

	// A result for a tab the operator already left must not land
	_, _ = m.Update(visibleLoadedMsg{
		id:      collection.BlogPosts,
		records: []collection.Record{{"id": "p1"}},
	})
	assert.Len(t, m.visible, 2)
	assert.Equal(t, collection.FirmDeals, m.ActiveID())
}

func TestTabSwitchingWraps(t *testing.T) {
	m, _ := newTestModel(t, dealRecords())
	drain(t, m, m.Init())

	all := collection.All()
	_, cmd := m.Update(key("shift+tab"))
	drain(t, m, cmd)
	assert.Equal(t, all[len(all)-1], m.ActiveID())

	_, cmd = m.Update(key("tab"))
	drain(t, m, cmd)
	assert.Equal(t, all[0], m.ActiveID())
}

func TestCursorMovement(t *testing.T) {
	m, _ := newTestModel(t, dealRecords())
	drain(t, m, m.Init())

	assert.Equal(t, 0, m.cursor)
	_, _ = m.Update(key("j"))
	assert.Equal(t, 1, m.cursor)
	_, _ = m.Update(key("j"))
	assert.Equal(t, 1, m.cursor, "cursor stops at the last row")
	_, _ = m.Update(key("k"))
	assert.Equal(t, 0, m.cursor)
}

func TestSearchModeFiltersLive(t *testing.T) {
	m, _ := newTestModel(t, dealRecords())
	drain(t, m, m.Init())

	_, _ = m.Update(key("/"))
	require.True(t, m.searchMode)

	_, cmd := m.Update(key("beta"))
	drain(t, m, cmd)
	assert.Equal(t, "beta", m.activeCtrl().FilterState().Search)
	require.Len(t, m.visible, 1)
	assert.Equal(t, "2", m.visible[0].ID())

	_, _ = m.Update(key("enter"))
	assert.False(t, m.searchMode)
	assert.Equal(t, "beta", m.activeCtrl().FilterState().Search, "enter keeps the query")

	_, _ = m.Update(key("/"))
	_, cmd = m.Update(key("esc"))
	drain(t, m, cmd)
	assert.Empty(t, m.activeCtrl().FilterState().Search, "esc clears the query")
	assert.Len(t, m.visible, 2)
}

func TestCycleSort(t *testing.T) {
	m, _ := newTestModel(t, dealRecords())
	drain(t, m, m.Init())

	_, cmd := m.Update(key("s"))
	drain(t, m, cmd)
	assert.Equal(t, "newest", m.activeCtrl().FilterState().Sort)

	_, cmd = m.Update(key("s"))
	drain(t, m, cmd)
	assert.Equal(t, "oldest", m.activeCtrl().FilterState().Sort)
}

func TestCycleFilter(t *testing.T) {
	m, _ := newTestModel(t, dealRecords())
	drain(t, m, m.Init())

	// First named filter for firm-deals is "stage"; cycling moves off
	// the wildcard onto the first distinct value.
	_, cmd := m.Update(key("f"))
	drain(t, m, cmd)
	state := m.activeCtrl().FilterState()
	assert.Equal(t, "Closed", state.Values["stage"])
	require.Len(t, m.visible, 1)

	// Reset restores the neutral view
	_, cmd = m.Update(key("x"))
	drain(t, m, cmd)
	assert.True(t, m.activeCtrl().FilterState().IsNeutral())
	assert.Len(t, m.visible, 2)
}

func TestCreateDialogFlow(t *testing.T) {
	m, mut := newTestModel(t, dealRecords())
	drain(t, m, m.Init())
	mut.outcome = collection.Record{"id": "3", "firmName": "Gamma", "advisorName": "Ann Lee",
		"dealType": "Acquisition", "stage": "NDA"}

	_, _ = m.Update(key("c"))
	d := m.activeCtrl().Dialog()
	require.True(t, d.IsOpen())
	assert.Equal(t, m.activeCtrl().Spec().Required, m.dialogFields[:len(m.activeCtrl().Spec().Required)])

	// Fill each required field, tabbing between them
	for range m.dialogFields {
		_, _ = m.Update(key("value"))
		_, _ = m.Update(key("tab"))
	}

	_, cmd := m.Update(key("enter"))
	drain(t, m, cmd)
	assert.False(t, m.activeCtrl().Dialog().IsOpen(), "dialog closes on success")
	assert.Len(t, m.visible, 3, "outcome lands in the visible list")
}

func TestDialogEscAbandons(t *testing.T) {
	m, _ := newTestModel(t, dealRecords())
	drain(t, m, m.Init())

	_, _ = m.Update(key("c"))
	_, _ = m.Update(key("value"))
	_, _ = m.Update(key("esc"))
	assert.False(t, m.activeCtrl().Dialog().IsOpen())
	assert.Empty(t, m.dialogFields)
}

func TestDeleteConfirmFlow(t *testing.T) {
	m, mut := newTestModel(t, dealRecords())
	drain(t, m, m.Init())
	mut.outcome = collection.Record{"id": "1"}

	_, _ = m.Update(key("d"))
	assert.Equal(t, "1", m.confirmDelete)

	// Anything but y cancels
	_, _ = m.Update(key("n"))
	assert.Empty(t, m.confirmDelete)
	assert.Len(t, m.visible, 2)

	_, _ = m.Update(key("d"))
	_, cmd := m.Update(key("y"))
	drain(t, m, cmd)
	assert.Empty(t, m.confirmDelete)
	require.Len(t, m.visible, 1)
	assert.Equal(t, "2", m.visible[0].ID())
}

func TestViewRendersTableAndFooter(t *testing.T) {
	m, _ := newTestModel(t, dealRecords())
	drain(t, m, m.Init())

	out := m.View()
	assert.Contains(t, out, "firm-deals")
	assert.Contains(t, out, "2 of 2 records")
	assert.Contains(t, out, "Alpha Wealth")
	assert.Contains(t, out, "q: quit")
}

func TestViewShowsSyntheticTag(t *testing.T) {
	m, _ := newTestModel(t, map[collection.ID][]collection.Record{})
	drain(t, m, m.Init())

	out := m.View()
	assert.Contains(t, strings.ToLower(out), "synthetic")
}
