package state

import (
	"context"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/advisorlane/advisor-admin/internal/collection"
	"github.com/advisorlane/advisor-admin/internal/controller"
	"github.com/advisorlane/advisor-admin/internal/filter"
	"github.com/advisorlane/advisor-admin/internal/notify"
)

const (
	headerFooterLines     = 4
	defaultViewportWidth  = 100
	defaultViewportHeight = 22
	statusClearDuration   = 5 * time.Second
)

// Model is the BubbleTea model for the admin dashboard. One controller
// per collection; the active tab decides which one the key handlers and
// the renderer talk to.
type Model struct {
	order []collection.ID
	ctrls map[collection.ID]*controller.Controller

	active  int
	cursor  int
	visible []collection.Record
	snap    collection.Snapshot
	loading bool
	loadErr string

	// Filter cycling state: which named filter "f" currently cycles.
	filterIdx int

	viewport    viewport.Model
	width       int
	height      int
	searchMode  bool
	searchInput textinput.Model

	// Dialog form state. Field order and focus live here; the bound
	// values live in the controller's dialog.
	dialogFields []string
	dialogFocus  int
	dialogInput  textinput.Model

	// Pending delete confirmation; empty when none.
	confirmDelete string

	notes      *notify.Buffer
	status     string
	statusKind notify.Kind
	statusTTL  time.Duration
}

// NewModel creates the dashboard model. Controllers must cover every id
// in collection.All(); the notify buffer feeds the status line.
func NewModel(ctrls map[collection.ID]*controller.Controller, notes *notify.Buffer) *Model {
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"

	dialog := textinput.New()
	dialog.Prompt = "> "

	return &Model{
		order:       collection.All(),
		ctrls:       ctrls,
		viewport:    viewport.New(defaultViewportWidth, defaultViewportHeight),
		width:       defaultViewportWidth,
		height:      defaultViewportHeight + headerFooterLines,
		searchInput: search,
		dialogInput: dialog,
		notes:       notes,
		statusTTL:   statusClearDuration,
	}
}

// ActiveID returns the collection shown by the active tab.
func (m *Model) ActiveID() collection.ID {
	return m.order[m.active]
}

func (m *Model) activeCtrl() *controller.Controller {
	return m.ctrls[m.ActiveID()]
}

// Init triggers the initial load of the active collection.
func (m *Model) Init() tea.Cmd {
	return m.loadVisible()
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case visibleLoadedMsg:
		return m.handleVisibleLoaded(msg)
	case mutationDoneMsg:
		return m.handleMutationDone(msg)
	case statusClearMsg:
		m.status = ""
		return m, nil
	}
	return m, nil
}

// loadVisible fetches the active collection's filtered records off the
// update loop. The message carries the collection id so late results
// for a tab the operator already left can be dropped.
func (m *Model) loadVisible() tea.Cmd {
	id := m.ActiveID()
	ctrl := m.activeCtrl()
	m.loading = true
	return func() tea.Msg {
		records, err := ctrl.Visible(context.Background())
		snap, _ := ctrl.Snapshot(context.Background())
		return visibleLoadedMsg{id: id, records: records, snapshot: snap, err: err}
	}
}

// refresh invalidates the cache and reloads.
func (m *Model) refresh() tea.Cmd {
	id := m.ActiveID()
	ctrl := m.activeCtrl()
	m.loading = true
	return func() tea.Msg {
		if err := ctrl.Refresh(context.Background()); err != nil {
			return visibleLoadedMsg{id: id, err: err}
		}
		records, err := ctrl.Visible(context.Background())
		snap, _ := ctrl.Snapshot(context.Background())
		return visibleLoadedMsg{id: id, records: records, snapshot: snap, err: err}
	}
}

func (m *Model) handleVisibleLoaded(msg visibleLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.ActiveID() {
		// Tab changed while the load was in flight
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		m.loadErr = msg.err.Error()
		m.visible = nil
	} else {
		m.loadErr = ""
		m.visible = msg.records
		m.snap = msg.snapshot
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
	m.updateViewportContent()
	return m, m.syncStatus()
}

func (m *Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.ActiveID() {
		return m, nil
	}
	d := m.activeCtrl().Dialog()
	if !d.IsOpen() {
		m.dialogFields = nil
		m.dialogFocus = 0
		m.dialogInput.Blur()
	} else {
		// Submit failed; refocus the form with bound values intact
		m.syncDialogInput()
	}
	return m, tea.Batch(m.loadVisible(), m.syncStatus())
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.viewport = viewport.New(msg.Width, max(1, msg.Height-headerFooterLines))
	m.updateViewportContent()
	return m, nil
}

// syncStatus pulls the latest notification into the status line and
// schedules its expiry.
func (m *Model) syncStatus() tea.Cmd {
	if m.notes == nil {
		return nil
	}
	n, ok := m.notes.Latest()
	if !ok {
		return nil
	}
	text := n.Title
	if n.Description != "" {
		text += ": " + n.Description
	}
	if text == m.status {
		return nil
	}
	m.status = text
	m.statusKind = n.Kind
	if m.statusTTL <= 0 {
		return nil
	}
	return tea.Tick(m.statusTTL, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

// switchTab moves to another collection tab and reloads it.
func (m *Model) switchTab(delta int) tea.Cmd {
	m.active = (m.active + delta + len(m.order)) % len(m.order)
	m.cursor = 0
	m.filterIdx = 0
	m.visible = nil
	m.loadErr = ""
	m.searchMode = false
	m.searchInput.Reset()
	m.confirmDelete = ""
	return m.loadVisible()
}

// cycleFilter advances the current filter through the wildcard plus the
// distinct values present in the cached records.
func (m *Model) cycleFilter() tea.Cmd {
	ctrl := m.activeCtrl()
	spec := ctrl.Spec()
	if len(spec.Filters) == 0 {
		return nil
	}
	f := spec.Filters[m.filterIdx%len(spec.Filters)]

	options := m.filterOptions(f)
	current := ctrl.FilterState().Values[f.Name]
	next := options[0]
	for i, v := range options {
		if v == current {
			next = options[(i+1)%len(options)]
			break
		}
	}
	if err := ctrl.SetFilter(f.Name, next); err != nil {
		return nil
	}
	return m.loadVisible()
}

// filterOptions lists the cycling values for one filter: the wildcard
// first, then range names or distinct record values.
func (m *Model) filterOptions(f collection.FilterSpec) []string {
	options := []string{filter.Wildcard}
	if f.Kind == collection.FilterMoneyRange {
		names := make([]string, 0, len(f.Ranges))
		for name := range f.Ranges {
			names = append(names, name)
		}
		sort.Strings(names)
		return append(options, names...)
	}

	seen := map[string]bool{}
	for _, r := range m.snap.Records {
		v, ok := r.Str(f.Field)
		if !ok || v == "" {
			continue
		}
		if f.Kind == collection.FilterStateCode {
			v = filter.StateCode(v)
			if v == "" {
				continue
			}
		}
		seen[v] = true
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return append(options, values...)
}

// cycleSort advances through the collection's sort keys.
func (m *Model) cycleSort() tea.Cmd {
	ctrl := m.activeCtrl()
	keys := filter.SortKeys(ctrl.Spec())
	if len(keys) == 0 {
		return nil
	}
	current := ctrl.FilterState().Sort
	next := keys[0]
	for i, k := range keys {
		if k == current {
			if i == len(keys)-1 {
				next = "" // back to natural order
			} else {
				next = keys[i+1]
			}
			break
		}
	}
	if err := ctrl.SetSort(next); err != nil {
		return nil
	}
	return m.loadVisible()
}
