package state

import (
	"context"
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/advisorlane/advisor-admin/internal/collection"
)

// handleKey routes key presses by mode: dialog form, delete
// confirmation, search input, then normal navigation.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.activeCtrl().Dialog().IsOpen() {
		return m.handleDialogKey(msg)
	}
	if m.confirmDelete != "" {
		return m.handleConfirmKey(msg)
	}
	if m.searchMode {
		return m.handleSearchKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.closeAll()
		return m, tea.Quit

	case "tab", "]":
		return m, m.switchTab(1)
	case "shift+tab", "[":
		return m, m.switchTab(-1)

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.updateViewportContent()
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
			m.updateViewportContent()
		}
	case "g":
		m.cursor = 0
		m.updateViewportContent()
	case "G":
		m.cursor = max(0, len(m.visible)-1)
		m.updateViewportContent()

	case "/":
		m.searchMode = true
		m.searchInput.SetValue(m.activeCtrl().FilterState().Search)
		m.searchInput.Focus()
		return m, nil

	case "f":
		return m, m.cycleFilter()
	case "F":
		if n := len(m.activeCtrl().Spec().Filters); n > 0 {
			m.filterIdx = (m.filterIdx + 1) % n
		}
	case "s":
		return m, m.cycleSort()
	case "x":
		m.activeCtrl().ResetFilters()
		return m, m.loadVisible()
	case "r":
		return m, m.refresh()

	case "c":
		m.activeCtrl().OpenCreate()
		m.openDialogForm()
	case "e", "enter":
		if r := m.cursorRecord(); r != nil {
			m.activeCtrl().OpenEdit(r)
			m.openDialogForm()
		}
	case "d":
		if r := m.cursorRecord(); r != nil {
			if m.activeCtrl().Spec().Supports(collection.OpDelete) {
				m.confirmDelete = r.ID()
			}
		}
	}
	return m, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.ActiveID()
		ctrl := m.activeCtrl()
		recordID := m.confirmDelete
		m.confirmDelete = ""
		return m, func() tea.Msg {
			err := ctrl.Delete(context.Background(), recordID)
			return mutationDoneMsg{id: id, err: err}
		}
	default:
		m.confirmDelete = ""
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.searchInput.Blur()
		return m, nil
	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.searchInput.Blur()
		m.activeCtrl().SetSearch("")
		return m, m.loadVisible()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.activeCtrl().SetSearch(m.searchInput.Value())
	return m, tea.Batch(cmd, m.loadVisible())
}

func (m *Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctrl := m.activeCtrl()
	if ctrl.Dialog().Submitting {
		// Form is frozen while the mutation is in flight
		return m, nil
	}

	switch msg.String() {
	case "esc":
		ctrl.CloseDialog()
		m.dialogFields = nil
		m.dialogFocus = 0
		m.dialogInput.Blur()
		return m, nil

	case "tab", "down":
		m.commitDialogField()
		m.dialogFocus = (m.dialogFocus + 1) % len(m.dialogFields)
		m.syncDialogInput()
		return m, nil
	case "shift+tab", "up":
		m.commitDialogField()
		m.dialogFocus = (m.dialogFocus - 1 + len(m.dialogFields)) % len(m.dialogFields)
		m.syncDialogInput()
		return m, nil

	case "enter":
		m.commitDialogField()
		id := m.ActiveID()
		return m, func() tea.Msg {
			err := ctrl.Submit(context.Background())
			return mutationDoneMsg{id: id, err: err}
		}
	}

	var cmd tea.Cmd
	m.dialogInput, cmd = m.dialogInput.Update(msg)
	m.commitDialogField()
	return m, cmd
}

// openDialogForm derives the ordered field list from the dialog the
// controller just opened and focuses the first field.
func (m *Model) openDialogForm() {
	d := m.activeCtrl().Dialog()
	spec := m.activeCtrl().Spec()

	fields := make([]string, 0, len(d.Fields))
	seen := map[string]bool{}
	for _, f := range spec.Required {
		if _, ok := d.Fields[f]; ok {
			fields = append(fields, f)
			seen[f] = true
		}
	}
	rest := make([]string, 0, len(d.Fields))
	for f := range d.Fields {
		if !seen[f] {
			rest = append(rest, f)
		}
	}
	sort.Strings(rest)
	m.dialogFields = append(fields, rest...)
	m.dialogFocus = 0
	m.syncDialogInput()
}

// syncDialogInput binds the text input to the focused field's value.
func (m *Model) syncDialogInput() {
	if len(m.dialogFields) == 0 {
		return
	}
	d := m.activeCtrl().Dialog()
	m.dialogInput.SetValue(d.Fields[m.dialogFields[m.dialogFocus]])
	m.dialogInput.CursorEnd()
	m.dialogInput.Focus()
}

// commitDialogField writes the text input back to the bound field.
func (m *Model) commitDialogField() {
	if len(m.dialogFields) == 0 {
		return
	}
	m.activeCtrl().SetField(m.dialogFields[m.dialogFocus], m.dialogInput.Value())
}

// cursorRecord returns the record under the cursor, if any.
func (m *Model) cursorRecord() collection.Record {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return m.visible[m.cursor]
}

// closeAll releases every controller's cache slot on quit.
func (m *Model) closeAll() {
	for _, ctrl := range m.ctrls {
		ctrl.Close()
	}
}
