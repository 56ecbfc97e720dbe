package state

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/advisorlane/advisor-admin/internal/collection"
	"github.com/advisorlane/advisor-admin/internal/controller"
	"github.com/advisorlane/advisor-admin/internal/filter"
	"github.com/advisorlane/advisor-admin/internal/notify"
)

const maxColumns = 6

var (
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Padding(0, 1)
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	syntheticStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dialogStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	focusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// View renders the dashboard.
func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(m.renderTabs())
	s.WriteString("\n")
	s.WriteString(m.renderMeta())
	s.WriteString("\n")

	if d := m.activeCtrl().Dialog(); d.IsOpen() {
		s.WriteString(m.renderDialog())
	} else {
		s.WriteString(m.viewport.View())
	}

	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

// renderTabs renders one tab per collection.
func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(m.order))
	for i, id := range m.order {
		style := tabStyle
		if i == m.active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(id.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderMeta renders the snapshot provenance line: count, source,
// freshness, and the active filter/search/sort summary.
func (m *Model) renderMeta() string {
	if m.loading {
		return dimStyle.Render("loading...")
	}
	if m.loadErr != "" {
		return errorStyle.Render("error: "+m.loadErr) + dimStyle.Render("  (r to retry)")
	}

	parts := []string{fmt.Sprintf("%d of %d records", len(m.visible), m.snap.Len())}
	if m.snap.Source == collection.SourceSynthetic {
		parts = append(parts, syntheticStyle.Render("synthetic data"))
	}
	if m.snap.Freshness == collection.FreshnessStale {
		parts = append(parts, dimStyle.Render("stale"))
	}

	state := m.activeCtrl().FilterState()
	for name, value := range state.Values {
		if value != "" && value != filter.Wildcard {
			parts = append(parts, fmt.Sprintf("%s=%s", name, value))
		}
	}
	if state.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", state.Search))
	}
	if state.Sort != "" {
		parts = append(parts, "sort="+state.Sort)
	}
	return dimStyle.Render(strings.Join(parts, "  "))
}

// updateViewportContent rebuilds the record table inside the viewport.
func (m *Model) updateViewportContent() {
	var content strings.Builder

	if len(m.visible) == 0 && !m.loading {
		content.WriteString(dimStyle.Render("no records match the current view"))
		m.viewport.SetContent(content.String())
		return
	}

	columns := m.columns()
	colWidth := m.columnWidth(len(columns))

	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = pad(col, colWidth)
	}
	content.WriteString(headerStyle.Render(strings.Join(cells, " ")))

	for rowIndex, r := range m.visible {
		content.WriteString("\n")
		for i, col := range columns {
			v, _ := r.Str(col)
			cells[i] = pad(v, colWidth)
		}
		row := strings.Join(cells, " ")
		if rowIndex == m.cursor {
			row = cursorStyle.Render(row)
		}
		content.WriteString(row)
	}

	m.viewport.SetContent(content.String())
	m.scrollToCursor()
}

// columns derives the table columns for the active collection from its
// registry entry: id, searchable fields, then sort and date fields.
func (m *Model) columns() []string {
	spec := m.activeCtrl().Spec()
	columns := []string{collection.FieldID}
	seen := map[string]bool{collection.FieldID: true}

	add := func(fields ...string) {
		for _, f := range fields {
			if !seen[f] && len(columns) < maxColumns {
				columns = append(columns, f)
				seen[f] = true
			}
		}
	}
	add(spec.SearchFields...)
	add(spec.SortFields...)
	for _, f := range spec.Filters {
		add(f.Field)
	}
	if spec.DateField != "" {
		add(spec.DateField)
	}
	return columns
}

func (m *Model) columnWidth(count int) int {
	if count == 0 {
		return 0
	}
	w := (m.width - count) / count
	if w < 8 {
		w = 8
	}
	return w
}

// scrollToCursor keeps the cursor row inside the viewport.
func (m *Model) scrollToCursor() {
	row := m.cursor + 1 // header row offset
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height - 1
	if row < top {
		m.viewport.SetYOffset(row)
	} else if row > bottom {
		m.viewport.SetYOffset(row - m.viewport.Height + 1)
	}
}

// renderDialog renders the create/edit form.
func (m *Model) renderDialog() string {
	d := m.activeCtrl().Dialog()
	spec := m.activeCtrl().Spec()

	var body strings.Builder
	title := "Create " + spec.ID.String()
	if d.Mode == controller.DialogEdit {
		title = "Edit " + spec.ID.String() + " " + d.Record.ID()
	}
	body.WriteString(headerStyle.Render(title))
	body.WriteString("\n\n")

	for i, field := range m.dialogFields {
		value := d.Fields[field]
		line := fmt.Sprintf("%-16s %s", field, value)
		if i == m.dialogFocus {
			line = focusStyle.Render(fmt.Sprintf("%-16s ", field)) + m.dialogInput.View()
		}
		body.WriteString(line)
		body.WriteString("\n")
	}

	body.WriteString("\n")
	switch {
	case d.Submitting:
		body.WriteString(dimStyle.Render("submitting..."))
	case d.Err != "":
		body.WriteString(errorStyle.Render(d.Err))
	default:
		body.WriteString(dimStyle.Render("tab: next field  enter: save  esc: cancel"))
	}
	return dialogStyle.Render(body.String())
}

// renderFooter renders the status line and key hints.
func (m *Model) renderFooter() string {
	if m.confirmDelete != "" {
		return errorStyle.Render(fmt.Sprintf("delete record %s? (y/n)", m.confirmDelete))
	}
	if m.searchMode {
		return m.searchInput.View()
	}
	if m.status != "" {
		style := dimStyle
		switch m.statusKind {
		case notify.KindError:
			style = errorStyle
		case notify.KindSuccess:
			style = successStyle
		case notify.KindWarning:
			style = syntheticStyle
		}
		return style.Render(m.status)
	}
	return dimStyle.Render("tab: collections  /: search  f: filter  s: sort  r: refresh  c/e/d: edit  q: quit")
}

// pad truncates or pads a cell to the column width, counting runes so
// a multi-byte value never gets split.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
