package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Simenb123/revy-actions/internal/list"
	"github.com/Simenb123/revy-actions/internal/model"
)

// handleListKey is active only while the list has focus; editable controls
// (filter input, palette, detail editor) route their keys elsewhere.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.Reorder.Grabbed {
		return m.handleGrabbedKey(key)
	}

	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		m.ensureCursorVisible()
		return m, nil
	case "down", "j":
		if m.Cursor < len(m.Visible())-1 {
			m.Cursor++
		}
		m.ensureCursorVisible()
		return m, nil
	case "pgup":
		m.Scroll -= m.ViewportHeight
		if m.Scroll < 0 {
			m.Scroll = 0
		}
		return m, nil
	case "pgdown":
		m.Scroll += m.ViewportHeight
		return m, nil
	case " ":
		if a, ok := m.cursorAction(); ok {
			m.Selection.Toggle(a.ID)
		}
		return m, nil
	case m.Keys.SelectAll:
		m.Selection.ToggleAllVisible(list.VisibleIDs(m.Visible()))
		m.Status = StatusBar{Text: fmt.Sprintf("%d selected", m.Selection.Count()), IsError: false}
		return m, nil
	case "esc":
		if m.Selection.Count() > 0 {
			m.Selection.Clear()
			m.Status = StatusBar{Text: "selection cleared", IsError: false}
		}
		return m, nil
	case "delete", "backspace":
		return m.openDeleteConfirm()
	case "1":
		return m.submitBulkStatus(model.StatusNotStarted)
	case "2":
		return m.submitBulkStatus(model.StatusInProgress)
	case "3":
		return m.submitBulkStatus(model.StatusCompleted)
	case "r":
		return m.submitBulkStatus(model.StatusReviewed)
	case "g":
		return m.submitBulkStatus(model.StatusApproved)
	case m.Keys.Grab:
		return m.grabCursorRow()
	case m.Keys.Filter:
		m.FilterFocused = true
		m.filterInput.SetValue(m.Filter.Query)
		m.Status = StatusBar{Text: "filter input active", IsError: false}
		return m, m.filterInput.Focus()
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.Status = StatusBar{Text: "command palette active", IsError: false}
		return m, m.commandInput.Focus()
	case m.Keys.Detail, "enter":
		return m.openDetail()
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.FilterFocused = false
		m.filterInput.Blur()
		return m, nil
	case "enter":
		m.FilterFocused = false
		m.filterInput.Blur()
		m.querySeq++
		m.Filter.Query = m.filterInput.Value()
		m.Cursor = 0
		m.Scroll = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.querySeq++
	return m, tea.Batch(cmd, debounceQueryCmd(m.querySeq))
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.Confirm.Active = false
		m.spinnerActive = true
		return m, tea.Batch(
			m.bulkSpinner.Tick,
			bulkDeleteCmd(m.Coord, m.Selection.IDs()),
		)
	case "n", "esc":
		m.Confirm = ConfirmState{}
		m.Coord.DisarmDelete()
		m.Status = StatusBar{Text: "delete cancelled", IsError: false}
		return m, nil
	}
	return m, nil
}

func (m Model) openDeleteConfirm() (tea.Model, tea.Cmd) {
	if m.Selection.Count() == 0 {
		m.Status = StatusBar{Text: "nothing selected", IsError: false}
		return m, nil
	}
	if m.Coord.InFlight(list.MutationDelete) {
		m.Status = StatusBar{Text: "error: a delete is already running", IsError: true}
		return m, nil
	}
	m.Confirm = ConfirmState{Active: true, Count: m.Selection.Count()}
	m.Coord.ArmDelete()
	return m, nil
}

func (m Model) submitBulkStatus(status model.Status) (tea.Model, tea.Cmd) {
	if m.Selection.Count() == 0 {
		m.Status = StatusBar{Text: "nothing selected", IsError: false}
		return m, nil
	}
	if m.Coord.InFlight(list.MutationStatus) {
		m.Status = StatusBar{Text: "error: a status update is already running", IsError: true}
		return m, nil
	}
	ids := m.Selection.IDs()
	// The completed gate reads the live items, so it runs here rather than
	// on the worker goroutine.
	if err := list.GateCompleted(m.Items, ids, status); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: "error: " + err.Error(), IsError: true}
		return m, nil
	}
	m.spinnerActive = true
	return m, tea.Batch(
		m.bulkSpinner.Tick,
		bulkStatusCmd(m.Coord, ids, status),
	)
}
