package update

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Simenb123/revy-actions/internal/list"
	"github.com/Simenb123/revy-actions/internal/storage"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadActionsCmd(m.Store, m.ScopeID)}
	if m.Writeback != nil {
		cmds = append(cmds, waitWritebackCmd(m.Writeback.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.routeKey(typed)

	case tea.MouseMsg:
		return m.handleMouse(typed)

	case tea.WindowSizeMsg:
		m.ViewportHeight = typed.Height - 8
		if m.ViewportHeight < 4 {
			m.ViewportHeight = 4
		}
		return m, nil

	case spinner.TickMsg:
		if m.spinnerActive {
			var cmd tea.Cmd
			m.bulkSpinner, cmd = m.bulkSpinner.Update(typed)
			return m, cmd
		}
		return m, nil

	case cursor.BlinkMsg:
		var cmd tea.Cmd
		switch {
		case m.Palette.Active:
			m.commandInput, cmd = m.commandInput.Update(typed)
		case m.Detail.Active && m.Detail.Editing:
			m.fieldInput, cmd = m.fieldInput.Update(typed)
		case m.FilterFocused:
			m.filterInput, cmd = m.filterInput.Update(typed)
		}
		return m, cmd

	case ActionsLoadedMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: "error: " + typed.Err.Error(), IsError: true}
			return m, nil
		}
		m.Items = typed.Items
		m.Virt.Reset()
		m.clampCursor()
		m.ensureCursorVisible()
		return m, nil

	case BulkResultMsg:
		return m.onBulkResult(typed)

	case ActionSavedMsg:
		return m.onActionSaved(typed)

	case WritebackResultMsg:
		res := typed.Result
		if res.Err != nil {
			m.Status = StatusBar{Text: "error: order not saved: " + res.Err.Error(), IsError: true}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("order saved (%d rows)", res.Count), IsError: false}
		}
		if m.Writeback != nil {
			return m, waitWritebackCmd(m.Writeback.C())
		}
		return m, nil

	case QueryDebounceMsg:
		if typed.Seq != m.querySeq {
			return m, nil
		}
		m.Filter.Query = m.filterInput.Value()
		m.Cursor = 0
		m.Scroll = 0
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}

	return m, nil
}

func (m Model) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.Confirm.Active {
		return m.handleConfirmKey(msg)
	}
	if m.Detail.Active {
		return m.handleDetailKey(msg)
	}
	if m.FilterFocused {
		return m.handleFilterKey(msg)
	}
	return m.handleListKey(msg)
}

// onBulkResult reconciles the settled bulk call with the event-loop-owned
// state. Selection edits happen only here, never on the worker goroutine.
func (m Model) onBulkResult(msg BulkResultMsg) (tea.Model, tea.Cmd) {
	m.spinnerActive = false
	if msg.Err != nil {
		switch {
		case errors.Is(msg.Err, list.ErrBulkInFlight):
			m.Status = StatusBar{Text: "error: a bulk operation is already running", IsError: true}
		case errors.Is(msg.Err, storage.ErrNotFound):
			m.Status = StatusBar{Text: "error: some actions no longer exist, reloading", IsError: true}
			return m, loadActionsCmd(m.Store, m.ScopeID)
		default:
			m.Status = StatusBar{Text: "error: " + msg.Err.Error(), IsError: true}
		}
		m.LastError = msg.Err
		return m, nil
	}
	m.Selection.Remove(msg.IDs...)
	verb := "updated"
	if msg.Kind == list.MutationDelete {
		verb = "deleted"
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s %d action(s)", verb, len(msg.IDs)), IsError: false}
	return m, loadActionsCmd(m.Store, m.ScopeID)
}

func (m Model) onActionSaved(msg ActionSavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, storage.ErrConflict) {
			m.Status = StatusBar{Text: "error: action changed elsewhere, reloading", IsError: true}
			return m, loadActionsCmd(m.Store, m.ScopeID)
		}
		m.LastError = msg.Err
		m.Status = StatusBar{Text: "error: " + msg.Err.Error(), IsError: true}
		return m, nil
	}
	if idx, ok := m.actionByID(msg.Action.ID); ok {
		m.Items[idx] = msg.Action
	}
	m.Status = StatusBar{Text: "saved", IsError: false}
	return m, nil
}
