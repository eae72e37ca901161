package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Simenb123/revy-actions/internal/commands"
	"github.com/Simenb123/revy-actions/internal/list"
	"github.com/Simenb123/revy-actions/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette = CommandPaletteState{}
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: "error: " + err.Error(), IsError: true}
		return m, nil
	}

	var followup tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Status: func(a commands.StatusArgs) (commands.Result, error) {
			if m.Selection.Count() == 0 {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "nothing selected"}
			}
			ids := m.Selection.IDs()
			if err := list.GateCompleted(m.Items, ids, a.Status); err != nil {
				return commands.Result{}, err
			}
			m.spinnerActive = true
			followup = tea.Batch(m.bulkSpinner.Tick, bulkStatusCmd(m.Coord, ids, a.Status))
			return commands.Result{Message: fmt.Sprintf("setting %d action(s) to %s", len(ids), a.Status)}, nil
		},
		Delete: func() (commands.Result, error) {
			if m.Selection.Count() == 0 {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "nothing selected"}
			}
			m.Confirm = ConfirmState{Active: true, Count: m.Selection.Count()}
			m.Coord.ArmDelete()
			return commands.Result{Message: "confirm delete"}, nil
		},
		Select: func(a commands.SelectArgs) (commands.Result, error) {
			if a.All {
				visible := list.VisibleIDs(m.Visible())
				if !m.Selection.AllVisibleSelected(visible) {
					m.Selection.ToggleAllVisible(visible)
				}
				return commands.Result{Message: fmt.Sprintf("%d selected", m.Selection.Count())}, nil
			}
			m.Selection.Clear()
			return commands.Result{Message: "selection cleared"}, nil
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			if a.Clear {
				m.Filter = list.FilterState{}
				m.filterInput.SetValue("")
			}
			if a.Query != nil {
				m.Filter.Query = *a.Query
				m.filterInput.SetValue(*a.Query)
			}
			if a.Status != nil {
				m.Filter.Status = *a.Status
			}
			if a.SubjectArea != nil {
				m.Filter.SubjectArea = *a.SubjectArea
			}
			m.Cursor = 0
			m.Scroll = 0
			return commands.Result{Message: "filter applied"}, nil
		},
		Goto: func(a commands.GotoArgs) (commands.Result, error) {
			visible := m.Visible()
			for i := range visible {
				if visible[i].ID == a.ID {
					m.Cursor = i
					m.ensureCursorVisible()
					return commands.Result{Message: "jumped to " + a.ID}, nil
				}
			}
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no visible action with id " + a.ID}
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: "error: " + err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	return m, followup
}

// paletteStatuses lists the palette-addressable status names for help text.
func paletteStatuses() string {
	names := make([]string, 0, len(model.Statuses()))
	for _, s := range model.Statuses() {
		names = append(names, string(s))
	}
	return strings.Join(names, "|")
}
