package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Simenb123/revy-actions/internal/model"
)

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	a, ok := m.cursorAction()
	if !ok {
		return m, nil
	}
	m.Detail = DetailState{Active: true, ActionID: a.ID}
	m.Status = StatusBar{Text: "detail: " + a.Name, IsError: false}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	idx, ok := m.actionByID(m.Detail.ActionID)
	if !ok {
		m.Detail = DetailState{}
		return m, nil
	}
	a := m.Items[idx]

	if m.Detail.Editing {
		return m.handleFieldEditKey(msg, idx)
	}

	switch msg.String() {
	case "esc", m.Keys.Detail:
		m.Detail = DetailState{}
		return m, nil
	case "up", "k":
		if m.Detail.FieldCursor > 0 {
			m.Detail.FieldCursor--
		}
		return m, nil
	case "down", "j":
		if m.Detail.FieldCursor < len(a.Fields)-1 {
			m.Detail.FieldCursor++
		}
		return m, nil
	case "enter":
		return m.beginFieldEdit(idx)
	case "1":
		return m.setDetailStatus(idx, model.StatusNotStarted)
	case "2":
		return m.setDetailStatus(idx, model.StatusInProgress)
	case "3":
		return m.setDetailStatus(idx, model.StatusCompleted)
	case "r":
		return m.setDetailStatus(idx, model.StatusReviewed)
	case "g":
		return m.setDetailStatus(idx, model.StatusApproved)
	}

	// Digits toggle options on multi_enum fields.
	if field, ok := m.detailField(a); ok && field.Kind == model.FieldMultiEnum {
		if n := optionDigit(msg.String()); n > 0 && n <= len(field.Options) {
			return m.toggleMultiOption(idx, field, field.Options[n-1])
		}
	}
	return m, nil
}

func (m Model) detailField(a model.Action) (model.FieldDef, bool) {
	if m.Detail.FieldCursor < 0 || m.Detail.FieldCursor >= len(a.Fields) {
		return model.FieldDef{}, false
	}
	return a.Fields[m.Detail.FieldCursor], true
}

func (m Model) beginFieldEdit(idx int) (tea.Model, tea.Cmd) {
	a := m.Items[idx]
	field, ok := m.detailField(a)
	if !ok {
		return m, nil
	}
	switch field.Kind {
	case model.FieldBoolean:
		cur := a.Values[field.ID]
		next := true
		if cur.Bool != nil {
			next = !*cur.Bool
		}
		return m.commitFieldValue(idx, field.ID, model.BoolValue(next))
	case model.FieldEnum:
		if len(field.Options) == 0 {
			return m, nil
		}
		cur := a.Values[field.ID].Text
		next := field.Options[0]
		for i, opt := range field.Options {
			if opt == cur && i+1 < len(field.Options) {
				next = field.Options[i+1]
				break
			}
		}
		return m.commitFieldValue(idx, field.ID, model.TextValue(next))
	case model.FieldMultiEnum:
		m.Detail.Err = "press a digit to toggle an option"
		return m, nil
	default:
		m.Detail.Editing = true
		m.Detail.Err = ""
		m.fieldInput.SetValue(a.Values[field.ID].Text)
		return m, m.fieldInput.Focus()
	}
}

func (m Model) handleFieldEditKey(msg tea.KeyMsg, idx int) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Detail.Editing = false
		m.fieldInput.Blur()
		return m, nil
	case "enter":
		a := m.Items[idx]
		field, ok := m.detailField(a)
		if !ok {
			m.Detail.Editing = false
			return m, nil
		}
		m.Detail.Editing = false
		m.fieldInput.Blur()
		return m.commitFieldValue(idx, field.ID, model.TextValue(strings.TrimSpace(m.fieldInput.Value())))
	}
	var cmd tea.Cmd
	m.fieldInput, cmd = m.fieldInput.Update(msg)
	return m, cmd
}

func (m Model) toggleMultiOption(idx int, field model.FieldDef, option string) (tea.Model, tea.Cmd) {
	cur := m.Items[idx].Values[field.ID].List
	next := make([]string, 0, len(cur)+1)
	found := false
	for _, v := range cur {
		if v == option {
			found = true
			continue
		}
		next = append(next, v)
	}
	if !found {
		next = append(next, option)
	}
	return m.commitFieldValue(idx, field.ID, model.FieldValue{List: next})
}

// commitFieldValue replaces the value map instead of mutating it in place;
// an in-flight save goroutine may still be reading the old one.
func (m Model) commitFieldValue(idx int, fieldID string, value model.FieldValue) (tea.Model, tea.Cmd) {
	a := m.Items[idx]
	values := make(map[string]model.FieldValue, len(a.Values)+1)
	for k, v := range a.Values {
		values[k] = v
	}
	values[fieldID] = value
	a.Values = values
	m.Items[idx] = a
	m.Detail.Err = ""
	return m, saveActionCmd(m.Store, a)
}

// setDetailStatus changes one action's status from the detail view. The
// transition to completed is vetoed while required fields are missing.
func (m Model) setDetailStatus(idx int, next model.Status) (tea.Model, tea.Cmd) {
	a := m.Items[idx]
	completion, ok := model.GateStatus(a, next)
	if !ok {
		m.Detail.Err = fmt.Sprintf("cannot complete at %d%%: fill the required fields first", completion.Percentage)
		return m, nil
	}
	a.Status = next
	m.Items[idx] = a
	m.Detail.Err = ""
	return m, saveActionCmd(m.Store, a)
}

func optionDigit(key string) int {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0
	}
	return int(key[0] - '0')
}
