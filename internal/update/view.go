package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Simenb123/revy-actions/internal/list"
	"github.com/Simenb123/revy-actions/internal/model"
	"github.com/Simenb123/revy-actions/internal/views"
)

func (m Model) View() string {
	visible := m.Visible()
	mode := m.Mode()
	ids := list.VisibleIDs(visible)

	win := list.Window{Start: 0, End: len(visible)}
	if mode == list.ModeVirtualized {
		win = m.Virt.Window(ids, m.Scroll, m.ViewportHeight)
	}

	rows := make([]views.RowData, 0, win.End-win.Start)
	for i := win.Start; i < win.End; i++ {
		a := visible[i]
		row := views.RowData{
			ID:          a.ID,
			Name:        a.Name,
			SubjectArea: a.SubjectArea,
			Status:      string(a.Status),
			StatusLabel: a.Status.Label(),
			Pct:         a.Completion().Percentage,
			Selected:    m.Selection.Has(a.ID),
			UnderCursor: i == m.Cursor,
			Grabbed:     m.Reorder.Grabbed && a.ID == m.Reorder.GrabbedID,
		}
		if m.Reorder.Grabbed && i == m.Reorder.DropIndex && a.ID != m.Reorder.GrabbedID {
			row.Name = "v " + row.Name
		}
		rows = append(rows, row)
		m.Virt.SetMeasured(a.ID, lipgloss.Height(views.RenderRow(row)))
	}

	listPane := views.RenderListPanel(views.ListPanelData{
		FilterLine:    m.filterLine(),
		Mode:          mode.String(),
		Rows:          rows,
		TopPad:        win.TopPad,
		BottomPad:     win.BottomPad,
		Total:         len(m.Items),
		Visible:       len(visible),
		SelectedCount: m.Selection.Count(),
		InFlight:      m.spinnerActive,
		SpinnerView:   m.bulkSpinner.View(),
	})

	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
	}

	return views.RenderApp(views.AppData{
		Header:        fmt.Sprintf("revy-actions | scope: %s | %d actions", m.ScopeID, len(m.Items)),
		ListPane:      listPane,
		DetailPane:    m.renderDetailPane(),
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Footer: fmt.Sprintf("keys: space select | %s all | 1/2/3/r/g status | del delete | %s grab | %s filter | %s cmd | %s help | %s quit",
			m.Keys.SelectAll, m.Keys.Grab, m.Keys.Filter, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) filterLine() string {
	if m.FilterFocused {
		return m.filterInput.View()
	}
	parts := []string{}
	if m.Filter.Query != "" {
		parts = append(parts, "q:"+m.Filter.Query)
	}
	if m.Filter.Status != "" {
		parts = append(parts, "status:"+m.Filter.Status)
	}
	if m.Filter.SubjectArea != "" {
		parts = append(parts, "area:"+m.Filter.SubjectArea)
	}
	if len(parts) == 0 {
		return "filter: (none)"
	}
	return "filter: " + strings.Join(parts, " ")
}

func (m Model) renderDetailPane() string {
	if m.Confirm.Active {
		return views.RenderConfirmDialog(m.Confirm.Count)
	}
	if m.Palette.Active {
		return views.RenderCommandPalette(true, m.commandInput.View())
	}
	if help := m.renderHelpIfVisible(); help != "" {
		return help
	}
	if m.Detail.Active {
		return m.renderDetailEditor()
	}
	if a, ok := m.cursorAction(); ok {
		return views.RenderDetailPanel(views.DetailPanelData{
			ID:           a.ID,
			Name:         a.Name,
			StatusLabel:  a.Status.Label(),
			Pct:          a.Completion().Percentage,
			ProgressView: m.completionBar.ViewAs(float64(a.Completion().Percentage) / 100),
			Fields:       m.fieldRows(a, false),
			MarkdownView: views.RenderMarkdown(a.Description),
		})
	}
	return "detail:\n(no action under cursor)"
}

func (m Model) renderDetailEditor() string {
	idx, ok := m.actionByID(m.Detail.ActionID)
	if !ok {
		return "detail:\n(action gone)"
	}
	a := m.Items[idx]
	data := views.DetailPanelData{
		ID:           a.ID,
		Name:         a.Name,
		StatusLabel:  a.Status.Label(),
		Pct:          a.Completion().Percentage,
		ProgressView: m.completionBar.ViewAs(float64(a.Completion().Percentage) / 100),
		Fields:       m.fieldRows(a, true),
		MarkdownView: views.RenderMarkdown(a.Description),
		ErrorText:    m.Detail.Err,
	}
	if m.Detail.Editing {
		data.InputView = m.fieldInput.View()
	}
	return views.RenderDetailPanel(data)
}

func (m Model) fieldRows(a model.Action, editor bool) []views.FieldRowData {
	completion := a.Completion()
	out := make([]views.FieldRowData, 0, len(a.Fields))
	for i, f := range a.Fields {
		row := views.FieldRowData{
			Label:    f.Label,
			Kind:     string(f.Kind),
			Required: f.Required,
			Value:    fieldValueText(f, a.Values[f.ID]),
			Error:    completion.Errors[f.ID],
		}
		if editor && i == m.Detail.FieldCursor {
			row.Cursor = true
			row.Editing = m.Detail.Editing
		}
		out = append(out, row)
	}
	return out
}

func fieldValueText(f model.FieldDef, v model.FieldValue) string {
	switch f.Kind {
	case model.FieldBoolean:
		if v.Bool == nil {
			return ""
		}
		if *v.Bool {
			return "yes"
		}
		return "no"
	case model.FieldMultiEnum:
		return strings.Join(v.List, ", ")
	default:
		return v.Text
	}
}
