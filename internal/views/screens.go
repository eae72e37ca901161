package views

import (
	"fmt"
	"strings"
)

type RowData struct {
	ID          string
	Name        string
	SubjectArea string
	StatusLabel string
	Status      string
	Pct         int
	Selected    bool
	UnderCursor bool
	Grabbed     bool
}

type ListPanelData struct {
	FilterLine    string
	Mode          string
	Rows          []RowData
	TopPad        int
	BottomPad     int
	Total         int
	Visible       int
	SelectedCount int
	InFlight      bool
	SpinnerView   string
}

type FieldRowData struct {
	Label    string
	Kind     string
	Required bool
	Value    string
	Error    string
	Editing  bool
	Cursor   bool
}

type DetailPanelData struct {
	ID           string
	Name         string
	StatusLabel  string
	Pct          int
	ProgressView string
	Fields       []FieldRowData
	InputView    string
	MarkdownView string
	ErrorText    string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

func RenderListPanel(data ListPanelData) string {
	var b strings.Builder
	b.WriteString("actions:\n")
	b.WriteString(data.FilterLine + "\n")
	line := fmt.Sprintf("mode: %s | %d/%d shown | %d selected", data.Mode, data.Visible, data.Total, data.SelectedCount)
	if data.InFlight {
		line += " | " + data.SpinnerView + " working"
	}
	b.WriteString(line + "\n")

	if data.TopPad > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("~ %d lines above ~", data.TopPad)) + "\n")
	}
	if len(data.Rows) == 0 {
		b.WriteString("(no matching actions)\n")
	}
	for _, row := range data.Rows {
		b.WriteString(RenderRow(row) + "\n")
	}
	if data.BottomPad > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("~ %d lines below ~", data.BottomPad)) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderRow(row RowData) string {
	cursor := " "
	if row.UnderCursor {
		cursor = ">"
	}
	check := "[ ]"
	if row.Selected {
		check = "[x]"
	}
	handle := "  "
	if row.Grabbed {
		handle = "::"
	}
	area := ""
	if row.SubjectArea != "" {
		area = " #" + row.SubjectArea
	}
	return fmt.Sprintf("%s%s %s %s %s%s (%d%%)", cursor, handle, check, statusBadge(row.Status, row.StatusLabel), row.Name, area, row.Pct)
}

func RenderDetailPanel(data DetailPanelData) string {
	if data.ID == "" {
		return "detail:\n(no action under cursor)"
	}
	var b strings.Builder
	b.WriteString("detail:\n")
	b.WriteString(fmt.Sprintf("id: %s\n", data.ID))
	b.WriteString(fmt.Sprintf("name: %s\n", data.Name))
	b.WriteString(fmt.Sprintf("status: %s\n", data.StatusLabel))
	b.WriteString(fmt.Sprintf("completion: %s %d%%\n", data.ProgressView, data.Pct))
	b.WriteString("fields:\n")
	for _, f := range data.Fields {
		b.WriteString(renderFieldRow(f) + "\n")
	}
	if data.InputView != "" {
		b.WriteString("edit: " + data.InputView + "\n")
	}
	if data.ErrorText != "" {
		b.WriteString(errorStyle.Render("error: "+data.ErrorText) + "\n")
	}
	if data.MarkdownView != "" {
		b.WriteString("\ndescription:\n" + data.MarkdownView + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderFieldRow(f FieldRowData) string {
	cursor := " "
	if f.Cursor {
		cursor = ">"
	}
	req := " "
	if f.Required {
		req = "*"
	}
	value := f.Value
	if f.Editing {
		value = "(editing)"
	}
	if value == "" {
		value = dimStyle.Render("(empty)")
	}
	line := fmt.Sprintf("%s%s %s [%s]: %s", cursor, req, f.Label, f.Kind, value)
	if f.Error != "" {
		line += " " + errorStyle.Render("! "+f.Error)
	}
	return line
}

func RenderConfirmDialog(count int) string {
	return fmt.Sprintf("confirm-delete:\ndelete %d selected action(s)? [y]es [n]o", count)
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s", strings.Join(data.Bindings, "\n"), data.HelpView)
}

func statusBadge(status, label string) string {
	switch status {
	case "completed", "reviewed", "approved":
		return statusStyle.Render("[" + label + "]")
	case "in_progress":
		return headerStyle.Render("[" + label + "]")
	default:
		return dimStyle.Render("[" + label + "]")
	}
}
