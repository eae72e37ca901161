package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Pane geometry. The list pane is the wider of the two because action rows
// carry subject area, status badge and completion percentage inline.
const (
	listPaneWidth   = 62
	detailPaneWidth = 54
	paneChrome      = 4 // border plus horizontal padding, per pane
)

// ListPaneColumns is the terminal column span of the list pane, chrome
// included. Mouse hits at or beyond this column belong to the detail pane.
const ListPaneColumns = listPaneWidth + paneChrome

type AppData struct {
	Header        string
	ListPane      string
	DetailPane    string
	StatusLine    string
	StatusIsError bool
	Footer        string
	Notification  string
}

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	listPaneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(listPaneWidth)
	detailPaneStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(detailPaneWidth)
	noteStyle       = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("11"))
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderApp assembles one frame: header, the two panes side by side, then
// notification, status line and key hints stacked underneath.
func RenderApp(data AppData) string {
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		listPaneStyle.Render(data.ListPane),
		detailPaneStyle.Render(data.DetailPane),
	)

	status := statusStyle.Render(data.StatusLine)
	if data.StatusIsError {
		status = errorStyle.Render("! " + data.StatusLine)
	}

	sections := []string{headerStyle.Render(data.Header), body}
	if data.Notification != "" {
		sections = append(sections, noteStyle.Render(data.Notification))
	}
	sections = append(sections, status)
	if data.Footer != "" {
		sections = append(sections, footerStyle.Render(data.Footer))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
