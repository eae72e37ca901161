package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/Simenb123/revy-actions/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.keyBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) keyBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "j/k", Action: "move cursor"},
		{Key: "space", Action: "toggle select"},
		{Key: m.Keys.SelectAll, Action: "select/clear all visible"},
		{Key: "esc", Action: "clear selection"},
		{Key: "1/2/3/r/g", Action: "bulk status: " + paletteStatuses()},
		{Key: "del", Action: "bulk delete (confirm)"},
		{Key: m.Keys.Grab, Action: "grab row (neutral filter only)"},
		{Key: "J/K, enter", Action: "move grabbed row, drop"},
		{Key: m.Keys.Filter, Action: "filter input"},
		{Key: m.Keys.Palette, Action: "command palette"},
		{Key: m.Keys.Detail, Action: "detail editor"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.keyBindings()))
	for _, kb := range m.keyBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
