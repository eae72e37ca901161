package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Simenb123/revy-actions/internal/list"
	"github.com/Simenb123/revy-actions/internal/model"
	"github.com/Simenb123/revy-actions/internal/views"
)

// Lines above the first row inside the list panel (panel border, title,
// filter line, mode line). Used to map mouse rows onto list rows.
const listHeaderLines = 5

func (m Model) grabCursorRow() (tea.Model, tea.Cmd) {
	if !m.Filter.IsNeutral() {
		m.Status = StatusBar{Text: "error: clear the filter before reordering", IsError: true}
		return m, nil
	}
	a, ok := m.cursorAction()
	if !ok {
		return m, nil
	}
	m.Reorder = ReorderState{Grabbed: true, GrabbedID: a.ID, DropIndex: m.Cursor}
	m.Status = StatusBar{Text: "grabbed " + a.Name + " (J/K move, enter drop, esc cancel)", IsError: false}
	return m, nil
}

func (m Model) handleGrabbedKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "J", "down", "j":
		if m.Reorder.DropIndex < len(m.Items)-1 {
			m.Reorder.DropIndex++
		}
		return m, nil
	case "K", "up", "k":
		if m.Reorder.DropIndex > 0 {
			m.Reorder.DropIndex--
		}
		return m, nil
	case "enter":
		return m.dropGrabbedRow()
	case "esc", m.Keys.Grab:
		m.Reorder = ReorderState{}
		m.Status = StatusBar{Text: "reorder cancelled", IsError: false}
		return m, nil
	}
	return m, nil
}

func (m Model) dropGrabbedRow() (tea.Model, tea.Cmd) {
	st := m.Reorder
	m.Reorder = ReorderState{}
	if st.DropIndex < 0 || st.DropIndex >= len(m.Items) {
		return m, nil
	}
	overID := m.Items[st.DropIndex].ID
	updates := list.ComputeReorder(st.GrabbedID, overID, m.Items)
	if updates == nil {
		return m, nil
	}
	m.Items = list.ApplyOrder(m.Items, updates)
	m.Cursor = st.DropIndex
	m.ensureCursorVisible()
	if m.Writeback != nil {
		if err := m.Writeback.Enqueue(m.ScopeID, updates); err != nil {
			m.Status = StatusBar{Text: "error: " + err.Error(), IsError: true}
			return m, nil
		}
	}
	m.Status = StatusBar{Text: "order updated", IsError: false}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button == tea.MouseButtonWheelUp {
		m.Scroll -= 3
		if m.Scroll < 0 {
			m.Scroll = 0
		}
		return m, nil
	}
	if msg.Button == tea.MouseButtonWheelDown {
		m.Scroll += 3
		return m, nil
	}
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	// Clicks landing in the detail pane or footer must not reach list rows.
	// An in-progress drag keeps tracking even when it strays past the edge.
	if msg.X >= views.ListPaneColumns && !m.Reorder.Grabbed {
		return m, nil
	}

	row := m.rowAtPointer(msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if row < 0 {
			return m, nil
		}
		m.Cursor = row
		if m.Filter.IsNeutral() {
			a := m.Visible()[row]
			m.Reorder = ReorderState{Grabbed: true, GrabbedID: a.ID, DropIndex: row}
		}
		return m, nil
	case tea.MouseActionMotion:
		if m.Reorder.Grabbed && row >= 0 {
			m.Reorder.DropIndex = row
		}
		return m, nil
	case tea.MouseActionRelease:
		if m.Reorder.Grabbed {
			if m.Reorder.DropIndex == indexOfID(m.Items, m.Reorder.GrabbedID) {
				// Plain click, no movement: treat as selection toggle.
				m.Reorder = ReorderState{}
				if a, ok := m.cursorAction(); ok {
					m.Selection.Toggle(a.ID)
				}
				return m, nil
			}
			return m.dropGrabbedRow()
		}
		return m, nil
	}
	return m, nil
}

// rowAtPointer maps a terminal Y coordinate to a visible row index using
// nearest-center collision over the mounted row geometry.
func (m Model) rowAtPointer(y int) int {
	visible := m.Visible()
	if len(visible) == 0 {
		return -1
	}
	pointerY := y - listHeaderLines + m.Scroll
	tops, heights := m.Virt.RowGeometry(list.VisibleIDs(visible))
	return list.NearestRow(pointerY, tops, heights)
}

func indexOfID(items []model.Action, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
