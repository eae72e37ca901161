package update

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rs/zerolog"

	"github.com/Simenb123/revy-actions/internal/list"
	"github.com/Simenb123/revy-actions/internal/model"
	"github.com/Simenb123/revy-actions/internal/storage"
	"github.com/Simenb123/revy-actions/internal/writeback"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Filter    string
	Palette   string
	Detail    string
	Grab      string
	SelectAll string
	Help      string
	Quit      string
}

type ConfirmState struct {
	Active bool
	Count  int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type DetailState struct {
	Active      bool
	ActionID    string
	FieldCursor int
	Editing     bool
	Err         string
}

type ReorderState struct {
	Grabbed   bool
	GrabbedID string
	DropIndex int
}

// Model is the single owned state object. All item mutation goes through
// the engine operations; the Update loop never touches the store directly.
type Model struct {
	Items     []model.Action
	Filter    list.FilterState
	Selection *list.Selection
	Virt      *list.Virtualizer
	Coord     *list.Coordinator
	Writeback *writeback.Engine
	Store     storage.Store
	ScopeID   string

	Cursor         int
	Scroll         int
	ViewportHeight int
	PlainThreshold int

	Reorder ReorderState
	Confirm ConfirmState
	Palette CommandPaletteState
	Detail  DetailState

	Status      StatusBar
	Keys        GlobalKeyMap
	HelpVisible bool
	Quitting    bool
	LastError   error

	FilterFocused bool
	querySeq      int

	// Bubble components used for rich TUI controls
	filterInput   textinput.Model
	commandInput  textinput.Model
	fieldInput    textinput.Model
	bulkSpinner   spinner.Model
	completionBar progress.Model
	helpModel     help.Model
	spinnerActive bool

	log zerolog.Logger
}

type Deps struct {
	Store              storage.Store
	Writeback          *writeback.Engine
	ScopeID            string
	EstimatedRowHeight int
	Overscan           int
	PlainThreshold     int
	Log                zerolog.Logger
}

type ActionsLoadedMsg struct {
	Items []model.Action
	Err   error
}

type BulkResultMsg struct {
	Kind list.MutationKind
	IDs  []string
	Err  error
}

type ActionSavedMsg struct {
	Action model.Action
	Err    error
}

type WritebackResultMsg struct {
	Result writeback.Result
}

type QueryDebounceMsg struct {
	Seq int
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

func NewModel(deps Deps) Model {
	sel := list.NewSelection()
	m := Model{
		Selection:      sel,
		Virt:           list.NewVirtualizer(deps.EstimatedRowHeight, deps.Overscan),
		Coord:          list.NewCoordinator(deps.Store),
		Writeback:      deps.Writeback,
		Store:          deps.Store,
		ScopeID:        deps.ScopeID,
		ViewportHeight: 20,
		PlainThreshold: deps.PlainThreshold,
		Keys: GlobalKeyMap{
			Filter:    "/",
			Palette:   ":",
			Detail:    "tab",
			Grab:      "m",
			SelectAll: "ctrl+a",
			Help:      "?",
			Quit:      "q",
		},
		log: deps.Log,
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.filterInput = textinput.New()
	m.filterInput.Prompt = "filter> "
	m.filterInput.CharLimit = 128
	m.filterInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = ":"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.fieldInput = textinput.New()
	m.fieldInput.Prompt = "> "
	m.fieldInput.CharLimit = 1024
	m.fieldInput.Width = 40

	m.bulkSpinner = spinner.New()
	m.bulkSpinner.Spinner = spinner.Dot

	m.completionBar = progress.New(progress.WithDefaultGradient())
	m.completionBar.Width = 20

	m.helpModel = help.New()
}

// Visible returns the items passing the current filter, in list order.
func (m Model) Visible() []model.Action {
	return list.Filter(m.Items, m.Filter)
}

// Mode computes the render strategy for this frame.
func (m Model) Mode() list.RenderMode {
	return list.ModeFor(m.Filter, len(m.Items), m.PlainThreshold, m.Reorder.Grabbed)
}

func (m Model) cursorAction() (model.Action, bool) {
	visible := m.Visible()
	if len(visible) == 0 || m.Cursor < 0 || m.Cursor >= len(visible) {
		return model.Action{}, false
	}
	return visible[m.Cursor], true
}

func (m *Model) clampCursor() {
	visible := m.Visible()
	if m.Cursor >= len(visible) {
		m.Cursor = len(visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// ensureCursorVisible adjusts scroll so the row under the cursor stays inside
// the viewport window.
func (m *Model) ensureCursorVisible() {
	visible := m.Visible()
	if len(visible) == 0 {
		m.Scroll = 0
		return
	}
	m.clampCursor()
	tops, heights := m.Virt.RowGeometry(list.VisibleIDs(visible))
	top := tops[m.Cursor]
	bottom := top + heights[m.Cursor]
	if top < m.Scroll {
		m.Scroll = top
	}
	if bottom > m.Scroll+m.ViewportHeight {
		m.Scroll = bottom - m.ViewportHeight
	}
	if m.Scroll < 0 {
		m.Scroll = 0
	}
}

func (m *Model) actionByID(id string) (int, bool) {
	for i := range m.Items {
		if m.Items[i].ID == id {
			return i, true
		}
	}
	return 0, false
}
