package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"taskline/internal/dictation"
	"taskline/internal/model"
	"taskline/internal/query"
	"taskline/internal/store"
)

type Mode string

const (
	ModeList    Mode = "list"
	ModeAdd     Mode = "add"
	ModeSearch  Mode = "search"
	ModePalette Mode = "palette"
	ModeConfirm Mode = "confirm"
)

type ConfirmAction string

const (
	ConfirmNone           ConfirmAction = ""
	ConfirmClearCompleted ConfirmAction = "clear_completed"
	ConfirmClearAll       ConfirmAction = "clear_all"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type KeyMap struct {
	Up             key.Binding
	Down           key.Binding
	Toggle         key.Binding
	Add            key.Binding
	Delete         key.Binding
	Search         key.Binding
	Palette        key.Binding
	CycleFilter    key.Binding
	CycleCategory  key.Binding
	ClearCompleted key.Binding
	ClearAll       key.Binding
	Dictate        key.Binding
	Help           key.Binding
	Quit           key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:             key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:           key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:         key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle done")),
		Add:            key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Delete:         key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
		Search:         key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Palette:        key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		CycleFilter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle status filter")),
		CycleCategory:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cycle category filter")),
		ClearCompleted: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear completed")),
		ClearAll:       key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear all")),
		Dictate:        key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "dictate task")),
		Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Search, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Add, k.Delete},
		{k.Search, k.Palette, k.CycleFilter, k.CycleCategory},
		{k.ClearCompleted, k.ClearAll, k.Dictate, k.Help, k.Quit},
	}
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type statusExpiredMsg struct {
	seq int
}

type DictationEventMsg struct {
	Event dictation.Event
}

type Model struct {
	store   *store.Store
	view    query.ViewState
	mode    Mode
	cursor  int
	confirm ConfirmAction

	taskInput      textinput.Model
	categoryInput  textinput.Model
	dueInput       textinput.Model
	priorityChoice model.Priority
	addFocus       int

	searchInput  textinput.Model
	commandInput textinput.Model

	recognizer dictation.Recognizer
	listening  bool
	spin       spinner.Model

	helpModel help.Model
	keys      KeyMap
	showHelp  bool

	status    StatusBar
	statusSeq int
	statusTTL time.Duration

	now      func() time.Time
	quitting bool
}

func NewModel(taskStore *store.Store) Model {
	return NewModelWithConfig(taskStore, dictation.NewNoop(), DefaultRuntimeConfig())
}

func NewModelWithConfig(taskStore *store.Store, recognizer dictation.Recognizer, cfg RuntimeConfig) Model {
	taskInput := textinput.New()
	taskInput.Placeholder = "what needs doing?"
	taskInput.CharLimit = 200

	categoryInput := textinput.New()
	categoryInput.Placeholder = "category (optional)"
	categoryInput.CharLimit = 40

	dueInput := textinput.New()
	dueInput.Placeholder = "YYYY-MM-DD (optional)"
	dueInput.CharLimit = 10

	searchInput := textinput.New()
	searchInput.Placeholder = "type to filter"
	commandInput := textinput.New()
	commandInput.Placeholder = "add buy milk cat:errands"

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	if recognizer == nil {
		recognizer = dictation.NewNoop()
	}
	ttl := time.Duration(cfg.StatusTTLSeconds) * time.Second

	return Model{
		store:          taskStore,
		view:           query.NewViewState(),
		mode:           ModeList,
		taskInput:      taskInput,
		categoryInput:  categoryInput,
		dueInput:       dueInput,
		priorityChoice: model.PriorityMedium,
		searchInput:    searchInput,
		commandInput:   commandInput,
		recognizer:     recognizer,
		spin:           spin,
		helpModel:      help.New(),
		keys:           DefaultKeyMap(),
		statusTTL:      ttl,
		now:            time.Now,
	}
}

// SetClock overrides the time source used for overdue checks, for tests.
func (m *Model) SetClock(now func() time.Time) {
	m.now = now
}

// ViewState exposes the current transient filter state.
func (m Model) ViewState() query.ViewState {
	return m.view
}

func (m Model) Mode() Mode {
	return m.mode
}

func (m Model) Status() StatusBar {
	return m.status
}

// visible is the Query Engine output the list screen renders.
func (m Model) visible() []model.Task {
	return query.Filtered(m.store.Tasks(), m.view)
}

func (m *Model) clampCursor() {
	limit := len(m.visible()) - 1
	if m.cursor > limit {
		m.cursor = limit
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) resetAddForm() {
	m.taskInput.SetValue("")
	m.categoryInput.SetValue("")
	m.dueInput.SetValue("")
	m.priorityChoice = model.PriorityMedium
	m.addFocus = 0
	m.taskInput.Blur()
	m.categoryInput.Blur()
	m.dueInput.Blur()
}
