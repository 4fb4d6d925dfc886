package update

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"taskline/internal/dictation"
	"taskline/internal/query"
	"taskline/internal/views"
)

func (m Model) Init() tea.Cmd {
	return waitForDictationCmd(m.recognizer.Events())
}

func waitForDictationCmd(ch <-chan dictation.Event) tea.Cmd {
	return func() tea.Msg {
		return DictationEventMsg{Event: <-ch}
	}
}

// setStatus replaces the status text and arms its bounded expiry. Stale
// expiry timers are ignored through the sequence number.
func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.status = StatusBar{Text: text, IsError: isErr}
	m.statusSeq++
	if m.statusTTL <= 0 {
		return nil
	}
	seq := m.statusSeq
	return tea.Tick(m.statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case ModeConfirm:
			return m.handleConfirmKey(typed)
		case ModeAdd:
			return m.handleAddKey(typed)
		case ModeSearch:
			return m.handleSearchKey(typed)
		case ModePalette:
			return m.handlePaletteKey(typed)
		default:
			return m.handleListKey(typed)
		}
	case spinner.TickMsg:
		if m.listening {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(typed)
			return m, cmd
		}
		return m, nil
	case SetStatusMsg:
		cmd := m.setStatus(typed.Text, typed.IsError)
		return m, cmd
	case statusExpiredMsg:
		if typed.seq == m.statusSeq {
			m.status = StatusBar{}
		}
		return m, nil
	case DictationEventMsg:
		return m.handleDictationEvent(typed.Event)
	}
	return m, nil
}

func (m Model) handleDictationEvent(ev dictation.Event) (tea.Model, tea.Cmd) {
	rearm := waitForDictationCmd(m.recognizer.Events())
	switch ev.Kind {
	case dictation.EventStart:
		m.listening = true
		cmd := m.setStatus("Listening...", false)
		return m, tea.Batch(cmd, m.spin.Tick, rearm)
	case dictation.EventResult:
		// Recognized text only fills the pending-creation input; it never
		// touches the task collection directly.
		m.mode = ModeAdd
		m.resetAddForm()
		m.taskInput.SetValue(ev.Text)
		m.taskInput.Focus()
		cmd := m.setStatus("Recognized: "+ev.Text, false)
		return m, tea.Batch(cmd, rearm)
	case dictation.EventError:
		cmd := m.setStatus(ev.Err.Message(), true)
		return m, tea.Batch(cmd, rearm)
	case dictation.EventEnd:
		m.listening = false
		return m, rearm
	}
	return m, rearm
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return views.RenderMarkdown(helpMarkdown) + "\n" + m.helpModel.View(m.keys)
	}

	data := views.AppData{
		Header:      "taskline",
		FilterBar:   views.RenderFilterBar(string(m.view.Status), m.view.Search),
		CategoryBar: views.RenderCategoryBar(query.DistinctCategories(m.store.Tasks()), m.view.Category),
		Body:        m.renderBody(),
		StatsLine:   m.renderStatsLine(),
		StatusLine:  m.status.Text,
		StatusIsErr: m.status.IsError,
		Footer:      m.helpModel.ShortHelpView(m.keys.ShortHelp()),
	}
	if m.listening {
		data.StatusLine = views.RenderListening(m.spin.View())
		data.StatusIsErr = false
	}
	return views.RenderApp(data)
}

func (m Model) renderBody() string {
	switch m.mode {
	case ModeAdd:
		return views.RenderAddForm(views.AddFormData{
			TextView:     m.taskInput.View(),
			CategoryView: m.categoryInput.View(),
			DueView:      m.dueInput.View(),
			Priority:     string(m.priorityChoice),
		})
	case ModeSearch:
		return views.RenderSearchBar(m.searchInput.View()) + "\n\n" + m.renderTaskListView()
	case ModePalette:
		return views.RenderPalette(m.commandInput.View()) + "\n\n" + m.renderTaskListView()
	case ModeConfirm:
		return views.RenderConfirm(m.confirmPrompt()) + "\n\n" + m.renderTaskListView()
	default:
		return m.renderTaskListView()
	}
}

func (m Model) renderTaskListView() string {
	visible := m.visible()
	now := m.now()
	items := make([]views.TaskLineData, 0, len(visible))
	for i, task := range visible {
		line := views.TaskLineData{
			Selected:  m.mode == ModeList && i == m.cursor,
			Completed: task.Completed,
			Text:      task.Text,
			Category:  task.CategoryValue(),
			Priority:  string(task.Priority),
			Overdue:   query.IsOverdue(task, now),
		}
		if task.DueDate != nil {
			line.DueLabel = query.FormatDueDate(*task.DueDate, now)
		}
		items = append(items, line)
	}
	return views.RenderTaskList(items)
}

func (m Model) renderStatsLine() string {
	counts := query.Stats(m.store.Tasks())
	return views.RenderStatsLine(counts.Total, counts.Completed)
}

func (m Model) confirmPrompt() string {
	switch m.confirm {
	case ConfirmClearCompleted:
		return "Clear all completed tasks?"
	case ConfirmClearAll:
		return "Clear all tasks? This cannot be undone."
	default:
		return ""
	}
}

const helpMarkdown = `# taskline

A task list that lives in your terminal.

## Keys

- **a** add a task, **space** toggle done, **d** delete
- **/** search, **f** cycle all/active/completed, **c** cycle category filter
- **:** command palette (` + "`add`, `search`, `filter`, `category`, `clear`" + `)
- **C** clear completed, **X** clear everything (both ask first)
- **v** dictate a task with the configured transcription command
- **?** toggle this help, **q** quit

Tasks persist locally and survive restarts.
`
