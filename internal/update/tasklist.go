package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"taskline/internal/dictation"
	"taskline/internal/query"
)

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		m.clampCursor()
		visible := m.visible()
		if len(visible) == 0 {
			return m, nil
		}
		m.store.Toggle(visible[m.cursor].ID)
		m.clampCursor()
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		m.clampCursor()
		visible := m.visible()
		if len(visible) == 0 {
			return m, nil
		}
		deleted := visible[m.cursor]
		m.store.Delete(deleted.ID)
		m.clampCursor()
		cmd := m.setStatus(fmt.Sprintf("deleted %q", deleted.Text), false)
		return m, cmd
	case key.Matches(msg, m.keys.Add):
		m.mode = ModeAdd
		m.resetAddForm()
		m.taskInput.Focus()
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		m.searchInput.SetValue(m.view.Search)
		m.searchInput.Focus()
		return m, nil
	case key.Matches(msg, m.keys.Palette):
		m.mode = ModePalette
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		return m, nil
	case key.Matches(msg, m.keys.CycleFilter):
		m.cycleStatusFilter()
		m.clampCursor()
		return m, nil
	case key.Matches(msg, m.keys.CycleCategory):
		m.cycleCategoryFilter()
		m.clampCursor()
		return m, nil
	case key.Matches(msg, m.keys.ClearCompleted):
		if query.Stats(m.store.Tasks()).Completed == 0 {
			return m, nil
		}
		m.mode = ModeConfirm
		m.confirm = ConfirmClearCompleted
		return m, nil
	case key.Matches(msg, m.keys.ClearAll):
		if m.store.Len() == 0 {
			return m, nil
		}
		m.mode = ModeConfirm
		m.confirm = ConfirmClearAll
		return m, nil
	case key.Matches(msg, m.keys.Dictate):
		return m.toggleDictation()
	}
	return m, nil
}

// handleConfirmKey gates the destructive clears: the store never prompts,
// this screen does.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		var cmd tea.Cmd
		switch m.confirm {
		case ConfirmClearCompleted:
			removed := m.store.ClearCompleted()
			cmd = m.setStatus(fmt.Sprintf("cleared %d completed task(s)", removed), false)
		case ConfirmClearAll:
			removed := m.store.ClearAll()
			cmd = m.setStatus(fmt.Sprintf("cleared %d task(s)", removed), false)
		}
		m.mode = ModeList
		m.confirm = ConfirmNone
		m.clampCursor()
		return m, cmd
	case "n", "N", "esc", "q":
		m.mode = ModeList
		m.confirm = ConfirmNone
		return m, nil
	}
	return m, nil
}

func (m *Model) cycleStatusFilter() {
	switch m.view.Status {
	case query.StatusAll:
		m.view.SetStatus(query.StatusActive)
	case query.StatusActive:
		m.view.SetStatus(query.StatusCompleted)
	default:
		m.view.SetStatus(query.StatusAll)
	}
}

// cycleCategoryFilter walks the distinct categories in collection order and
// wraps back to no filter after the last one.
func (m *Model) cycleCategoryFilter() {
	categories := query.DistinctCategories(m.store.Tasks())
	if len(categories) == 0 {
		m.view.ClearCategory()
		return
	}
	if m.view.Category == "" {
		m.view.ToggleCategory(categories[0])
		return
	}
	for i, cat := range categories {
		if cat == m.view.Category {
			if i+1 < len(categories) {
				m.view.ToggleCategory(categories[i+1])
			} else {
				m.view.ClearCategory()
			}
			return
		}
	}
	// The active category no longer exists; keep it inert rather than
	// resetting, the user clears it by cycling.
	m.view.ToggleCategory(categories[0])
}

func (m Model) toggleDictation() (tea.Model, tea.Cmd) {
	if m.listening {
		m.recognizer.Stop()
		m.listening = false
		cmd := m.setStatus("Stopped listening", false)
		return m, cmd
	}
	if err := m.recognizer.Start(); err != nil {
		if err == dictation.ErrUnavailable {
			cmd := m.setStatus("Voice input not available", true)
			return m, cmd
		}
		cmd := m.setStatus("Failed to start voice input", true)
		return m, cmd
	}
	return m, nil
}
