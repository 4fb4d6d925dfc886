package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskline/internal/model"
)

const addFieldCount = 3

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeList
		m.resetAddForm()
		return m, nil
	case "enter":
		return m.submitAddForm()
	case "tab":
		m.focusAddField((m.addFocus + 1) % addFieldCount)
		return m, nil
	case "shift+tab":
		m.focusAddField((m.addFocus + addFieldCount - 1) % addFieldCount)
		return m, nil
	case "ctrl+p":
		m.priorityChoice = nextPriority(m.priorityChoice)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.addFocus {
	case 1:
		m.categoryInput, cmd = m.categoryInput.Update(msg)
	case 2:
		m.dueInput, cmd = m.dueInput.Update(msg)
	default:
		m.taskInput, cmd = m.taskInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) focusAddField(index int) {
	m.addFocus = index
	m.taskInput.Blur()
	m.categoryInput.Blur()
	m.dueInput.Blur()
	switch index {
	case 1:
		m.categoryInput.Focus()
	case 2:
		m.dueInput.Focus()
	default:
		m.taskInput.Focus()
	}
}

func (m Model) submitAddForm() (tea.Model, tea.Cmd) {
	text := m.taskInput.Value()
	if strings.TrimSpace(text) == "" {
		cmd := m.setStatus("task text is required", true)
		return m, cmd
	}

	var due *model.Date
	if raw := strings.TrimSpace(m.dueInput.Value()); raw != "" {
		parsed, err := model.ParseDate(raw)
		if err != nil {
			cmd := m.setStatus("due date must be YYYY-MM-DD", true)
			return m, cmd
		}
		due = &parsed
	}

	task, ok := m.store.Create(text, m.categoryInput.Value(), due, m.priorityChoice)
	if !ok {
		// The store refuses empty text as a defense; reachable only if the
		// trim check above and the store ever disagree.
		cmd := m.setStatus("task text is required", true)
		return m, cmd
	}
	m.mode = ModeList
	m.resetAddForm()
	m.cursor = 0
	cmd := m.setStatus(fmt.Sprintf("added %q", task.Text), false)
	return m, cmd
}

func nextPriority(p model.Priority) model.Priority {
	switch p {
	case model.PriorityLow:
		return model.PriorityMedium
	case model.PriorityMedium:
		return model.PriorityHigh
	default:
		return model.PriorityLow
	}
}
