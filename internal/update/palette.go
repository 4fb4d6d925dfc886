package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"taskline/internal/commands"
	"taskline/internal/model"
	"taskline/internal/query"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeList
		m.commandInput.Blur()
		return m, nil
	case "enter":
		input := m.commandInput.Value()
		m.mode = ModeList
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		return m.runCommand(input)
	}

	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}

func (m Model) runCommand(input string) (tea.Model, tea.Cmd) {
	cmd, err := commands.Parse(input)
	if err != nil {
		statusCmd := m.setStatus(err.Error(), true)
		return m, statusCmd
	}

	// Handlers close over the model; pointer-receiver mutations land on the
	// copy Bubble Tea hands back to the runtime.
	result, err := commands.Execute(cmd, commands.Handlers{
		Add:      m.commandAdd,
		Search:   m.commandSearch,
		Filter:   m.commandFilter,
		Category: m.commandCategory,
		Clear:    m.commandClear,
	})
	if err != nil {
		statusCmd := m.setStatus(err.Error(), true)
		return m, statusCmd
	}
	m.clampCursor()
	var statusCmd tea.Cmd
	if result.Message != "" {
		statusCmd = m.setStatus(result.Message, false)
	}
	// Clear commands route through the confirmation screen.
	if cmd.Type == commands.TypeClear && m.confirm != ConfirmNone {
		m.mode = ModeConfirm
	}
	return m, statusCmd
}

func (m *Model) commandAdd(args commands.AddArgs) (commands.Result, error) {
	var due *model.Date
	if args.Due != "" {
		parsed, err := model.ParseDate(args.Due)
		if err != nil {
			return commands.Result{}, &commands.CommandError{
				Code:    commands.ErrCodeInvalidArgument,
				Message: "due date must be YYYY-MM-DD",
			}
		}
		due = &parsed
	}
	priority, err := model.ParsePriority(args.Priority)
	if err != nil {
		return commands.Result{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: "priority must be low, medium or high",
		}
	}
	task, ok := m.store.Create(args.Text, args.Category, due, priority)
	if !ok {
		return commands.Result{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: "add requires task text",
		}
	}
	m.cursor = 0
	return commands.Result{Message: fmt.Sprintf("added %q", task.Text)}, nil
}

func (m *Model) commandSearch(args commands.SearchArgs) (commands.Result, error) {
	m.view.SetSearch(args.Query)
	if args.Query == "" {
		return commands.Result{Message: "search cleared"}, nil
	}
	return commands.Result{Message: fmt.Sprintf("searching %q", args.Query)}, nil
}

func (m *Model) commandFilter(args commands.FilterArgs) (commands.Result, error) {
	m.view.SetStatus(query.StatusFilter(args.Status))
	return commands.Result{Message: "showing " + args.Status}, nil
}

func (m *Model) commandCategory(args commands.CategoryArgs) (commands.Result, error) {
	if args.Name == "" {
		m.view.ClearCategory()
		return commands.Result{Message: "category filter cleared"}, nil
	}
	m.view.ToggleCategory(args.Name)
	if m.view.Category == "" {
		return commands.Result{Message: "category filter cleared"}, nil
	}
	return commands.Result{Message: "filtering category " + args.Name}, nil
}

func (m *Model) commandClear(args commands.ClearArgs) (commands.Result, error) {
	switch args.Scope {
	case commands.ClearScopeCompleted:
		if query.Stats(m.store.Tasks()).Completed == 0 {
			return commands.Result{Message: "nothing completed to clear"}, nil
		}
		m.confirm = ConfirmClearCompleted
	case commands.ClearScopeAll:
		if m.store.Len() == 0 {
			return commands.Result{Message: "nothing to clear"}, nil
		}
		m.confirm = ConfirmClearAll
	}
	return commands.Result{}, nil
}
