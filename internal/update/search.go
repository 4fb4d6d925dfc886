package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Search filters live: every keystroke updates the view state, so the list
// below the search bar narrows as the user types.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = ModeList
		m.searchInput.Blur()
		m.clampCursor()
		return m, nil
	case "esc":
		m.view.SetSearch("")
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.mode = ModeList
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.view.SetSearch(m.searchInput.Value())
	m.clampCursor()
	return m, cmd
}
