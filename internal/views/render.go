package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header      string
	FilterBar   string
	CategoryBar string
	Body        string
	StatsLine   string
	StatusLine  string
	StatusIsErr bool
	Footer      string
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dueStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	activeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	completedText = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
)

func RenderApp(data AppData) string {
	lines := []string{headerStyle.Render(data.Header)}
	if data.FilterBar != "" {
		lines = append(lines, data.FilterBar)
	}
	if data.CategoryBar != "" {
		lines = append(lines, data.CategoryBar)
	}
	lines = append(lines, panelStyle.Width(64).Render(data.Body))
	if data.StatsLine != "" {
		lines = append(lines, dimStyle.Render(data.StatsLine))
	}
	if data.StatusLine != "" {
		style := statusStyle
		if data.StatusIsErr {
			style = errorStyle
		}
		lines = append(lines, style.Render(data.StatusLine))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
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
