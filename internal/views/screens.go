package views

import (
	"fmt"
	"strings"
)

type TaskLineData struct {
	Selected  bool
	Completed bool
	Text      string
	Category  string
	DueLabel  string
	Overdue   bool
	Priority  string
}

func priorityMarker(priority string) string {
	switch priority {
	case "high":
		return "!!!"
	case "low":
		return "  ."
	default:
		return " !!"
	}
}

func RenderTaskLine(data TaskLineData) string {
	cursor := "  "
	if data.Selected {
		cursor = "> "
	}
	checkbox := "[ ]"
	if data.Completed {
		checkbox = "[x]"
	}
	text := data.Text
	if data.Completed {
		text = completedText.Render(text)
	}

	parts := []string{cursor + checkbox, priorityMarker(data.Priority), text}
	if data.Category != "" {
		parts = append(parts, categoryStyle.Render("#"+data.Category))
	}
	if data.DueLabel != "" {
		label := dueStyle.Render(data.DueLabel)
		if data.Overdue {
			label = overdueStyle.Render(data.DueLabel + " (overdue)")
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}

func RenderTaskList(items []TaskLineData) string {
	if len(items) == 0 {
		return RenderEmptyState()
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, RenderTaskLine(item))
	}
	return strings.Join(lines, "\n")
}

func RenderEmptyState() string {
	return dimStyle.Render("No tasks to show.")
}

func RenderStatsLine(total, completed int) string {
	plural := "s"
	if total == 1 {
		plural = ""
	}
	return fmt.Sprintf("%d task%s · %d done", total, plural, completed)
}

func RenderFilterBar(active string, search string) string {
	parts := make([]string, 0, 4)
	for _, status := range []string{"all", "active", "completed"} {
		label := status
		if status == active {
			label = activeStyle.Render("[" + status + "]")
		}
		parts = append(parts, label)
	}
	bar := strings.Join(parts, " ")
	if strings.TrimSpace(search) != "" {
		bar += dimStyle.Render(fmt.Sprintf("  search: %q", search))
	}
	return bar
}

func RenderCategoryBar(categories []string, active string) string {
	if len(categories) == 0 {
		return ""
	}
	parts := make([]string, 0, len(categories))
	for _, cat := range categories {
		label := "#" + cat
		if cat == active {
			label = activeStyle.Render("[#" + cat + "]")
		}
		parts = append(parts, label)
	}
	return parts[0] + " " + strings.Join(parts[1:], " ")
}

type AddFormData struct {
	TextView     string
	CategoryView string
	DueView      string
	Priority     string
}

func RenderAddForm(data AddFormData) string {
	lines := []string{
		headerStyle.Render("new task"),
		"text:     " + data.TextView,
		"category: " + data.CategoryView,
		"due:      " + data.DueView,
		"priority: " + data.Priority + dimStyle.Render("  (ctrl+p cycles)"),
		dimStyle.Render("enter saves · esc discards · tab switches field"),
	}
	return strings.Join(lines, "\n")
}

func RenderConfirm(prompt string) string {
	return errorStyle.Render(prompt) + dimStyle.Render("  [y]es / [n]o")
}

func RenderSearchBar(inputView string) string {
	return "search: " + inputView + dimStyle.Render("  (enter keeps, esc clears)")
}

func RenderPalette(inputView string) string {
	return "command: " + inputView
}

func RenderListening(spinnerView string) string {
	return spinnerView + " Listening..."
}
