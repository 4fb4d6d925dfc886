// Package query computes filtered views and derived stats from a task
// collection snapshot. Everything here is pure: recomputed fresh on every
// call, no state, no side effects, so the engine is testable with no display
// surface at all.
package query

import (
	"strings"
	"time"

	"taskline/internal/model"
)

// Filtered applies, in order: status filter, case-insensitive search over
// text or category, and exact category filter. Output preserves the
// collection's newest-first order.
func Filtered(tasks []model.Task, view ViewState) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	search := strings.ToLower(strings.TrimSpace(view.Search))

	for _, t := range tasks {
		switch view.Status {
		case StatusActive:
			if t.Completed {
				continue
			}
		case StatusCompleted:
			if !t.Completed {
				continue
			}
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		if view.Category != "" && t.CategoryValue() != view.Category {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesSearch(t model.Task, search string) bool {
	if strings.Contains(strings.ToLower(t.Text), search) {
		return true
	}
	if t.Category != nil && strings.Contains(strings.ToLower(*t.Category), search) {
		return true
	}
	return false
}

// DistinctCategories returns every non-absent category once, ordered by
// first occurrence in the collection.
func DistinctCategories(tasks []model.Task) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, t := range tasks {
		if t.Category == nil {
			continue
		}
		if seen[*t.Category] {
			continue
		}
		seen[*t.Category] = true
		out = append(out, *t.Category)
	}
	return out
}

type Counts struct {
	Total     int
	Completed int
}

func Stats(tasks []model.Task) Counts {
	counts := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			counts.Completed++
		}
	}
	return counts
}

// IsOverdue reports whether an incomplete task's due date lies strictly
// before today. Completed tasks are never overdue, and a task due today is
// not overdue either.
func IsOverdue(t model.Task, now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(model.DateOf(now))
}

// FormatDueDate renders a due date relative to now: "Today", "Tomorrow", or
// a short month-day form.
func FormatDueDate(due model.Date, now time.Time) string {
	today := model.DateOf(now)
	switch {
	case due.Equal(today):
		return "Today"
	case due.Equal(today.AddDays(1)):
		return "Tomorrow"
	default:
		return due.Format("Jan 2")
	}
}
