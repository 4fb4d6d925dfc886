package update

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskline/internal/dictation"
	"taskline/internal/model"
	"taskline/internal/query"
	"taskline/internal/store"
)

type fakeRecognizer struct {
	events  chan dictation.Event
	started int
	stopped int
}

func newFakeRecognizer() *fakeRecognizer {
	return &fakeRecognizer{events: make(chan dictation.Event, 4)}
}

func (f *fakeRecognizer) Start() error { f.started++; return nil }

func (f *fakeRecognizer) Stop() { f.stopped++ }

func (f *fakeRecognizer) Events() <-chan dictation.Event { return f.events }

func newTestModel(t *testing.T) Model {
	t.Helper()
	s := store.New(nil, nil, nil)
	s.SetClock(func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) })
	m := NewModel(s)
	m.SetClock(func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) })
	return m
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "ctrl+p":
			msg = tea.KeyMsg{Type: tea.KeyCtrlP}
		default:
			// Deliver one rune per key message; a whole word in a single
			// KeyRunes message string-matches named bindings (e.g. "home").
			for _, r := range k {
				updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
				m = updated.(Model)
			}
			continue
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func addTask(t *testing.T, m Model, text string) Model {
	t.Helper()
	m = press(t, m, "a")
	if m.Mode() != ModeAdd {
		t.Fatalf("expected add mode, got %q", m.Mode())
	}
	m = press(t, m, text, "enter")
	if m.Mode() != ModeList {
		t.Fatalf("expected list mode after submit, got %q", m.Mode())
	}
	return m
}

func TestAddFlowCreatesTask(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, "Buy milk")

	visible := m.visible()
	if len(visible) != 1 || visible[0].Text != "Buy milk" {
		t.Fatalf("unexpected visible tasks: %#v", visible)
	}
	if !strings.Contains(m.Status().Text, "added") {
		t.Fatalf("expected added status, got %q", m.Status().Text)
	}
}

func TestAddFlowRefusesEmptyText(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a", "enter")
	if m.Mode() != ModeAdd {
		t.Fatalf("expected to stay in add mode, got %q", m.Mode())
	}
	if !m.Status().IsError {
		t.Fatalf("expected error status, got %+v", m.Status())
	}
	if m.visible() != nil && len(m.visible()) != 0 {
		t.Fatalf("collection must stay empty, got %#v", m.visible())
	}
}

func TestAddFormFieldsAndPriority(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a", "Buy milk", "tab", "errands", "tab", "2026-09-04", "ctrl+p", "enter")

	visible := m.visible()
	if len(visible) != 1 {
		t.Fatalf("expected one task, got %d", len(visible))
	}
	task := visible[0]
	if task.CategoryValue() != "errands" {
		t.Fatalf("unexpected category: %q", task.CategoryValue())
	}
	if task.DueDate == nil || task.DueDate.String() != "2026-09-04" {
		t.Fatalf("unexpected due date: %v", task.DueDate)
	}
	if task.Priority != model.PriorityHigh {
		t.Fatalf("expected priority cycled to high, got %q", task.Priority)
	}
}

func TestAddFormRejectsBadDueDate(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a", "Pay rent", "tab", "tab", "soon", "enter")
	if m.Mode() != ModeAdd {
		t.Fatalf("expected to stay in add mode, got %q", m.Mode())
	}
	if !m.Status().IsError {
		t.Fatalf("expected error status, got %+v", m.Status())
	}
}

func TestToggleAndDeleteFromList(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, "first")
	m = addTask(t, m, "second")

	// Cursor starts on the newest task ("second").
	m = press(t, m, " ")
	if !m.visible()[0].Completed {
		t.Fatal("expected cursor task toggled completed")
	}
	m = press(t, m, " ")
	if m.visible()[0].Completed {
		t.Fatal("expected toggle involution")
	}

	m = press(t, m, "j", "d")
	visible := m.visible()
	if len(visible) != 1 || visible[0].Text != "second" {
		t.Fatalf("expected only second left, got %#v", visible)
	}
}

func TestStatusFilterCycling(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, "open")
	m = addTask(t, m, "done")
	m = press(t, m, " ") // complete "done"

	m = press(t, m, "f") // active
	if m.ViewState().Status != query.StatusActive {
		t.Fatalf("expected active filter, got %q", m.ViewState().Status)
	}
	if len(m.visible()) != 1 || m.visible()[0].Text != "open" {
		t.Fatalf("unexpected active view: %#v", m.visible())
	}

	m = press(t, m, "f") // completed
	if len(m.visible()) != 1 || m.visible()[0].Text != "done" {
		t.Fatalf("unexpected completed view: %#v", m.visible())
	}

	m = press(t, m, "f") // back to all
	if m.ViewState().Status != query.StatusAll {
		t.Fatalf("expected all filter, got %q", m.ViewState().Status)
	}
}

func TestSearchNarrowsLive(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, "Buy milk")
	m = addTask(t, m, "Write report")

	m = press(t, m, "/")
	if m.Mode() != ModeSearch {
		t.Fatalf("expected search mode, got %q", m.Mode())
	}
	m = press(t, m, "MILK")
	visible := m.visible()
	if len(visible) != 1 || visible[0].Text != "Buy milk" {
		t.Fatalf("case-insensitive search failed: %#v", visible)
	}

	// Enter keeps the filter, esc clears it.
	m = press(t, m, "enter")
	if m.ViewState().Search != "MILK" {
		t.Fatalf("expected search kept, got %q", m.ViewState().Search)
	}
	m = press(t, m, "/", "esc")
	if m.ViewState().Search != "" {
		t.Fatalf("expected search cleared, got %q", m.ViewState().Search)
	}
}

func TestCategoryFilterCycling(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a", "chores", "tab", "home", "enter")
	m = press(t, m, "a", "errand", "tab", "errands", "enter")
	m = addTask(t, m, "uncategorized")

	m = press(t, m, "c")
	if m.ViewState().Category != "errands" {
		t.Fatalf("expected first category in collection order, got %q", m.ViewState().Category)
	}
	m = press(t, m, "c")
	if m.ViewState().Category != "home" {
		t.Fatalf("expected next category, got %q", m.ViewState().Category)
	}
	m = press(t, m, "c")
	if m.ViewState().Category != "" {
		t.Fatalf("expected filter cleared after last category, got %q", m.ViewState().Category)
	}
}

func TestCategoryFilterSurvivesDeletion(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a", "errand", "tab", "errands", "enter")
	m = press(t, m, "c") // filter on errands
	m = press(t, m, "d") // delete the only errands task

	// The stale filter stays set and simply matches nothing.
	if m.ViewState().Category != "errands" {
		t.Fatalf("category filter must not auto-reset, got %q", m.ViewState().Category)
	}
	if len(m.visible()) != 0 {
		t.Fatalf("expected empty filtered view, got %#v", m.visible())
	}
}

func TestClearCompletedConfirmGated(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, "open")
	m = addTask(t, m, "done")
	m = press(t, m, " ") // complete cursor task

	m = press(t, m, "C")
	if m.Mode() != ModeConfirm {
		t.Fatalf("expected confirm mode, got %q", m.Mode())
	}
	// Declining changes nothing.
	m = press(t, m, "n")
	if m.Mode() != ModeList || len(m.visible()) != 2 {
		t.Fatalf("decline must keep tasks, got %d", len(m.visible()))
	}

	m = press(t, m, "C", "y")
	visible := m.visible()
	if len(visible) != 1 || visible[0].Text != "open" {
		t.Fatalf("expected completed cleared, got %#v", visible)
	}
}

func TestClearCompletedNoopWithoutCompleted(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, "open")
	m = press(t, m, "C")
	if m.Mode() != ModeList {
		t.Fatalf("expected no confirm prompt when nothing completed, got %q", m.Mode())
	}
}

func TestClearAllConfirmGated(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "X")
	if m.Mode() != ModeList {
		t.Fatalf("empty collection must not prompt, got %q", m.Mode())
	}

	m = addTask(t, m, "a")
	m = press(t, m, "X", "y")
	if len(m.visible()) != 0 {
		t.Fatalf("expected everything cleared, got %#v", m.visible())
	}
}

func TestPaletteAddCommand(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, ":", "add buy milk cat:errands pri:high", "enter")

	visible := m.visible()
	if len(visible) != 1 {
		t.Fatalf("expected one task, got %#v", visible)
	}
	if visible[0].CategoryValue() != "errands" || visible[0].Priority != model.PriorityHigh {
		t.Fatalf("unexpected task from palette: %#v", visible[0])
	}
}

func TestPaletteFilterAndClearCommands(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, "open")
	m = addTask(t, m, "done")
	m = press(t, m, " ")

	m = press(t, m, ":", "filter completed", "enter")
	if m.ViewState().Status != query.StatusCompleted {
		t.Fatalf("expected completed filter, got %q", m.ViewState().Status)
	}

	m = press(t, m, ":", "clear completed", "enter")
	if m.Mode() != ModeConfirm {
		t.Fatalf("palette clear must still confirm, got %q", m.Mode())
	}
	m = press(t, m, "y", "f") // confirm, cycle back toward all
	if m.ViewState().Status != query.StatusAll {
		t.Fatalf("expected all filter, got %q", m.ViewState().Status)
	}
	if len(m.visible()) != 1 || m.visible()[0].Text != "open" {
		t.Fatalf("expected completed cleared, got %#v", m.visible())
	}
}

func TestPaletteUnknownCommandReportsError(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, ":", "snooze everything", "enter")
	if !m.Status().IsError {
		t.Fatalf("expected error status, got %+v", m.Status())
	}
}

func TestStatusExpiry(t *testing.T) {
	m := newTestModel(t)
	updated, cmd := m.Update(SetStatusMsg{Text: "saved", IsError: false})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected an expiry timer command")
	}
	if m.Status().Text != "saved" {
		t.Fatalf("unexpected status: %+v", m.Status())
	}

	// A stale expiry for an older status is ignored.
	updated, _ = m.Update(statusExpiredMsg{seq: m.statusSeq - 1})
	m = updated.(Model)
	if m.Status().Text != "saved" {
		t.Fatal("stale expiry must not clear a newer status")
	}

	updated, _ = m.Update(statusExpiredMsg{seq: m.statusSeq})
	m = updated.(Model)
	if m.Status().Text != "" {
		t.Fatalf("expected status cleared, got %+v", m.Status())
	}
}

func TestDictationResultFillsAddForm(t *testing.T) {
	rec := newFakeRecognizer()
	s := store.New(nil, nil, nil)
	m := NewModelWithConfig(s, rec, DefaultRuntimeConfig())

	updated, _ := m.Update(DictationEventMsg{Event: dictation.Event{Kind: dictation.EventStart}})
	m = updated.(Model)
	if !m.listening {
		t.Fatal("expected listening after start event")
	}

	updated, _ = m.Update(DictationEventMsg{Event: dictation.Event{Kind: dictation.EventResult, Text: "call plumber"}})
	m = updated.(Model)
	if m.Mode() != ModeAdd {
		t.Fatalf("expected add mode, got %q", m.Mode())
	}
	if m.taskInput.Value() != "call plumber" {
		t.Fatalf("expected recognized text in input, got %q", m.taskInput.Value())
	}
	// The collection itself is untouched until the user submits.
	if s.Len() != 0 {
		t.Fatalf("dictation must not create tasks directly, got %d", s.Len())
	}

	updated, _ = m.Update(DictationEventMsg{Event: dictation.Event{Kind: dictation.EventEnd}})
	m = updated.(Model)
	if m.listening {
		t.Fatal("expected listening cleared after end event")
	}
}

func TestDictationErrorBecomesTransientStatus(t *testing.T) {
	rec := newFakeRecognizer()
	m := NewModelWithConfig(store.New(nil, nil, nil), rec, DefaultRuntimeConfig())

	updated, cmd := m.Update(DictationEventMsg{Event: dictation.Event{Kind: dictation.EventError, Err: dictation.ErrNoSpeech}})
	m = updated.(Model)
	if !m.Status().IsError || !strings.Contains(m.Status().Text, "No speech") {
		t.Fatalf("unexpected status: %+v", m.Status())
	}
	if cmd == nil {
		t.Fatal("expected expiry timer alongside the error status")
	}
}

func TestDictateKeyTogglesRecognizer(t *testing.T) {
	rec := newFakeRecognizer()
	m := NewModelWithConfig(store.New(nil, nil, nil), rec, DefaultRuntimeConfig())

	m = press(t, m, "v")
	if rec.started != 1 {
		t.Fatalf("expected recognizer started once, got %d", rec.started)
	}

	m.listening = true
	m = press(t, m, "v")
	if rec.stopped != 1 {
		t.Fatalf("expected recognizer stopped once, got %d", rec.stopped)
	}
}

func TestDictateUnavailableReportsStatus(t *testing.T) {
	m := newTestModel(t) // NewModel wires the noop recognizer
	m = press(t, m, "v")
	if !m.Status().IsError {
		t.Fatalf("expected error status, got %+v", m.Status())
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(Model)
	if !m.quitting {
		t.Fatal("expected quitting flag")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.View() != "" {
		t.Fatal("expected empty view while quitting")
	}
}

func TestViewShowsTasksAndStats(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, "Buy milk")
	out := m.View()
	if !strings.Contains(out, "Buy milk") {
		t.Fatalf("expected task text in view: %q", out)
	}
	if !strings.Contains(out, "1 task") {
		t.Fatalf("expected stats in view: %q", out)
	}
}
