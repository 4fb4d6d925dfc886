package store

import (
	"bytes"
	"errors"
	"log"
	"testing"
	"time"

	"taskline/internal/model"
)

// countingAdapter records save calls so tests can assert which operations
// trigger a persistence write.
type countingAdapter struct {
	saves    int
	last     []model.Task
	failWith error
}

func (a *countingAdapter) Load() ([]model.Task, error) { return a.last, nil }

func (a *countingAdapter) Save(tasks []model.Task) error {
	a.saves++
	a.last = append([]model.Task(nil), tasks...)
	return a.failWith
}

func fixedClock(start time.Time) func() time.Time {
	return func() time.Time { return start }
}

func newTestStore(t *testing.T) (*Store, *countingAdapter) {
	t.Helper()
	adapter := &countingAdapter{}
	s := New(adapter, nil, nil)
	s.SetClock(fixedClock(time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)))
	return s, adapter
}

func TestCreateBuildsTask(t *testing.T) {
	s, adapter := newTestStore(t)

	task, ok := s.Create("  Buy milk  ", " errands ", nil, "")
	if !ok {
		t.Fatal("expected creation to succeed")
	}
	if task.Text != "Buy milk" {
		t.Fatalf("expected trimmed text, got %q", task.Text)
	}
	if task.Completed {
		t.Fatal("new task must not be completed")
	}
	if task.Category == nil || *task.Category != "errands" {
		t.Fatalf("expected trimmed category, got %v", task.Category)
	}
	if task.Priority != model.PriorityMedium {
		t.Fatalf("expected default priority medium, got %q", task.Priority)
	}
	if task.CreatedAt.IsZero() {
		t.Fatal("expected created_at set")
	}
	if adapter.saves != 1 {
		t.Fatalf("expected one persistence write, got %d", adapter.saves)
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("created task must validate: %v", err)
	}
}

func TestCreateRefusesEmptyText(t *testing.T) {
	s, adapter := newTestStore(t)

	for _, raw := range []string{"", "   ", "\t\n"} {
		if _, ok := s.Create(raw, "", nil, model.PriorityHigh); ok {
			t.Fatalf("expected creation refused for %q", raw)
		}
	}
	if s.Len() != 0 {
		t.Fatalf("collection must stay unchanged, has %d tasks", s.Len())
	}
	if adapter.saves != 0 {
		t.Fatalf("refused creation must not persist, got %d writes", adapter.saves)
	}
}

func TestCreateNormalizesEmptyCategoryToAbsent(t *testing.T) {
	s, _ := newTestStore(t)
	task, _ := s.Create("task", "   ", nil, model.PriorityLow)
	if task.Category != nil {
		t.Fatalf("expected absent category, got %q", *task.Category)
	}
}

func TestCreatePrependsNewestFirst(t *testing.T) {
	s, _ := newTestStore(t)
	s.Create("first", "", nil, "")
	s.Create("second", "", nil, "")

	tasks := s.Tasks()
	if tasks[0].Text != "second" || tasks[1].Text != "first" {
		t.Fatalf("expected newest-first order, got %q then %q", tasks[0].Text, tasks[1].Text)
	}
}

func TestCreateIDsUnique(t *testing.T) {
	s, _ := newTestStore(t)

	// A frozen clock is the worst case for a timestamp-seeded id.
	seen := make(map[int64]bool)
	for i := 0; i < 50; i++ {
		task, _ := s.Create("task", "", nil, "")
		if seen[task.ID] {
			t.Fatalf("duplicate id issued: %d", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestNextIDSeedsPastLoadedCollection(t *testing.T) {
	existing := []model.Task{{
		ID:        9_999_999_999_999,
		Text:      "far future import",
		Priority:  model.PriorityMedium,
		CreatedAt: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
	}}
	s := New(&countingAdapter{}, existing, nil)
	s.SetClock(fixedClock(time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)))

	task, _ := s.Create("new", "", nil, "")
	if task.ID <= existing[0].ID {
		t.Fatalf("id %d collides with loaded id %d", task.ID, existing[0].ID)
	}
}

func TestToggleInvolution(t *testing.T) {
	s, _ := newTestStore(t)
	task, _ := s.Create("flip me", "", nil, "")

	if !s.Toggle(task.ID) {
		t.Fatal("expected toggle to find the task")
	}
	if !s.Tasks()[0].Completed {
		t.Fatal("expected completed after first toggle")
	}
	s.Toggle(task.ID)
	if s.Tasks()[0].Completed {
		t.Fatal("expected original state after second toggle")
	}
}

func TestToggleMissIsSilentNoop(t *testing.T) {
	s, adapter := newTestStore(t)
	s.Create("task", "", nil, "")
	writes := adapter.saves

	if s.Toggle(404) {
		t.Fatal("expected miss for unknown id")
	}
	if adapter.saves != writes {
		t.Fatal("miss must not trigger a persistence write")
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	s, _ := newTestStore(t)
	s.Create("a", "", nil, "")
	b, _ := s.Create("b", "", nil, "")
	s.Create("c", "", nil, "")

	if !s.Delete(b.ID) {
		t.Fatal("expected delete to find the task")
	}
	tasks := s.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks left, got %d", len(tasks))
	}
	if tasks[0].Text != "c" || tasks[1].Text != "a" {
		t.Fatalf("relative order disturbed: %q then %q", tasks[0].Text, tasks[1].Text)
	}

	if s.Delete(b.ID) {
		t.Fatal("second delete of same id must miss")
	}
}

func TestClearCompleted(t *testing.T) {
	s, adapter := newTestStore(t)
	s.Create("keep", "", nil, "")
	done, _ := s.Create("done", "", nil, "")
	s.Toggle(done.ID)
	writes := adapter.saves

	if removed := s.ClearCompleted(); removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if adapter.saves != writes+1 {
		t.Fatalf("expected one more persistence write, got %d", adapter.saves-writes)
	}
	if s.Len() != 1 || s.Tasks()[0].Text != "keep" {
		t.Fatalf("unexpected remaining tasks: %#v", s.Tasks())
	}

	// Nothing completed left: full no-op, no write.
	writes = adapter.saves
	if removed := s.ClearCompleted(); removed != 0 {
		t.Fatalf("expected no-op, removed %d", removed)
	}
	if adapter.saves != writes {
		t.Fatal("no-op clear must not persist")
	}
}

func TestClearAll(t *testing.T) {
	s, adapter := newTestStore(t)

	if removed := s.ClearAll(); removed != 0 {
		t.Fatalf("clear on empty collection must be a no-op, removed %d", removed)
	}
	if adapter.saves != 0 {
		t.Fatal("no-op clear must not persist")
	}

	s.Create("a", "", nil, "")
	s.Create("b", "", nil, "")
	if removed := s.ClearAll(); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty collection, got %d tasks", s.Len())
	}
}

func TestPersistFailureSwallowedAndLogged(t *testing.T) {
	var logged bytes.Buffer
	adapter := &countingAdapter{failWith: errors.New("disk full")}
	s := New(adapter, nil, log.New(&logged, "", 0))

	task, ok := s.Create("still created", "", nil, "")
	if !ok {
		t.Fatal("creation must succeed despite write failure")
	}
	if s.Len() != 1 || s.Tasks()[0].ID != task.ID {
		t.Fatal("in-memory state must stay authoritative")
	}
	if logged.Len() == 0 {
		t.Fatal("expected the write failure to be logged")
	}
}
