package store

import (
	"io"
	"log"
	"strings"
	"time"

	"taskline/internal/model"
	"taskline/internal/storage"
)

// Store owns the authoritative in-memory task collection. Every mutation is
// mirrored to the storage adapter; a failed write is logged and swallowed,
// the in-memory state stays authoritative for the session.
//
// The collection is ordered newest-first and no other component mutates it.
type Store struct {
	tasks   []model.Task
	adapter storage.Adapter
	log     *log.Logger
	lastID  int64
	now     func() time.Time
}

func New(adapter storage.Adapter, initial []model.Task, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	tasks := make([]model.Task, len(initial))
	copy(tasks, initial)

	var lastID int64
	for _, t := range tasks {
		if t.ID > lastID {
			lastID = t.ID
		}
	}
	return &Store{
		tasks:   tasks,
		adapter: adapter,
		log:     logger,
		lastID:  lastID,
		now:     time.Now,
	}
}

// SetClock overrides the creation-time source, for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Tasks returns a snapshot of the collection; callers must not rely on it
// reflecting later mutations.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int {
	return len(s.tasks)
}

// Create builds a task from raw input and prepends it to the collection.
// Text is trimmed; empty text refuses creation and reports ok=false. A
// trimmed-empty category becomes absent, an unrecognized priority becomes
// medium.
func (s *Store) Create(rawText, rawCategory string, due *model.Date, priority model.Priority) (model.Task, bool) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return model.Task{}, false
	}

	var category *string
	if trimmed := strings.TrimSpace(rawCategory); trimmed != "" {
		category = &trimmed
	}
	if !priority.IsValid() {
		priority = model.PriorityMedium
	}

	task := model.Task{
		ID:        s.nextID(),
		Text:      text,
		Category:  category,
		DueDate:   due,
		Priority:  priority,
		CreatedAt: s.now(),
	}
	s.tasks = append([]model.Task{task}, s.tasks...)
	s.persist()
	return task, true
}

// Toggle flips completion for the task with the given id. A miss is a silent
// no-op, not an error.
func (s *Store) Toggle(id int64) bool {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			s.persist()
			return true
		}
	}
	return false
}

// Delete removes the task with the given id if present. The active category
// filter is deliberately left untouched by callers even when the last task
// of that category goes away.
func (s *Store) Delete(id int64) bool {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

// ClearCompleted removes every completed task and reports how many were
// removed. With nothing completed it is a full no-op: no mutation and no
// persistence write. Confirmation is the caller's responsibility.
func (s *Store) ClearCompleted() int {
	kept := s.tasks[:0:0]
	removed := 0
	for _, t := range s.tasks {
		if t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	if removed == 0 {
		return 0
	}
	s.tasks = kept
	s.persist()
	return removed
}

// ClearAll removes every task, with the same no-op-if-empty and
// confirmation-gated-by-caller contract as ClearCompleted.
func (s *Store) ClearAll() int {
	removed := len(s.tasks)
	if removed == 0 {
		return 0
	}
	s.tasks = []model.Task{}
	s.persist()
	return removed
}

// nextID seeds from the creation instant in milliseconds and bumps past the
// last issued id on collision. Uniqueness is what matters, not chronology.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) persist() {
	if s.adapter == nil {
		return
	}
	if err := s.adapter.Save(s.tasks); err != nil {
		s.log.Printf("taskline: persisting tasks failed: %v", err)
	}
}
