package storage

import "taskline/internal/model"

// Adapter persists the whole task collection to a single durable slot. Save
// overwrites the slot; callers never observe a partial write. Load returns the
// stored collection in its persisted order, or an empty collection when the
// slot does not exist yet.
type Adapter interface {
	Load() ([]model.Task, error)
	Save(tasks []model.Task) error
}
