package storage

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"taskline/internal/model"
)

// JSONFile stores the collection as a JSON array in a single file, the
// default backend. Malformed content is treated as no prior data: it is
// logged and an empty collection is returned instead of an error, so a
// corrupt slot never prevents startup.
type JSONFile struct {
	path string
	log  *log.Logger
}

func NewJSONFile(path string, logger *log.Logger) *JSONFile {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &JSONFile{path: path, log: logger}
}

func (s *JSONFile) Load() ([]model.Task, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Task{}, nil
		}
		return nil, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return []model.Task{}, nil
	}
	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		s.log.Printf("taskline: discarding malformed task data in %s: %v", s.path, err)
		return []model.Task{}, nil
	}
	return tasks, nil
}

func (s *JSONFile) Save(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	payload, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
