package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"taskline/internal/dictation"
	"taskline/internal/storage"
	"taskline/internal/store"
	"taskline/internal/update"
)

func main() {
	logger := log.New(os.Stderr, "", log.LstdFlags)
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	adapter, closeAdapter, err := openAdapter(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "taskline failed: %v\n", err)
		os.Exit(1)
	}
	defer closeAdapter()

	tasks, err := adapter.Load()
	if err != nil {
		// Unreadable storage is treated as no prior data; this session's
		// tasks still persist best-effort.
		logger.Printf("taskline: loading tasks failed, starting empty: %v", err)
		tasks = nil
	}
	taskStore := store.New(adapter, tasks, logger)

	var recognizer dictation.Recognizer = dictation.NewNoop()
	if cfg.DictationCommand != "" {
		recognizer = dictation.NewExecRecognizer(cfg.DictationCommand)
	}

	program := tea.NewProgram(update.NewModelWithConfig(taskStore, recognizer, cfg))
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "taskline failed: %v\n", err)
		os.Exit(1)
	}
}

func openAdapter(cfg update.RuntimeConfig, logger *log.Logger) (storage.Adapter, func(), error) {
	if cfg.Storage == "sqlite" {
		path := cfg.DBFile
		if path == "" {
			path = filepath.Join(dataDir(), "tasks.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, err
		}
		db, err := storage.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	}

	path := cfg.DataFile
	if path == "" {
		path = filepath.Join(dataDir(), "tasks.json")
	}
	return storage.NewJSONFile(path, logger), func() {}, nil
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".taskline")
}
