package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"taskline/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLite stores the collection in a tasks table with an explicit position
// column, so display order round-trips verbatim. Save replaces the whole
// snapshot inside one transaction, matching the single-slot contract of the
// JSON backend.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) (*SQLite, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLite{db: db}, nil
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	store, err := NewSQLite(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Load() ([]model.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, text, completed, category, due_date, priority, created_at
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		var (
			task      model.Task
			completed int
			category  sql.NullString
			dueDate   sql.NullString
			createdAt string
		)
		if err := rows.Scan(&task.ID, &task.Text, &completed, &category, &dueDate, &task.Priority, &createdAt); err != nil {
			return nil, err
		}
		task.Completed = completed != 0
		if category.Valid {
			value := category.String
			task.Category = &value
		}
		if dueDate.Valid {
			due, parseErr := model.ParseDate(dueDate.String)
			if parseErr != nil {
				return nil, parseErr
			}
			task.DueDate = &due
		}
		created, parseErr := time.Parse(sqliteTimeLayout, createdAt)
		if parseErr != nil {
			return nil, fmt.Errorf("parse created_at: %w", parseErr)
		}
		task.CreatedAt = created
		out = append(out, task)
	}
	return out, rows.Err()
}

func (s *SQLite) Save(tasks []model.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		tx.Rollback()
		return err
	}
	for position, task := range tasks {
		_, err := tx.Exec(`
			INSERT INTO tasks (id, position, text, completed, category, due_date, priority, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			task.ID, position, task.Text, boolInt(task.Completed),
			nullString(task.Category), nullDate(task.DueDate),
			string(task.Priority), task.CreatedAt.UTC().Format(sqliteTimeLayout),
		)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullDate(v *model.Date) any {
	if v == nil {
		return nil
	}
	return v.String()
}
