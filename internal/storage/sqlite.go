package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pocketdo/pocketdo/internal/domain"
)

// timeLayout is a fixed-width UTC ISO-8601 layout. Trailing zeros are kept so
// lexicographic order on the stored text equals chronological order, and
// SQLite's DATE() accepts the values directly.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// initialSchema creates the todos table and its supporting indexes. Running
// it is idempotent.
const initialSchema = `
CREATE TABLE IF NOT EXISTS todos (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    completed   INTEGER NOT NULL DEFAULT 0,
    created_at  TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at  TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_todos_completed ON todos(completed);
CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos(created_at);
`

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	closed bool
}

// Open opens (or creates) the database at path and ensures the schema
// exists. The dsn can also be ":memory:" for an in-memory database.
func Open(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	connStr := path
	if !strings.Contains(path, "?") {
		connStr += "?"
	} else {
		connStr += "&"
	}
	connStr += "_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One logical connection; the store serializes access naturally.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(initialSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Create inserts a new todo. Both timestamps come from the same instant, so
// created_at equals updated_at on a fresh row.
func (s *SQLiteStore) Create(ctx context.Context, title, description string) (*domain.Todo, error) {
	now := time.Now().UTC()
	ts := now.Format(timeLayout)

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO todos (title, description, completed, created_at, updated_at) VALUES (?, ?, 0, ?, ?)",
		title, description, ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted id: %w", err)
	}

	return &domain.Todo{
		ID:          id,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Get retrieves a todo by id.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, title, description, completed, created_at, updated_at FROM todos WHERE id = ?", id)

	todo, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

// List returns todos matching the filter, ordered descending by creation
// time (newest first).
func (s *SQLiteStore) List(ctx context.Context, f domain.Filter) ([]*domain.Todo, error) {
	var conditions []string
	var args []interface{}

	if f.Completed != nil {
		conditions = append(conditions, "completed = ?")
		args = append(args, boolToInt(*f.Completed))
	}
	if f.SearchText != "" {
		conditions = append(conditions, `(title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(f.SearchText) + "%"
		args = append(args, pattern, pattern)
	}
	if f.DateFrom != "" {
		conditions = append(conditions, "DATE(created_at) >= ?")
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		conditions = append(conditions, "DATE(created_at) <= ?")
		args = append(args, f.DateTo)
	}

	query := "SELECT id, title, description, completed, created_at, updated_at FROM todos"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []*domain.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

// Update applies a partial update, always restamping updated_at, then
// re-reads and returns the resulting row.
func (s *SQLiteStore) Update(ctx context.Context, id int64, fields UpdateFields) (*domain.Todo, error) {
	var sets []string
	var args []interface{}

	if fields.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *fields.Title)
	}
	if fields.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *fields.Description)
	}
	if fields.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, boolToInt(*fields.Completed))
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC().Format(timeLayout))
	args = append(args, id)

	query := "UPDATE todos SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return s.Get(ctx, id)
}

// Delete removes a todo by id.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Counts returns the total, completed, and pending row counts. The three
// counts are independent queries; any failure aborts the whole call.
func (s *SQLiteStore) Counts(ctx context.Context) (total, completed, pending int, err error) {
	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM todos").Scan(&total); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count todos: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM todos WHERE completed = 1").Scan(&completed); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count completed todos: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM todos WHERE completed = 0").Scan(&pending); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count pending todos: %w", err)
	}
	return total, completed, pending, nil
}

// Reset removes all rows.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM todos"); err != nil {
		return fmt.Errorf("failed to reset todos: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTodo(r rowScanner) (*domain.Todo, error) {
	var todo domain.Todo
	var completed int
	var createdAt, updatedAt string

	if err := r.Scan(&todo.ID, &todo.Title, &todo.Description, &completed, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	todo.Completed = completed == 1
	if t, err := time.Parse(timeLayout, createdAt); err == nil {
		todo.CreatedAt = t
	}
	if t, err := time.Parse(timeLayout, updatedAt); err == nil {
		todo.UpdatedAt = t
	}

	return &todo, nil
}

// escapeLike escapes LIKE wildcards so the search text matches as a literal
// substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
