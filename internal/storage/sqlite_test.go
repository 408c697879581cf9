package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pocketdo/pocketdo/internal/domain"
)

// setupTestStore creates an in-memory SQLite database for testing
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	t.Run("creates todo successfully", func(t *testing.T) {
		todo, err := store.Create(ctx, "Buy milk", "2 liters")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if todo.ID == 0 {
			t.Error("expected a non-zero id")
		}
		if todo.Title != "Buy milk" {
			t.Errorf("expected title 'Buy milk', got '%s'", todo.Title)
		}
		if todo.Description != "2 liters" {
			t.Errorf("expected description '2 liters', got '%s'", todo.Description)
		}
		if todo.Completed {
			t.Error("expected new todo to be pending")
		}
		if !todo.CreatedAt.Equal(todo.UpdatedAt) {
			t.Errorf("expected created_at == updated_at on a fresh todo, got %v and %v",
				todo.CreatedAt, todo.UpdatedAt)
		}
	})

	t.Run("assigns increasing ids", func(t *testing.T) {
		first, err := store.Create(ctx, "First", "")
		if err != nil {
			t.Fatalf("failed to create first todo: %v", err)
		}
		second, err := store.Create(ctx, "Second", "")
		if err != nil {
			t.Fatalf("failed to create second todo: %v", err)
		}
		if second.ID <= first.ID {
			t.Errorf("expected id %d > %d", second.ID, first.ID)
		}
	})

	t.Run("round-trips through Get", func(t *testing.T) {
		created, err := store.Create(ctx, "Round trip", "check persistence")
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}

		got, err := store.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to get created todo: %v", err)
		}
		if got.Title != created.Title {
			t.Errorf("expected title '%s', got '%s'", created.Title, got.Title)
		}
		if got.Description != created.Description {
			t.Errorf("expected description '%s', got '%s'", created.Description, got.Description)
		}
		if !got.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("expected created_at %v, got %v", created.CreatedAt, got.CreatedAt)
		}
	})
}

func TestGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	t.Run("returns ErrNotFound for missing id", func(t *testing.T) {
		_, err := store.Get(ctx, 9999)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})
}

func TestList(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	seed := []struct {
		title       string
		description string
		completed   bool
	}{
		{"Buy milk", "2 liters", false},
		{"Write report", "quarterly numbers", true},
		{"Call dentist", "reschedule milk-free diet chat", false},
	}
	var ids []int64
	for _, s := range seed {
		todo, err := store.Create(ctx, s.title, s.description)
		if err != nil {
			t.Fatalf("failed to seed todo: %v", err)
		}
		if s.completed {
			if _, err := store.Update(ctx, todo.ID, UpdateFields{Completed: boolPtr(true)}); err != nil {
				t.Fatalf("failed to complete seeded todo: %v", err)
			}
		}
		ids = append(ids, todo.ID)
	}

	t.Run("returns all todos newest first", func(t *testing.T) {
		todos, err := store.List(ctx, domain.Filter{})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(todos) != 3 {
			t.Fatalf("expected 3 todos, got %d", len(todos))
		}
		for i := 1; i < len(todos); i++ {
			if todos[i].CreatedAt.After(todos[i-1].CreatedAt) {
				t.Errorf("expected newest-first ordering, got %v before %v",
					todos[i-1].CreatedAt, todos[i].CreatedAt)
			}
		}
		if todos[0].ID != ids[2] {
			t.Errorf("expected newest todo first (id %d), got id %d", ids[2], todos[0].ID)
		}
	})

	t.Run("filters by completion", func(t *testing.T) {
		todos, err := store.List(ctx, domain.Filter{Completed: boolPtr(true)})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(todos) != 1 {
			t.Fatalf("expected 1 completed todo, got %d", len(todos))
		}
		if todos[0].Title != "Write report" {
			t.Errorf("expected 'Write report', got '%s'", todos[0].Title)
		}
	})

	t.Run("matches substring in title or description", func(t *testing.T) {
		todos, err := store.List(ctx, domain.Filter{SearchText: "milk"})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		// "Buy milk" by title, "Call dentist" by description
		if len(todos) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(todos))
		}
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		todos, err := store.List(ctx, domain.Filter{SearchText: "MILK"})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(todos) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(todos))
		}
	})

	t.Run("treats LIKE wildcards as literals", func(t *testing.T) {
		todo, err := store.Create(ctx, "100% done_deal", "")
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}
		defer store.Delete(ctx, todo.ID)

		todos, err := store.List(ctx, domain.Filter{SearchText: "100% done_deal"})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(todos) != 1 {
			t.Fatalf("expected exactly the literal match, got %d todos", len(todos))
		}

		// A bare "%" must not match everything
		todos, err = store.List(ctx, domain.Filter{SearchText: "%"})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(todos) != 1 {
			t.Fatalf("expected 1 match for literal %%, got %d", len(todos))
		}
	})

	t.Run("filters by date range", func(t *testing.T) {
		today := time.Now().UTC().Format(domain.DateLayout)

		todos, err := store.List(ctx, domain.Filter{DateFrom: today, DateTo: today})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(todos) != 3 {
			t.Errorf("expected all 3 todos created today, got %d", len(todos))
		}

		todos, err = store.List(ctx, domain.Filter{DateFrom: "2099-01-01"})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(todos) != 0 {
			t.Errorf("expected no todos created in 2099, got %d", len(todos))
		}

		todos, err = store.List(ctx, domain.Filter{DateTo: "2000-01-01"})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(todos) != 0 {
			t.Errorf("expected no todos created before 2000, got %d", len(todos))
		}
	})

	t.Run("combines filters with AND", func(t *testing.T) {
		todos, err := store.List(ctx, domain.Filter{
			SearchText: "milk",
			Completed:  boolPtr(false),
		})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(todos) != 2 {
			t.Fatalf("expected 2 pending milk todos, got %d", len(todos))
		}

		todos, err = store.List(ctx, domain.Filter{
			SearchText: "milk",
			Completed:  boolPtr(true),
		})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(todos) != 0 {
			t.Fatalf("expected no completed milk todos, got %d", len(todos))
		}
	})

	t.Run("completion filters partition the full list", func(t *testing.T) {
		all, err := store.List(ctx, domain.Filter{})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		pending, err := store.List(ctx, domain.Filter{Completed: boolPtr(false)})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		completed, err := store.List(ctx, domain.Filter{Completed: boolPtr(true)})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(pending)+len(completed) != len(all) {
			t.Errorf("expected pending (%d) + completed (%d) to equal all (%d)",
				len(pending), len(completed), len(all))
		}
	})

	t.Run("returns empty slice when nothing matches", func(t *testing.T) {
		todos, err := store.List(ctx, domain.Filter{SearchText: "no such text"})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if todos == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(todos) != 0 {
			t.Errorf("expected no todos, got %d", len(todos))
		}
	})
}

func TestUpdate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	t.Run("updates only present fields", func(t *testing.T) {
		created, err := store.Create(ctx, "Original", "original description")
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}

		updated, err := store.Update(ctx, created.ID, UpdateFields{Title: strPtr("Renamed")})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if updated.Title != "Renamed" {
			t.Errorf("expected title 'Renamed', got '%s'", updated.Title)
		}
		if updated.Description != "original description" {
			t.Errorf("expected description unchanged, got '%s'", updated.Description)
		}
		if updated.Completed {
			t.Error("expected completed unchanged")
		}
	})

	t.Run("restamps updated_at but not created_at", func(t *testing.T) {
		created, err := store.Create(ctx, "Stamp check", "")
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}

		time.Sleep(5 * time.Millisecond)

		updated, err := store.Update(ctx, created.ID, UpdateFields{Completed: boolPtr(true)})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if !updated.CreatedAt.Equal(created.CreatedAt) {
			t.Errorf("expected created_at unchanged, got %v (was %v)",
				updated.CreatedAt, created.CreatedAt)
		}
		if !updated.UpdatedAt.After(created.UpdatedAt) {
			t.Errorf("expected updated_at strictly after %v, got %v",
				created.UpdatedAt, updated.UpdatedAt)
		}
	})

	t.Run("toggle is reversible", func(t *testing.T) {
		created, err := store.Create(ctx, "Toggle me", "")
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}

		on, err := store.Update(ctx, created.ID, UpdateFields{Completed: boolPtr(true)})
		if err != nil {
			t.Fatalf("failed to complete todo: %v", err)
		}
		if !on.Completed {
			t.Error("expected todo to be completed")
		}

		off, err := store.Update(ctx, created.ID, UpdateFields{Completed: boolPtr(false)})
		if err != nil {
			t.Fatalf("failed to un-complete todo: %v", err)
		}
		if off.Completed {
			t.Error("expected todo to be pending again")
		}
	})

	t.Run("returns ErrNotFound for missing id", func(t *testing.T) {
		_, err := store.Update(ctx, 9999, UpdateFields{Title: strPtr("nope")})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	t.Run("deletes existing todo", func(t *testing.T) {
		created, err := store.Create(ctx, "Delete me", "")
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}

		if err := store.Delete(ctx, created.ID); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		_, err = store.Get(ctx, created.ID)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got: %v", err)
		}
	})

	t.Run("second delete returns ErrNotFound", func(t *testing.T) {
		created, err := store.Create(ctx, "Delete twice", "")
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}

		if err := store.Delete(ctx, created.ID); err != nil {
			t.Fatalf("first delete failed: %v", err)
		}
		err = store.Delete(ctx, created.ID)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got: %v", err)
		}
	})
}

func TestCounts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	assertCounts := func(t *testing.T, wantTotal, wantCompleted, wantPending int) {
		t.Helper()
		total, completed, pending, err := store.Counts(ctx)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if total != wantTotal || completed != wantCompleted || pending != wantPending {
			t.Errorf("expected counts %d/%d/%d, got %d/%d/%d",
				wantTotal, wantCompleted, wantPending, total, completed, pending)
		}
	}

	assertCounts(t, 0, 0, 0)

	first, err := store.Create(ctx, "First", "")
	if err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}
	if _, err := store.Create(ctx, "Second", ""); err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}
	assertCounts(t, 2, 0, 2)

	if _, err := store.Update(ctx, first.ID, UpdateFields{Completed: boolPtr(true)}); err != nil {
		t.Fatalf("failed to complete todo: %v", err)
	}
	assertCounts(t, 2, 1, 1)

	if err := store.Reset(ctx); err != nil {
		t.Fatalf("failed to reset: %v", err)
	}
	assertCounts(t, 0, 0, 0)
}

func TestOpen(t *testing.T) {
	t.Run("rejects empty path", func(t *testing.T) {
		_, err := Open("")
		if err == nil {
			t.Fatal("expected error for empty path")
		}
	})

	t.Run("creates parent directory and persists", func(t *testing.T) {
		path := t.TempDir() + "/nested/dir/todos.db"

		store, err := Open(path)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		created, err := store.Create(context.Background(), "Persisted", "")
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("failed to close store: %v", err)
		}

		reopened, err := Open(path)
		if err != nil {
			t.Fatalf("failed to reopen store: %v", err)
		}
		defer reopened.Close()

		got, err := reopened.Get(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("failed to get persisted todo: %v", err)
		}
		if got.Title != "Persisted" {
			t.Errorf("expected title 'Persisted', got '%s'", got.Title)
		}
	})

	t.Run("close is idempotent", func(t *testing.T) {
		store, err := Open(":memory:")
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("first close failed: %v", err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("second close failed: %v", err)
		}
	})
}
