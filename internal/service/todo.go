// Package service implements the business operations in front of the store.
// It validates input before it reaches the store and converts every storage
// failure into a typed domain error.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/pocketdo/pocketdo/internal/domain"
	"github.com/pocketdo/pocketdo/internal/storage"
)

// TodoService handles todo business logic.
type TodoService struct {
	store storage.Store
}

// NewTodoService creates a new TodoService backed by the given store.
func NewTodoService(store storage.Store) *TodoService {
	return &TodoService{store: store}
}

// Create validates and persists a new todo. The title must be non-empty
// after trimming; both title and description are stored trimmed.
func (s *TodoService) Create(ctx context.Context, title, description string) (*domain.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.NewValidationError("title is required")
	}

	todo, err := s.store.Create(ctx, title, strings.TrimSpace(description))
	if err != nil {
		return nil, domain.NewPersistenceError(err)
	}
	return todo, nil
}

// Get retrieves a todo by id.
func (s *TodoService) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	todo, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, domain.NewNotFoundError(id)
		}
		return nil, domain.NewPersistenceError(err)
	}
	return todo, nil
}

// List returns todos matching the filter, newest first. An invalid date
// range is rejected before any query is issued.
func (s *TodoService) List(ctx context.Context, f domain.Filter) ([]*domain.Todo, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	f.SearchText = strings.TrimSpace(f.SearchText)

	todos, err := s.store.List(ctx, f)
	if err != nil {
		return nil, domain.NewPersistenceError(err)
	}
	if todos == nil {
		todos = []*domain.Todo{}
	}
	return todos, nil
}

// UpdateInput carries a partial update. Only non-nil fields are applied.
type UpdateInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Update applies a partial update and returns the resulting todo. A present
// title must be non-empty after trimming.
func (s *TodoService) Update(ctx context.Context, id int64, input UpdateInput) (*domain.Todo, error) {
	fields := storage.UpdateFields{
		Description: input.Description,
		Completed:   input.Completed,
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domain.NewValidationError("title cannot be empty")
		}
		fields.Title = &title
	}
	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		fields.Description = &desc
	}

	todo, err := s.store.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, domain.NewNotFoundError(id)
		}
		return nil, domain.NewPersistenceError(err)
	}
	return todo, nil
}

// ToggleComplete sets the completion flag. Convenience alias for a
// completed-only Update.
func (s *TodoService) ToggleComplete(ctx context.Context, id int64, completed bool) (*domain.Todo, error) {
	return s.Update(ctx, id, UpdateInput{Completed: &completed})
}

// Delete removes a todo permanently.
func (s *TodoService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.NewNotFoundError(id)
		}
		return domain.NewPersistenceError(err)
	}
	return nil
}

// Stats returns the completion-state counts.
func (s *TodoService) Stats(ctx context.Context) (*domain.Stats, error) {
	total, completed, pending, err := s.store.Counts(ctx)
	if err != nil {
		return nil, domain.NewPersistenceError(err)
	}
	return &domain.Stats{Total: total, Completed: completed, Pending: pending}, nil
}

// Reset removes all todos. Dev/debug utility.
func (s *TodoService) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return domain.NewPersistenceError(err)
	}
	return nil
}
