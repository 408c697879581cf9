// Package storage defines the interface for the pocketdo persistence layer.
package storage

import (
	"context"
	"errors"

	"github.com/pocketdo/pocketdo/internal/domain"
)

// ErrNotFound is returned when a requested todo does not exist.
var ErrNotFound = errors.New("todo not found")

// UpdateFields carries a partial update. Only non-nil fields are written;
// updated_at is always restamped.
type UpdateFields struct {
	Title       *string
	Description *string
	Completed   *bool
}

// IsZero reports whether no field is present.
func (u UpdateFields) IsZero() bool {
	return u.Title == nil && u.Description == nil && u.Completed == nil
}

// Store is the persistence contract consumed by the service layer.
// Implementations serialize access over a single logical connection; callers
// never issue overlapping writes to the same row.
type Store interface {
	// Create inserts a new todo and returns it with the assigned id and
	// both timestamps stamped from the same instant.
	Create(ctx context.Context, title, description string) (*domain.Todo, error)

	// Get retrieves a todo by id. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, id int64) (*domain.Todo, error)

	// List returns todos matching the filter, newest first. An empty result
	// is an empty slice, not an error.
	List(ctx context.Context, f domain.Filter) ([]*domain.Todo, error)

	// Update applies a partial update and returns the resulting row.
	// Returns ErrNotFound if no row with the id exists.
	Update(ctx context.Context, id int64, fields UpdateFields) (*domain.Todo, error)

	// Delete removes a todo permanently. Returns ErrNotFound if no row with
	// the id exists.
	Delete(ctx context.Context, id int64) error

	// Counts returns the total, completed, and pending row counts.
	Counts(ctx context.Context) (total, completed, pending int, err error)

	// Reset removes all rows. Dev/debug utility.
	Reset(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}
