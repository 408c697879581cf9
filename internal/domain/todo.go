// Package domain defines the core entities and error taxonomy for pocketdo.
package domain

import (
	"strings"
	"time"
)

// Todo represents a single to-do entry.
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Stats summarizes the store contents by completion state.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// ValidTitle reports whether a title is acceptable for persisting:
// non-empty after trimming surrounding whitespace.
func ValidTitle(title string) bool {
	return strings.TrimSpace(title) != ""
}
