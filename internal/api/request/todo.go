// Package request decodes and validates inbound API payloads.
package request

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pocketdo/pocketdo/internal/domain"
)

// CreateTodoRequest represents a request to create a todo.
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate validates the create request.
func (r *CreateTodoRequest) Validate() []string {
	var errs []string
	if !domain.ValidTitle(r.Title) {
		errs = append(errs, "title is required")
	}
	return errs
}

// UpdateTodoRequest represents a partial update. Absent fields are left
// untouched.
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// Validate validates the update request.
func (r *UpdateTodoRequest) Validate() []string {
	var errs []string
	if r.Title != nil && !domain.ValidTitle(*r.Title) {
		errs = append(errs, "title cannot be empty")
	}
	if r.Title == nil && r.Description == nil && r.Completed == nil {
		errs = append(errs, "at least one field must be provided")
	}
	return errs
}

// ToggleRequest sets the completion flag.
type ToggleRequest struct {
	Completed bool `json:"completed"`
}

// DecodeJSON decodes JSON from the request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ParseFilter extracts the list filter from query parameters:
// search, completed (true/false), from and to (YYYY-MM-DD).
func ParseFilter(r *http.Request) domain.Filter {
	q := r.URL.Query()

	f := domain.Filter{
		SearchText: strings.TrimSpace(q.Get("search")),
		DateFrom:   q.Get("from"),
		DateTo:     q.Get("to"),
	}

	switch q.Get("completed") {
	case "true", "1":
		completed := true
		f.Completed = &completed
	case "false", "0":
		completed := false
		f.Completed = &completed
	}

	return f
}
