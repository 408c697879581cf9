package request

import (
	"net/http/httptest"
	"testing"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestParseFilter(t *testing.T) {
	t.Run("no params", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/todos", nil)
		f := ParseFilter(r)
		if !f.IsZero() {
			t.Errorf("expected zero filter, got %+v", f)
		}
	})

	t.Run("all params", func(t *testing.T) {
		r := httptest.NewRequest("GET",
			"/v1/todos?search=+milk+&completed=true&from=2026-01-01&to=2026-01-31", nil)
		f := ParseFilter(r)
		if f.SearchText != "milk" {
			t.Errorf("expected trimmed search 'milk', got '%s'", f.SearchText)
		}
		if f.Completed == nil || !*f.Completed {
			t.Error("expected completed=true")
		}
		if f.DateFrom != "2026-01-01" || f.DateTo != "2026-01-31" {
			t.Errorf("unexpected date bounds %s..%s", f.DateFrom, f.DateTo)
		}
	})

	t.Run("numeric completed values", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/todos?completed=0", nil)
		f := ParseFilter(r)
		if f.Completed == nil || *f.Completed {
			t.Error("expected completed=false for '0'")
		}
	})

	t.Run("unknown completed value is ignored", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/todos?completed=maybe", nil)
		f := ParseFilter(r)
		if f.Completed != nil {
			t.Error("expected no completion constraint for unrecognized value")
		}
	})
}

func TestUpdateTodoRequestValidate(t *testing.T) {
	t.Run("all fields absent", func(t *testing.T) {
		r := UpdateTodoRequest{}
		if errs := r.Validate(); len(errs) == 0 {
			t.Error("expected error for empty update")
		}
	})

	t.Run("present empty title", func(t *testing.T) {
		r := UpdateTodoRequest{Title: strPtr("  ")}
		if errs := r.Validate(); len(errs) == 0 {
			t.Error("expected error for blank title")
		}
	})

	t.Run("completed alone is enough", func(t *testing.T) {
		r := UpdateTodoRequest{Completed: boolPtr(true)}
		if errs := r.Validate(); len(errs) != 0 {
			t.Errorf("expected no errors, got %v", errs)
		}
	})
}
