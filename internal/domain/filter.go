package domain

import "time"

// DateLayout is the wire format for date-range bounds. Because the dates are
// zero-padded, lexicographic order equals chronological order.
const DateLayout = "2006-01-02"

// Filter narrows a list query. A zero-value field means no constraint.
type Filter struct {
	// SearchText matches as a substring of title or description.
	SearchText string
	// Completed, when set, matches the completion flag exactly.
	Completed *bool
	// DateFrom and DateTo are inclusive YYYY-MM-DD bounds on the date
	// portion of created_at.
	DateFrom string
	DateTo   string
}

// IsZero reports whether the filter places no constraints at all.
func (f Filter) IsZero() bool {
	return f.SearchText == "" && f.Completed == nil && f.DateFrom == "" && f.DateTo == ""
}

// Validate checks the date bounds. It returns a VALIDATION_FAILED error for a
// malformed date or an inverted range; callers must not issue a query in that
// case.
func (f Filter) Validate() error {
	if f.DateFrom != "" && !validDate(f.DateFrom) {
		return NewValidationError("start date must be in YYYY-MM-DD format")
	}
	if f.DateTo != "" && !validDate(f.DateTo) {
		return NewValidationError("end date must be in YYYY-MM-DD format")
	}
	if f.DateFrom != "" && f.DateTo != "" && f.DateFrom > f.DateTo {
		return NewValidationError("start date cannot be after end date")
	}
	return nil
}

// validDate requires an exact, round-tripping YYYY-MM-DD string so values
// like "2026-13-40" or "2026-1-2" are rejected.
func validDate(s string) bool {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(DateLayout) == s
}
