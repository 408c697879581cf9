// Package controller owns the transient list-screen state: search text,
// completion filter, date range, and the loading/error flags around the
// queries they trigger.
package controller

import (
	"context"
	"sync"
	"time"

	"github.com/pocketdo/pocketdo/internal/domain"
)

// DefaultDebounce is the search-input quiescence delay before a query is
// issued.
const DefaultDebounce = 300 * time.Millisecond

// Lister is the query surface the controller drives.
type Lister interface {
	List(ctx context.Context, f domain.Filter) ([]*domain.Todo, error)
}

// State is a snapshot of the list-screen state. It is returned by value;
// observers never share mutable state with the controller.
type State struct {
	// SearchText is the raw input; DebouncedSearch is the last value that
	// survived the quiescence delay and is part of the active filter.
	SearchText      string
	DebouncedSearch string
	Completed       *bool
	DateFrom        string
	DateTo          string
	Loading         bool
	Err             string
	Todos           []*domain.Todo
}

// filter derives the list filter from the active state.
func (s State) filter() domain.Filter {
	return domain.Filter{
		SearchText: s.DebouncedSearch,
		Completed:  s.Completed,
		DateFrom:   s.DateFrom,
		DateTo:     s.DateTo,
	}
}

// Controller debounces search input, re-queries on filter changes and on
// screen focus, and guarantees that only the most recently issued query may
// apply its result (a slower, superseded query is discarded).
type Controller struct {
	svc      Lister
	delay    time.Duration
	onChange func(State)

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
	state State
}

// New creates a controller. onChange receives a state snapshot after every
// transition; it may be nil.
func New(svc Lister, delay time.Duration, onChange func(State)) *Controller {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if onChange == nil {
		onChange = func(State) {}
	}
	return &Controller{svc: svc, delay: delay, onChange: onChange}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetSearchText records a keystroke. The query is deferred until the input
// has been quiet for the debounce delay; intermediate values never reach the
// store.
func (c *Controller) SetSearchText(text string) {
	c.mu.Lock()
	c.state.SearchText = text
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, c.commitSearch)
	snapshot := c.state
	c.mu.Unlock()

	c.onChange(snapshot)
}

// commitSearch folds the quiesced search text into the active filter and
// re-queries.
func (c *Controller) commitSearch() {
	c.mu.Lock()
	c.state.DebouncedSearch = c.state.SearchText
	c.mu.Unlock()

	c.Refresh()
}

// FlushSearch commits any pending search text immediately, bypassing the
// remaining debounce delay.
func (c *Controller) FlushSearch() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	c.commitSearch()
}

// SetCompleted changes the completion-state filter and re-queries
// immediately. nil means no constraint.
func (c *Controller) SetCompleted(completed *bool) {
	c.mu.Lock()
	c.state.Completed = completed
	c.mu.Unlock()

	c.Refresh()
}

// SetDateRange changes the inclusive created-at date bounds. An inverted or
// malformed range withholds the query and surfaces a validation message
// instead.
func (c *Controller) SetDateRange(from, to string) {
	c.mu.Lock()
	c.state.DateFrom = from
	c.state.DateTo = to
	c.mu.Unlock()

	c.Refresh()
}

// ClearError resets the error message.
func (c *Controller) ClearError() {
	c.mu.Lock()
	c.state.Err = ""
	snapshot := c.state
	c.mu.Unlock()

	c.onChange(snapshot)
}

// Stop cancels any pending debounce timer.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Refresh re-issues the list query for the active filter. It is also the
// screen-focus hook: callers invoke it whenever the list regains visibility
// so out-of-band writes show up.
//
// Each call takes a fresh sequence number; a query that finishes after a
// newer one was issued discards its result (latest request wins).
func (c *Controller) Refresh() {
	c.mu.Lock()
	f := c.state.filter()
	if err := f.Validate(); err != nil {
		c.state.Err = err.Error()
		snapshot := c.state
		c.mu.Unlock()
		c.onChange(snapshot)
		return
	}

	c.seq++
	seq := c.seq
	c.state.Loading = true
	c.state.Err = ""
	snapshot := c.state
	c.mu.Unlock()

	c.onChange(snapshot)

	todos, err := c.svc.List(context.Background(), f)

	c.mu.Lock()
	if seq != c.seq {
		// A newer query was issued while this one ran; drop the result.
		c.mu.Unlock()
		return
	}
	c.state.Loading = false
	if err != nil {
		c.state.Err = err.Error()
	} else {
		c.state.Todos = todos
	}
	snapshot = c.state
	c.mu.Unlock()

	c.onChange(snapshot)
}
