// Package ui implements the interactive terminal frontend for pocketdo.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pocketdo/pocketdo/internal/controller"
	"github.com/pocketdo/pocketdo/internal/domain"
	"github.com/pocketdo/pocketdo/internal/service"
)

type mode int

const (
	modeList mode = iota
	modeEdit
	modeSearch
	modeDates
)

// stateMsg carries a controller snapshot into the Bubble Tea loop.
type stateMsg controller.State

// ctrlCmd runs a controller call off the event loop. Controller
// notifications come back through program.Send, which must not be invoked
// from inside Update.
func ctrlCmd(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

// editState holds the in-progress values for the add/edit form.
// todoID is zero when adding a new todo.
type editState struct {
	todoID      int64
	title       string
	description string
	index       int
}

// dateState holds the in-progress values for the date range form.
type dateState struct {
	from  string
	to    string
	index int
}

type Model struct {
	svc           *service.TodoService
	ctrl          *controller.Controller
	defaultFilter string
	state         controller.State
	stats         domain.Stats
	cursor        int
	mode          mode
	input         textinput.Model
	status        string
	confirmDel    bool
	pendingDel    *domain.Todo
	edit          *editState
	dates         *dateState
}

// Run starts the TUI and blocks until the user quits.
func Run(svc *service.TodoService, debounce time.Duration, defaultFilter string) error {
	var program *tea.Program

	ctrl := controller.New(svc, debounce, func(s controller.State) {
		program.Send(stateMsg(s))
	})
	defer ctrl.Stop()

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		svc:           svc,
		ctrl:          ctrl,
		defaultFilter: defaultFilter,
		input:         ti,
		mode:          modeList,
		status:        "Press 'a' to add, space to toggle, 'd' to delete, '/' to search.",
	}
	if stats, err := svc.Stats(context.Background()); err == nil {
		m.stats = *stats
	}

	program = tea.NewProgram(m)

	_, err := program.Run()
	return err
}

// Init kicks off the first query once the event loop is running; the result
// arrives as a stateMsg.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		switch strings.ToLower(m.defaultFilter) {
		case "pending":
			completed := false
			m.ctrl.SetCompleted(&completed)
		case "completed":
			completed := true
			m.ctrl.SetCompleted(&completed)
		default:
			m.ctrl.Refresh()
		}
		return nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = controller.State(msg)
		m.cursor = clampCursor(m.cursor, len(m.state.Todos))
		return m, nil
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		switch m.mode {
		case modeEdit:
			return m.updateEditMode(msg.String(), msg)
		case modeSearch:
			return m.updateSearchMode(msg.String(), msg)
		case modeDates:
			return m.updateDatesMode(msg.String(), msg)
		default:
			return m.updateListMode(msg.String())
		}
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "j", "down":
		if len(m.state.Todos) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(m.state.Todos))
	case "k", "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.state.Todos))
		}
	case "a":
		return m.startEdit(nil)
	case "e":
		if len(m.state.Todos) == 0 {
			m.status = "No todos to edit"
			return m, nil
		}
		return m.startEdit(m.state.Todos[m.cursor])
	case " ":
		if len(m.state.Todos) == 0 {
			return m, nil
		}
		todo := m.state.Todos[m.cursor]
		if _, err := m.svc.ToggleComplete(context.Background(), todo.ID, !todo.Completed); err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		m.status = "Toggled todo"
		m.reloadStats()
		return m, ctrlCmd(m.ctrl.Refresh)
	case "d":
		if len(m.state.Todos) == 0 {
			return m, nil
		}
		t := m.state.Todos[m.cursor]
		m.confirmDel = true
		m.pendingDel = t
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Title)
	case "/":
		m.mode = modeSearch
		m.input.SetValue(m.state.SearchText)
		m.input.Placeholder = "Search title or description"
		m.input.Focus()
		m.status = "Search mode: type to filter, Enter to apply, Esc to clear"
	case "f":
		return m, m.cycleFilter()
	case "r":
		m.dates = &dateState{from: m.state.DateFrom, to: m.state.DateTo}
		m.input.SetValue(m.dates.from)
		m.input.Placeholder = "From (YYYY-MM-DD)"
		m.input.Focus()
		m.mode = modeDates
		m.status = "Date range: Enter to advance, Esc to cancel"
	case "x":
		m.status = "Filters cleared"
		return m, ctrlCmd(func() {
			m.ctrl.ClearError()
			m.ctrl.SetSearchText("")
			m.ctrl.FlushSearch()
			m.ctrl.SetCompleted(nil)
			m.ctrl.SetDateRange("", "")
		})
	case "esc":
		if m.state.Err != "" {
			m.status = ""
			return m, ctrlCmd(m.ctrl.ClearError)
		}
	}
	return m, nil
}

// cycleFilter advances the completion filter: all -> pending -> completed -> all.
func (m *Model) cycleFilter() tea.Cmd {
	var next *bool
	switch {
	case m.state.Completed == nil:
		completed := false
		next = &completed
		m.status = "Showing pending"
	case !*m.state.Completed:
		completed := true
		next = &completed
		m.status = "Showing completed"
	default:
		m.status = "Showing all"
	}
	return ctrlCmd(func() { m.ctrl.SetCompleted(next) })
}

func (m Model) startEdit(t *domain.Todo) (tea.Model, tea.Cmd) {
	es := &editState{}
	if t != nil {
		es.todoID = t.ID
		es.title = t.Title
		es.description = t.Description
	}
	m.edit = es
	m.input.SetValue(es.title)
	m.input.Placeholder = "Title"
	m.input.Focus()
	m.mode = modeEdit
	if t == nil {
		m.status = "Add mode: Enter to advance, Esc to cancel"
	} else {
		m.status = "Edit mode: Enter to advance, Esc to cancel"
	}
	return m, nil
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.edit = nil
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "enter":
		if m.edit == nil {
			return m, nil
		}
		if m.edit.index == 0 {
			m.edit.title = m.input.Value()
			m.edit.index = 1
			m.input.SetValue(m.edit.description)
			m.input.Placeholder = "Description (optional)"
			return m, nil
		}
		m.edit.description = m.input.Value()
		return m.saveEdit()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveEdit() (tea.Model, tea.Cmd) {
	es := m.edit
	ctx := context.Background()

	var err error
	if es.todoID == 0 {
		_, err = m.svc.Create(ctx, es.title, es.description)
	} else {
		title := es.title
		description := es.description
		_, err = m.svc.Update(ctx, es.todoID, service.UpdateInput{
			Title:       &title,
			Description: &description,
		})
	}
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}

	if es.todoID == 0 {
		m.status = "Added todo"
	} else {
		m.status = "Updated todo"
	}
	m.edit = nil
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	m.reloadStats()
	return m, ctrlCmd(m.ctrl.Refresh)
}

func (m Model) updateSearchMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Search cleared"
		return m, ctrlCmd(func() {
			m.ctrl.SetSearchText("")
			m.ctrl.FlushSearch()
		})
	case "enter":
		m.mode = modeList
		m.input.Blur()
		m.status = ""
		return m, ctrlCmd(m.ctrl.FlushSearch)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		text := m.input.Value()
		return m, tea.Batch(cmd, ctrlCmd(func() { m.ctrl.SetSearchText(text) }))
	}
}

func (m Model) updateDatesMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.dates = nil
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "enter":
		if m.dates == nil {
			return m, nil
		}
		if m.dates.index == 0 {
			m.dates.from = strings.TrimSpace(m.input.Value())
			m.dates.index = 1
			m.input.SetValue(m.dates.to)
			m.input.Placeholder = "To (YYYY-MM-DD)"
			return m, nil
		}
		m.dates.to = strings.TrimSpace(m.input.Value())
		from, to := m.dates.from, m.dates.to
		m.dates = nil
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = ""
		return m, ctrlCmd(func() { m.ctrl.SetDateRange(from, to) })
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		if err := m.svc.Delete(context.Background(), m.pendingDel.ID); err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
			m.confirmDel = false
			m.pendingDel = nil
			return m, nil
		}
		m.status = "Deleted todo"
		m.reloadStats()
		m.confirmDel = false
		m.pendingDel = nil
		return m, ctrlCmd(m.ctrl.Refresh)
	default:
		return m, nil
	}
}

func (m *Model) reloadStats() {
	stats, err := m.svc.Stats(context.Background())
	if err != nil {
		m.status = fmt.Sprintf("stats failed: %v", err)
		return
	}
	m.stats = *stats
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("pocketdo")
	if m.state.Loading {
		b.WriteString("  (loading...)")
	}
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")

	if len(m.state.Todos) == 0 {
		b.WriteString(m.emptyMessage())
	} else {
		b.WriteString(m.renderTodoList())
	}

	b.WriteString("\n---\n")

	switch m.mode {
	case modeEdit, modeSearch, modeDates:
		b.WriteString(m.input.Placeholder)
		b.WriteString("\n")
		b.WriteString(m.input.View())
	default:
		b.WriteString(m.renderDetailPanel())
	}

	b.WriteString("\n\n")
	if m.state.Err != "" {
		b.WriteString("Error: " + m.state.Err + " (esc to dismiss)")
		b.WriteString("\n")
	}
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d total • %d completed • %d pending",
		m.stats.Total, m.stats.Completed, m.stats.Pending))
	b.WriteString("\n")
	b.WriteString("j/k move • a add • e edit • space toggle • d delete • / search • f filter • r dates • x clear • q quit")

	return b.String()
}

func (m Model) emptyMessage() string {
	f := m.state
	if f.DebouncedSearch != "" || f.Completed != nil || f.DateFrom != "" || f.DateTo != "" {
		return "No todos match the current filters."
	}
	return "No todos yet. Press 'a' to add one."
}

func (m Model) renderFilterBar() string {
	parts := []string{"filter: " + completedLabel(m.state.Completed)}
	if m.state.SearchText != "" {
		parts = append(parts, "search: "+m.state.SearchText)
	}
	if m.state.DateFrom != "" || m.state.DateTo != "" {
		parts = append(parts, fmt.Sprintf("dates: %s..%s", m.state.DateFrom, m.state.DateTo))
	}
	return strings.Join(parts, " • ")
}

func (m Model) renderTodoList() string {
	var b strings.Builder
	for i, t := range m.state.Todos {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}

		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}

		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, checkbox, t.Title))
	}
	return b.String()
}

func (m Model) renderDetailPanel() string {
	if len(m.state.Todos) == 0 {
		return "No todo selected"
	}
	t := m.state.Todos[clampCursor(m.cursor, len(m.state.Todos))]
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Title       : %s\n", t.Title))
	b.WriteString(fmt.Sprintf("Description : %s\n", emptyPlaceholder(t.Description)))
	b.WriteString(fmt.Sprintf("Status      : %s\n", completedText(t.Completed)))
	b.WriteString(fmt.Sprintf("Created     : %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Updated     : %s\n", t.UpdatedAt.Local().Format("2006-01-02 15:04")))
	return b.String()
}

func completedLabel(completed *bool) string {
	switch {
	case completed == nil:
		return "all"
	case *completed:
		return "completed"
	default:
		return "pending"
	}
}

func completedText(completed bool) string {
	if completed {
		return "completed"
	}
	return "pending"
}

func emptyPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(empty)"
	}
	return v
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
