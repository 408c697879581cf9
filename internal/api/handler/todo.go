// Package handler implements the HTTP handlers for the pocketdo API.
package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pocketdo/pocketdo/internal/api/request"
	"github.com/pocketdo/pocketdo/internal/api/response"
	"github.com/pocketdo/pocketdo/internal/domain"
	"github.com/pocketdo/pocketdo/internal/service"
)

// TodoHandler handles todo CRUD operations.
type TodoHandler struct {
	svc *service.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// CreateTodo handles POST /v1/todos.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTodoRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError("invalid JSON body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		response.Error(w, domain.NewValidationError(strings.Join(errs, "; ")))
		return
	}

	todo, err := h.svc.Create(r.Context(), req.Title, req.Description)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, todo)
}

// ListTodos handles GET /v1/todos.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.List(r.Context(), request.ParseFilter(r))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, todos)
}

// GetTodo handles GET /v1/todos/{id}.
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	todo, err := h.svc.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, todo)
}

// UpdateTodo handles PATCH /v1/todos/{id}.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req request.UpdateTodoRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError("invalid JSON body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		response.Error(w, domain.NewValidationError(strings.Join(errs, "; ")))
		return
	}

	todo, err := h.svc.Update(r.Context(), id, service.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, todo)
}

// ToggleTodo handles POST /v1/todos/{id}/toggle.
func (h *TodoHandler) ToggleTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req request.ToggleRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError("invalid JSON body"))
		return
	}

	todo, err := h.svc.ToggleComplete(r.Context(), id, req.Completed)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, todo)
}

// DeleteTodo handles DELETE /v1/todos/{id}.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]int64{"deleted_id": id})
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("id must be an integer")
	}
	return id, nil
}
