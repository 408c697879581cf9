// Package api wires the pocketdo HTTP routes.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pocketdo/pocketdo/internal/api/handler"
	"github.com/pocketdo/pocketdo/internal/api/middleware"
	"github.com/pocketdo/pocketdo/internal/service"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(svc *service.TodoService) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.RealIP)

	systemHandler := handler.NewSystemHandler(svc)
	todoHandler := handler.NewTodoHandler(svc)

	r.Get("/v1/health", systemHandler.Health)
	r.Get("/v1/stats", systemHandler.Stats)
	r.Post("/v1/reset", systemHandler.Reset)

	r.Get("/v1/todos", todoHandler.ListTodos)
	r.Post("/v1/todos", todoHandler.CreateTodo)
	r.Get("/v1/todos/{id}", todoHandler.GetTodo)
	r.Patch("/v1/todos/{id}", todoHandler.UpdateTodo)
	r.Delete("/v1/todos/{id}", todoHandler.DeleteTodo)
	r.Post("/v1/todos/{id}/toggle", todoHandler.ToggleTodo)

	return r
}
