package handler

import (
	"net/http"

	"github.com/pocketdo/pocketdo/internal/api/response"
	"github.com/pocketdo/pocketdo/internal/service"
)

// SystemHandler handles health, stats, and maintenance endpoints.
type SystemHandler struct {
	svc *service.TodoService
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(svc *service.TodoService) *SystemHandler {
	return &SystemHandler{svc: svc}
}

// Health handles GET /v1/health.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Stats handles GET /v1/stats.
func (h *SystemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, stats)
}

// Reset handles POST /v1/reset. Removes every todo; dev/debug utility.
func (h *SystemHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context()); err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, map[string]string{"status": "reset"})
}
