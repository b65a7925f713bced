// Package handler exposes the estimation HTTP endpoint.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"scopeworks_backend/internal/estimation/service"
	"scopeworks_backend/platform/httpkit"
)

// Handler handles scope generation requests.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// GetScope generates (or regenerates) the structured scope for a session.
// GET /api/v1/sessions/:id/scope
func (h *Handler) GetScope(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid session ID", nil)
		return
	}
	scope, err := h.svc.GenerateScope(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, scope)
}
