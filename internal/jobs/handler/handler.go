// Package handler exposes the jobs HTTP endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"scopeworks_backend/internal/jobs/service"
	"scopeworks_backend/internal/jobs/transport"
	"scopeworks_backend/platform/httpkit"
	"scopeworks_backend/platform/validator"
)

// Handler handles HTTP requests for completed jobs.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CompleteJob records actual outcomes for a session's job.
// POST /api/v1/sessions/:id/complete
func (h *Handler) CompleteJob(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid session ID", nil)
		return
	}
	var req transport.CompleteJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	job, err := h.svc.CompleteJob(c.Request.Context(), sessionID, service.CompleteJobInput{
		ActualManHours:    req.ActualManHours,
		ActualCostCents:   req.ActualCostCents,
		CustomerRating:    req.CustomerRating,
		IssuesEncountered: req.IssuesEncountered,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.ToJobResponse(job))
}

// ListJobs returns recent completed jobs.
// GET /api/v1/jobs
func (h *Handler) ListJobs(c *gin.Context) {
	var req transport.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	jobs, err := h.svc.ListJobs(c.Request.Context(), req.ServiceType, req.Subcategory, req.Limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToJobResponses(jobs))
}
