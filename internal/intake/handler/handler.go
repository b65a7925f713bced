// Package handler exposes the intake HTTP endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"scopeworks_backend/internal/intake/service"
	"scopeworks_backend/internal/intake/transport"
	"scopeworks_backend/platform/httpkit"
	"scopeworks_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidSessionID = "invalid session ID"
)

// Handler handles HTTP requests for intake sessions.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CreateSession opens an estimation session from a free-text description.
// POST /api/v1/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	var req transport.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	session, next, err := h.svc.CreateSession(c.Request.Context(), service.CreateSessionInput{
		Description: req.Description,
		Address:     req.Address,
		Urgent:      req.Urgent,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.CreateSessionResponse{
		Session:      transport.ToSessionResponse(session),
		NextQuestion: transport.ToQuestionResponse(next),
	})
}

// GetSession returns a session with its classification snapshot.
// GET /api/v1/sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	session, err := h.svc.GetSession(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToSessionResponse(session))
}

// NextQuestion returns the next clarifying question or a ready flag.
// GET /api/v1/sessions/:id/next-question
func (h *Handler) NextQuestion(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	next, ready, err := h.svc.NextQuestion(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NextQuestionResponse{
		Ready:    ready,
		Question: transport.ToQuestionResponse(next),
	})
}

// SubmitAnswer records an answer and advances the question flow.
// POST /api/v1/sessions/:id/answers
func (h *Handler) SubmitAnswer(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req transport.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid question ID", nil)
		return
	}

	answer, next, ready, err := h.svc.SubmitAnswer(c.Request.Context(), id, questionID, req.Value)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.SubmitAnswerResponse{
		AnswerID: answer.ID,
		Ready:    ready,
		Question: transport.ToQuestionResponse(next),
	})
}

// CreatePhotoUpload issues a presigned upload URL for a request photo.
// POST /api/v1/sessions/:id/photos
func (h *Handler) CreatePhotoUpload(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req transport.PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	upload, err := h.svc.CreatePhotoUpload(c.Request.Context(), id, req.FileName, req.ContentType, req.SizeBytes)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.PhotoUploadResponse{
		UploadURL: upload.URL,
		FileKey:   upload.FileKey,
	})
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return uuid.Nil, false
	}
	return id, true
}
