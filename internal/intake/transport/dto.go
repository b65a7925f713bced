// Package transport defines request and response DTOs for the intake API.
package transport

import (
	"time"

	"github.com/google/uuid"

	"scopeworks_backend/internal/intake/repository"
)

// CreateSessionRequest opens a new estimation session.
type CreateSessionRequest struct {
	Description string  `json:"description" validate:"required,min=3,max=4000"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
	Urgent      bool    `json:"urgent"`
}

// SubmitAnswerRequest answers a clarifying question.
type SubmitAnswerRequest struct {
	QuestionID string `json:"questionId" validate:"required,uuid"`
	Value      string `json:"value" validate:"required,max=2000"`
}

// PhotoUploadRequest asks for a presigned request photo upload slot.
type PhotoUploadRequest struct {
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,gt=0"`
}

// ClassificationResponse is the stored intent classification snapshot.
type ClassificationResponse struct {
	ServiceIntent  string  `json:"serviceIntent"`
	ServiceType    string  `json:"serviceType"`
	Subcategory    string  `json:"subcategory"`
	Confidence     float64 `json:"confidence"`
	Reasoning      *string `json:"reasoning,omitempty"`
	Clarifier      *string `json:"clarifier,omitempty"`
	DegradedReason *string `json:"degradedReason,omitempty"`
}

// SessionResponse is the API shape of a session.
type SessionResponse struct {
	ID                 uuid.UUID              `json:"id"`
	Description        string                 `json:"description"`
	Address            *string                `json:"address,omitempty"`
	Urgent             bool                   `json:"urgent"`
	Status             string                 `json:"status"`
	Classification     ClassificationResponse `json:"classification"`
	PhotoKeys          []string               `json:"photoKeys,omitempty"`
	EstimatedManHours  *float64               `json:"estimatedManHours,omitempty"`
	EstimatedCostCents *int64                 `json:"estimatedCostCents,omitempty"`
	CreatedAt          time.Time              `json:"createdAt"`
	UpdatedAt          time.Time              `json:"updatedAt"`
}

// QuestionResponse is the API shape of a clarifying question.
type QuestionResponse struct {
	ID               uuid.UUID `json:"id"`
	QuestionKey      string    `json:"questionKey"`
	QuestionText     string    `json:"questionText"`
	ResponseType     string    `json:"responseType"`
	Options          []string  `json:"options,omitempty"`
	Sequence         int       `json:"sequence"`
	RequiredForScope bool      `json:"requiredForScope"`
}

// NextQuestionResponse carries either the next question or a ready flag.
type NextQuestionResponse struct {
	Ready    bool              `json:"ready"`
	Question *QuestionResponse `json:"question,omitempty"`
}

// CreateSessionResponse is returned from session creation.
type CreateSessionResponse struct {
	Session      SessionResponse   `json:"session"`
	NextQuestion *QuestionResponse `json:"nextQuestion,omitempty"`
}

// SubmitAnswerResponse acknowledges an answer and advances the flow.
type SubmitAnswerResponse struct {
	AnswerID uuid.UUID         `json:"answerId"`
	Ready    bool              `json:"ready"`
	Question *QuestionResponse `json:"question,omitempty"`
}

// PhotoUploadResponse carries a presigned upload slot.
type PhotoUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
}

// ToSessionResponse maps a repository session to its API shape.
func ToSessionResponse(s repository.Session) SessionResponse {
	return SessionResponse{
		ID:          s.ID,
		Description: s.Description,
		Address:     s.Address,
		Urgent:      s.Urgent,
		Status:      s.Status,
		Classification: ClassificationResponse{
			ServiceIntent:  s.ServiceIntent,
			ServiceType:    s.ServiceType,
			Subcategory:    s.Subcategory,
			Confidence:     s.Confidence,
			Reasoning:      s.Reasoning,
			Clarifier:      s.Clarifier,
			DegradedReason: s.DegradedReason,
		},
		PhotoKeys:          s.PhotoKeys,
		EstimatedManHours:  s.EstimatedManHours,
		EstimatedCostCents: s.EstimatedCostCents,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// ToQuestionResponse maps a repository question to its API shape.
func ToQuestionResponse(q *repository.Question) *QuestionResponse {
	if q == nil {
		return nil
	}
	return &QuestionResponse{
		ID:               q.ID,
		QuestionKey:      q.QuestionKey,
		QuestionText:     q.QuestionText,
		ResponseType:     q.ResponseType,
		Options:          q.Options,
		Sequence:         q.Sequence,
		RequiredForScope: q.RequiredForScope,
	}
}
