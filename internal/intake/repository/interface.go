package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"scopeworks_backend/internal/intake/domain"
)

// Session statuses. A session is created awaiting answers, becomes ready
// for scope once no eligible questions remain, and completed once actual
// outcomes are recorded. Ready is terminal with respect to questioning:
// a session never moves back to awaiting answers.
const (
	StatusAwaitingAnswers = "awaiting_answers"
	StatusReadyForScope   = "ready_for_scope"
	StatusCompleted       = "completed"
)

// Response types for dynamic questions.
const (
	ResponseTypeText   = "text"
	ResponseTypeChoice = "choice"
)

// Session is an estimation session created from a free-text service request.
// The intent classification snapshot is stored alongside so the pipeline
// does not depend on re-running the oracle.
type Session struct {
	ID                 uuid.UUID
	Description        string
	Address            *string
	Urgent             bool
	PhotoKeys          []string
	ServiceIntent      string
	ServiceType        string
	Subcategory        string
	Confidence         float64
	Reasoning          *string
	Clarifier          *string
	DegradedReason     *string
	Status             string
	EstimatedManHours  *float64
	EstimatedCostCents *int64
	ScopeGeneratedAt   *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Question is a clarifying question attached to a (serviceType, subcategory)
// pair. Options is non-empty only for choice questions. Condition gates
// eligibility on prior answers.
type Question struct {
	ID               uuid.UUID
	ServiceType      string
	Subcategory      string
	QuestionKey      string
	QuestionText     string
	ResponseType     string
	Options          []string
	Sequence         int
	RequiredForScope bool
	Condition        *domain.Predicate
	CreatedAt        time.Time
}

// Answer records a single response. Answers are append-only; the latest
// answer per question supersedes earlier ones.
type Answer struct {
	ID          uuid.UUID
	SessionID   uuid.UUID
	QuestionID  uuid.UUID
	QuestionKey string
	Value       string
	CreatedAt   time.Time
}

// CreateSessionParams contains everything persisted at session creation.
type CreateSessionParams struct {
	Description    string
	Address        *string
	Urgent         bool
	ServiceIntent  string
	ServiceType    string
	Subcategory    string
	Confidence     float64
	Reasoning      *string
	Clarifier      *string
	DegradedReason *string
}

// SessionReader provides read operations for sessions and their answers.
type SessionReader interface {
	GetSession(ctx context.Context, id uuid.UUID) (Session, error)
	// LatestAnswers returns the superseding answer per question for a session,
	// keyed by question key.
	LatestAnswers(ctx context.Context, sessionID uuid.UUID) (map[string]string, []Answer, error)
}

// SessionWriter provides write operations for sessions.
type SessionWriter interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (Session, error)
	SetSessionStatus(ctx context.Context, id uuid.UUID, status string) error
	AppendPhotoKey(ctx context.Context, id uuid.UUID, fileKey string) error
	// SaveEstimate stores the scope's headline figures on the session so job
	// completion can later compare estimates to actuals.
	SaveEstimate(ctx context.Context, id uuid.UUID, manHours float64, costCents int64) error
}

// QuestionReader provides read operations for dynamic questions.
type QuestionReader interface {
	// ListQuestions returns all questions for a (serviceType, subcategory)
	// pair in stable selection order: sequence, then creation time, then id.
	ListQuestions(ctx context.Context, serviceType, subcategory string) ([]Question, error)
	GetQuestion(ctx context.Context, id uuid.UUID) (Question, error)
}

// AnswerWriter appends answers.
type AnswerWriter interface {
	AppendAnswer(ctx context.Context, sessionID, questionID uuid.UUID, value string) (Answer, error)
}

// Repository combines all intake repository operations.
type Repository interface {
	SessionReader
	SessionWriter
	QuestionReader
	AnswerWriter
}
