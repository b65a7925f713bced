package service

import (
	"context"

	"github.com/google/uuid"
)

// SessionInfo is the jobs context's view of an intake session.
type SessionInfo struct {
	ID                 uuid.UUID
	Description        string
	Urgent             bool
	Status             string
	ServiceType        string
	Subcategory        string
	Answers            map[string]string
	EstimatedManHours  *float64
	EstimatedCostCents *int64
}

// IntakeReader reads intake state for job completion.
type IntakeReader interface {
	SessionInfo(ctx context.Context, sessionID uuid.UUID) (SessionInfo, error)
}

// SessionCompleter marks a session as completed once its job is recorded.
type SessionCompleter interface {
	MarkCompleted(ctx context.Context, sessionID uuid.UUID) error
}

// ScoreEnqueuer hands a job off to the async scoring worker. A nil
// enqueuer makes the service score inline.
type ScoreEnqueuer interface {
	EnqueueScore(ctx context.Context, jobID uuid.UUID) error
}
