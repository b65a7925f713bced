// Package adapter bridges the estimation context to intake persistence.
// It keeps estimation's ports free of intake types.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"scopeworks_backend/internal/estimation/service"
	intakerepo "scopeworks_backend/internal/intake/repository"
	intakesvc "scopeworks_backend/internal/intake/service"
)

// IntakeAdapter implements estimation's IntakeReader and EstimateWriter
// ports over the intake repository.
type IntakeAdapter struct {
	repo intakerepo.Repository
}

var (
	_ service.IntakeReader   = (*IntakeAdapter)(nil)
	_ service.EstimateWriter = (*IntakeAdapter)(nil)
)

func NewIntakeAdapter(repo intakerepo.Repository) *IntakeAdapter {
	return &IntakeAdapter{repo: repo}
}

// Snapshot assembles the estimation view of a session: classification
// snapshot, latest answers, and unanswered required questions.
func (a *IntakeAdapter) Snapshot(ctx context.Context, sessionID uuid.UUID) (service.SessionSnapshot, error) {
	session, err := a.repo.GetSession(ctx, sessionID)
	if err != nil {
		return service.SessionSnapshot{}, err
	}
	answers, _, err := a.repo.LatestAnswers(ctx, sessionID)
	if err != nil {
		return service.SessionSnapshot{}, err
	}
	questions, err := a.repo.ListQuestions(ctx, session.ServiceType, session.Subcategory)
	if err != nil {
		return service.SessionSnapshot{}, err
	}

	return service.SessionSnapshot{
		ID:              session.ID,
		Description:     session.Description,
		Address:         session.Address,
		Urgent:          session.Urgent,
		Status:          session.Status,
		ServiceIntent:   session.ServiceIntent,
		ServiceType:     session.ServiceType,
		Subcategory:     session.Subcategory,
		Confidence:      session.Confidence,
		Clarifier:       session.Clarifier,
		Degraded:        session.DegradedReason != nil,
		Answers:         answers,
		MissingRequired: intakesvc.MissingRequired(questions, answers),
		PhotoKeys:       session.PhotoKeys,
	}, nil
}

// SaveEstimate records the scope's headline figures on the session.
func (a *IntakeAdapter) SaveEstimate(ctx context.Context, sessionID uuid.UUID, manHours float64, costCents int64) error {
	return a.repo.SaveEstimate(ctx, sessionID, manHours, costCents)
}
