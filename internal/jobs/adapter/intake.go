// Package adapter bridges the jobs context to intake persistence.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"scopeworks_backend/internal/intake/repository"
	"scopeworks_backend/internal/jobs/service"
)

// IntakeAdapter implements the jobs context's intake ports over the
// intake repository.
type IntakeAdapter struct {
	repo repository.Repository
}

var (
	_ service.IntakeReader     = (*IntakeAdapter)(nil)
	_ service.SessionCompleter = (*IntakeAdapter)(nil)
)

func NewIntakeAdapter(repo repository.Repository) *IntakeAdapter {
	return &IntakeAdapter{repo: repo}
}

func (a *IntakeAdapter) SessionInfo(ctx context.Context, sessionID uuid.UUID) (service.SessionInfo, error) {
	session, err := a.repo.GetSession(ctx, sessionID)
	if err != nil {
		return service.SessionInfo{}, err
	}
	answers, _, err := a.repo.LatestAnswers(ctx, sessionID)
	if err != nil {
		return service.SessionInfo{}, err
	}
	return service.SessionInfo{
		ID:                 session.ID,
		Description:        session.Description,
		Urgent:             session.Urgent,
		Status:             session.Status,
		ServiceType:        session.ServiceType,
		Subcategory:        session.Subcategory,
		Answers:            answers,
		EstimatedManHours:  session.EstimatedManHours,
		EstimatedCostCents: session.EstimatedCostCents,
	}, nil
}

func (a *IntakeAdapter) MarkCompleted(ctx context.Context, sessionID uuid.UUID) error {
	return a.repo.SetSessionStatus(ctx, sessionID, repository.StatusCompleted)
}
