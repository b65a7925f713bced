// Package service implements the estimation orchestrator: standards,
// precedents, regional adjustment, and sales tax composed into a
// structured scope.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"scopeworks_backend/internal/estimation/precedent"
	"scopeworks_backend/internal/estimation/regional"
	"scopeworks_backend/internal/estimation/standards"
	"scopeworks_backend/internal/estimation/transport"
	"scopeworks_backend/platform/config"
	"scopeworks_backend/platform/logger"
)

// Service generates structured scopes for intake sessions.
type Service struct {
	intake     IntakeReader
	estimates  EstimateWriter
	standards  standards.Repository
	precedents precedent.Repository
	cfg        config.EstimationConfig
	log        *logger.Logger
}

func New(intake IntakeReader, estimates EstimateWriter, std standards.Repository, prec precedent.Repository, cfg config.EstimationConfig, log *logger.Logger) *Service {
	return &Service{
		intake:     intake,
		estimates:  estimates,
		standards:  std,
		precedents: prec,
		cfg:        cfg,
		log:        log,
	}
}

// GenerateScope composes the structured scope for a session and records
// its headline figures on the session. Regeneration with unchanged inputs
// yields identical figures.
func (s *Service) GenerateScope(ctx context.Context, sessionID uuid.UUID) (transport.StructuredScope, error) {
	snap, err := s.intake.Snapshot(ctx, sessionID)
	if err != nil {
		return transport.StructuredScope{}, err
	}

	stds, err := s.standards.ListForCategory(ctx, snap.ServiceType, snap.Subcategory)
	if err != nil {
		return transport.StructuredScope{}, fmt.Errorf("load production standards: %w", err)
	}

	precedents, err := s.precedents.ListForCategory(ctx, snap.ServiceType, snap.Subcategory, 50)
	if err != nil {
		return transport.StructuredScope{}, fmt.Errorf("load precedents: %w", err)
	}
	ranked := precedent.Rank(precedents, snap.Answers)

	var loc regional.Location
	if snap.Address != nil {
		loc = regional.ParseLocation(*snap.Address)
	}
	adjustment := regional.Multiplier(loc)

	scope := compose(composeInput{
		Snapshot:          snap,
		Standards:         stds,
		RankedPrecedents:  ranked,
		Adjustment:        adjustment,
		State:             loc.State,
		UrgencyFeePercent: s.cfg.GetUrgencyFeePercent(),
	})
	scope.GeneratedAt = time.Now().UTC()

	if err := s.estimates.SaveEstimate(ctx, sessionID, scope.EstimatedManHours, scope.Cost.TotalCents); err != nil {
		return transport.StructuredScope{}, fmt.Errorf("save estimate: %w", err)
	}

	s.log.Info("scope generated",
		"session_id", sessionID.String(),
		"service_type", snap.ServiceType,
		"subcategory", snap.Subcategory,
		"total_cents", scope.Cost.TotalCents,
		"man_hours", scope.EstimatedManHours,
		"data_sources", scope.Diagnostics.DataSourcesUsed,
	)
	return scope, nil
}
