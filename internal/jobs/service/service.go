// Package service implements job completion and the accuracy-scoring
// learning loop.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"scopeworks_backend/internal/events"
	intakerepo "scopeworks_backend/internal/intake/repository"
	"scopeworks_backend/internal/jobs/learning"
	"scopeworks_backend/internal/jobs/repository"
	"scopeworks_backend/platform/apperr"
	"scopeworks_backend/platform/logger"
)

// Service records completed jobs and computes their learning metrics.
type Service struct {
	repo     repository.Repository
	intake   IntakeReader
	complete SessionCompleter
	enqueuer ScoreEnqueuer
	bus      events.Bus
	log      *logger.Logger
}

func New(repo repository.Repository, intake IntakeReader, complete SessionCompleter, enqueuer ScoreEnqueuer, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		intake:   intake,
		complete: complete,
		enqueuer: enqueuer,
		bus:      bus,
		log:      log,
	}
}

// CompleteJobInput carries the actual outcomes reported at completion.
type CompleteJobInput struct {
	ActualManHours    *float64
	ActualCostCents   *int64
	CustomerRating    *int
	IssuesEncountered *string
}

// CompleteJob appends a CompletedJob for the session, marks the session
// completed, and schedules accuracy scoring. Scoring runs inline when no
// async worker is configured.
func (s *Service) CompleteJob(ctx context.Context, sessionID uuid.UUID, input CompleteJobInput) (repository.CompletedJob, error) {
	if input.CustomerRating != nil && (*input.CustomerRating < 1 || *input.CustomerRating > 5) {
		return repository.CompletedJob{}, apperr.Validation("customer rating must be between 1 and 5")
	}

	info, err := s.intake.SessionInfo(ctx, sessionID)
	if err != nil {
		return repository.CompletedJob{}, err
	}
	if info.Status == intakerepo.StatusCompleted {
		return repository.CompletedJob{}, apperr.Conflict("session already completed")
	}

	job, err := s.repo.CreateJob(ctx, repository.CreateJobParams{
		SessionID:          info.ID,
		ServiceType:        info.ServiceType,
		Subcategory:        info.Subcategory,
		Description:        info.Description,
		Urgent:             info.Urgent,
		StructuredAnswers:  info.Answers,
		EstimatedManHours:  info.EstimatedManHours,
		EstimatedCostCents: info.EstimatedCostCents,
		ActualManHours:     input.ActualManHours,
		ActualCostCents:    input.ActualCostCents,
		CustomerRating:     input.CustomerRating,
		IssuesEncountered:  input.IssuesEncountered,
	})
	if err != nil {
		return repository.CompletedJob{}, err
	}

	if err := s.complete.MarkCompleted(ctx, sessionID); err != nil {
		return repository.CompletedJob{}, fmt.Errorf("mark session completed: %w", err)
	}

	// Scoring is driven by this event; the module subscribes itself on
	// the bus. Sync publish so the response reflects inline scoring.
	if err := s.bus.PublishSync(ctx, events.JobCompleted{
		BaseEvent: events.NewBaseEvent(),
		JobID:     job.ID,
		SessionID: sessionID,
	}); err != nil {
		return repository.CompletedJob{}, err
	}

	return s.repo.GetJob(ctx, job.ID)
}

// ScheduleScoring enqueues accuracy scoring for a job. Without a queue,
// or when the enqueue fails, scoring runs inline rather than losing the
// signal.
func (s *Service) ScheduleScoring(ctx context.Context, jobID uuid.UUID) error {
	if s.enqueuer != nil {
		err := s.enqueuer.EnqueueScore(ctx, jobID)
		if err == nil {
			return nil
		}
		s.log.Warn("score enqueue failed, scoring inline", "job_id", jobID.String(), "error", err.Error())
	}
	return s.ScoreJob(ctx, jobID)
}

// ScoreJob computes and persists the accuracy score and tags for a job.
// Already-scored jobs are left untouched.
func (s *Service) ScoreJob(ctx context.Context, jobID uuid.UUID) error {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if job.ScoredAt != nil {
		return nil
	}

	outcome := learning.Outcome{
		EstimatedManHours: job.EstimatedManHours,
		ActualManHours:    job.ActualManHours,
		EstimatedCost:     centsToFloat(job.EstimatedCostCents),
		ActualCost:        centsToFloat(job.ActualCostCents),
		CustomerRating:    job.CustomerRating,
		IssuesEncountered: job.IssuesEncountered,
		Description:       job.Description,
		Urgent:            job.Urgent,
	}
	score := learning.AccuracyScore(outcome)
	highQuality := learning.IsHighQualityTrainingExample(outcome, score)
	tags := learning.Tags(outcome, score)

	if err := s.repo.SetScore(ctx, jobID, score, highQuality, tags); err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Kind == apperr.KindConflict {
			return nil
		}
		return err
	}

	s.bus.Publish(ctx, events.JobScored{
		BaseEvent:     events.NewBaseEvent(),
		JobID:         jobID,
		ServiceType:   job.ServiceType,
		Subcategory:   job.Subcategory,
		AccuracyScore: score,
		Tags:          tags,
	})
	return nil
}

// ListJobs returns recent completed jobs, optionally filtered by category.
func (s *Service) ListJobs(ctx context.Context, serviceType, subcategory string, limit int) ([]repository.CompletedJob, error) {
	return s.repo.ListRecent(ctx, serviceType, subcategory, limit)
}

func centsToFloat(cents *int64) *float64 {
	if cents == nil {
		return nil
	}
	v := float64(*cents)
	return &v
}
