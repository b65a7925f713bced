// Package service implements intake business logic: session creation with
// intent classification, the clarifying-question state machine, answer
// capture, and request photo uploads.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"scopeworks_backend/internal/events"
	"scopeworks_backend/internal/intake/agent"
	"scopeworks_backend/internal/intake/repository"
	"scopeworks_backend/platform/apperr"
	"scopeworks_backend/platform/logger"
)

// PhotoStore is the slice of object storage the intake service needs.
type PhotoStore interface {
	GenerateRequestPhotoUploadURL(ctx context.Context, folder, fileName, contentType string, sizeBytes int64) (url, fileKey string, err error)
}

// Service orchestrates intake sessions.
type Service struct {
	repo       repository.Repository
	classifier *agent.Classifier
	photos     PhotoStore
	bus        events.Bus
	log        *logger.Logger
}

func New(repo repository.Repository, classifier *agent.Classifier, photos PhotoStore, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, classifier: classifier, photos: photos, bus: bus, log: log}
}

// CreateSessionInput is the request to open a new estimation session.
type CreateSessionInput struct {
	Description string
	Address     *string
	Urgent      bool
}

// CreateSession classifies the description, persists the session with its
// classification snapshot, and returns the first eligible question.
func (s *Service) CreateSession(ctx context.Context, input CreateSessionInput) (repository.Session, *repository.Question, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return repository.Session{}, nil, apperr.Validation("description is required")
	}

	result := s.classifier.Classify(ctx, description)

	params := repository.CreateSessionParams{
		Description:   description,
		Address:       input.Address,
		Urgent:        input.Urgent,
		ServiceIntent: result.ServiceIntent,
		ServiceType:   result.ServiceType,
		Subcategory:   result.Subcategory,
		Confidence:    result.Confidence,
	}
	if result.Reasoning != "" {
		params.Reasoning = &result.Reasoning
	}
	if result.Clarifier != "" {
		params.Clarifier = &result.Clarifier
	}
	if result.Degraded {
		params.DegradedReason = &result.DegradedReason
	}

	session, err := s.repo.CreateSession(ctx, params)
	if err != nil {
		return repository.Session{}, nil, fmt.Errorf("create session: %w", err)
	}

	s.bus.Publish(ctx, events.SessionCreated{
		BaseEvent:   events.NewBaseEvent(),
		SessionID:   session.ID,
		ServiceType: session.ServiceType,
		Subcategory: session.Subcategory,
		Degraded:    result.Degraded,
	})

	next, _, err := s.advance(ctx, &session, nil)
	if err != nil {
		return repository.Session{}, nil, err
	}
	return session, next, nil
}

// GetSession returns a session by id.
func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (repository.Session, error) {
	return s.repo.GetSession(ctx, id)
}

// NextQuestion returns the next eligible question for a session, or
// ready=true when questioning is finished. Ready is terminal: sessions
// past awaiting_answers never get another question.
func (s *Service) NextQuestion(ctx context.Context, sessionID uuid.UUID) (*repository.Question, bool, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	if session.Status != repository.StatusAwaitingAnswers {
		return nil, true, nil
	}
	answers, _, err := s.repo.LatestAnswers(ctx, sessionID)
	if err != nil {
		return nil, false, fmt.Errorf("load answers: %w", err)
	}
	return s.advance(ctx, &session, answers)
}

// SubmitAnswer appends an answer for a question of the session's category
// and returns the next eligible question. Later answers for the same
// question supersede earlier ones.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID, questionID uuid.UUID, value string) (repository.Answer, *repository.Question, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return repository.Answer{}, nil, false, apperr.Validation("answer value is required")
	}

	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return repository.Answer{}, nil, false, err
	}
	if session.Status == repository.StatusCompleted {
		return repository.Answer{}, nil, false, apperr.Conflict("session is completed")
	}

	question, err := s.repo.GetQuestion(ctx, questionID)
	if err != nil {
		return repository.Answer{}, nil, false, err
	}
	if question.ServiceType != session.ServiceType || question.Subcategory != session.Subcategory {
		return repository.Answer{}, nil, false, apperr.Validation("question does not belong to this session's service category")
	}
	if question.ResponseType == repository.ResponseTypeChoice && !containsFold(question.Options, value) {
		return repository.Answer{}, nil, false, apperr.Validation("answer is not one of the question's options")
	}

	answer, err := s.repo.AppendAnswer(ctx, sessionID, questionID, value)
	if err != nil {
		return repository.Answer{}, nil, false, fmt.Errorf("append answer: %w", err)
	}

	answers, _, err := s.repo.LatestAnswers(ctx, sessionID)
	if err != nil {
		return repository.Answer{}, nil, false, fmt.Errorf("load answers: %w", err)
	}
	next, ready, err := s.advance(ctx, &session, answers)
	if err != nil {
		return repository.Answer{}, nil, false, err
	}
	return answer, next, ready, nil
}

// PhotoUpload is a presigned request photo upload slot.
type PhotoUpload struct {
	URL     string
	FileKey string
}

// CreatePhotoUpload issues a presigned upload URL and records the file key
// on the session. Returns Unavailable when object storage is not configured.
func (s *Service) CreatePhotoUpload(ctx context.Context, sessionID uuid.UUID, fileName, contentType string, sizeBytes int64) (PhotoUpload, error) {
	if s.photos == nil {
		return PhotoUpload{}, apperr.Unavailable("photo storage is not configured")
	}
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return PhotoUpload{}, err
	}
	if session.Status == repository.StatusCompleted {
		return PhotoUpload{}, apperr.Conflict("session is completed")
	}

	folder := "sessions/" + session.ID.String()
	url, fileKey, err := s.photos.GenerateRequestPhotoUploadURL(ctx, folder, fileName, contentType, sizeBytes)
	if err != nil {
		return PhotoUpload{}, err
	}
	if err := s.repo.AppendPhotoKey(ctx, session.ID, fileKey); err != nil {
		return PhotoUpload{}, fmt.Errorf("record photo key: %w", err)
	}
	return PhotoUpload{URL: url, FileKey: fileKey}, nil
}

// advance computes the next eligible question and transitions the session
// to ready_for_scope when none remains. answers may be nil for a fresh
// session.
func (s *Service) advance(ctx context.Context, session *repository.Session, answers map[string]string) (*repository.Question, bool, error) {
	questions, err := s.repo.ListQuestions(ctx, session.ServiceType, session.Subcategory)
	if err != nil {
		return nil, false, fmt.Errorf("list questions: %w", err)
	}
	if answers == nil {
		answers = map[string]string{}
	}
	next := NextEligible(questions, answers)
	if next != nil {
		return next, false, nil
	}

	if session.Status == repository.StatusAwaitingAnswers {
		if err := s.repo.SetSessionStatus(ctx, session.ID, repository.StatusReadyForScope); err != nil {
			return nil, false, fmt.Errorf("mark session ready: %w", err)
		}
		session.Status = repository.StatusReadyForScope
		s.bus.Publish(ctx, events.SessionReadyForScope{
			BaseEvent: events.NewBaseEvent(),
			SessionID: session.ID,
		})
	}
	return nil, true, nil
}

func containsFold(options []string, value string) bool {
	for _, opt := range options {
		if strings.EqualFold(opt, value) {
			return true
		}
	}
	return false
}
