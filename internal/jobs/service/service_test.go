package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"scopeworks_backend/internal/events"
	intakerepo "scopeworks_backend/internal/intake/repository"
	"scopeworks_backend/internal/jobs/repository"
	"scopeworks_backend/platform/apperr"
	"scopeworks_backend/platform/logger"
)

func f(v float64) *float64 { return &v }
func i(v int64) *int64     { return &v }
func ir(v int) *int        { return &v }

type memRepo struct {
	jobs map[uuid.UUID]*repository.CompletedJob
}

func newMemRepo() *memRepo {
	return &memRepo{jobs: map[uuid.UUID]*repository.CompletedJob{}}
}

func (m *memRepo) CreateJob(_ context.Context, p repository.CreateJobParams) (repository.CompletedJob, error) {
	job := repository.CompletedJob{
		ID:                 uuid.New(),
		SessionID:          p.SessionID,
		ServiceType:        p.ServiceType,
		Subcategory:        p.Subcategory,
		Description:        p.Description,
		Urgent:             p.Urgent,
		StructuredAnswers:  p.StructuredAnswers,
		EstimatedManHours:  p.EstimatedManHours,
		EstimatedCostCents: p.EstimatedCostCents,
		ActualManHours:     p.ActualManHours,
		ActualCostCents:    p.ActualCostCents,
		CustomerRating:     p.CustomerRating,
		IssuesEncountered:  p.IssuesEncountered,
	}
	m.jobs[job.ID] = &job
	return job, nil
}

func (m *memRepo) GetJob(_ context.Context, id uuid.UUID) (repository.CompletedJob, error) {
	job, ok := m.jobs[id]
	if !ok {
		return repository.CompletedJob{}, apperr.NotFound("completed job not found")
	}
	return *job, nil
}

func (m *memRepo) SetScore(_ context.Context, id uuid.UUID, score *float64, highQuality bool, tags []string) error {
	job, ok := m.jobs[id]
	if !ok {
		return apperr.NotFound("completed job not found")
	}
	if job.ScoredAt != nil {
		return apperr.Conflict("job already scored")
	}
	job.AccuracyScore = score
	job.HighQuality = &highQuality
	job.Tags = tags
	now := job.CreatedAt
	job.ScoredAt = &now
	return nil
}

func (m *memRepo) ListRecent(_ context.Context, _, _ string, _ int) ([]repository.CompletedJob, error) {
	var out []repository.CompletedJob
	for _, j := range m.jobs {
		out = append(out, *j)
	}
	return out, nil
}

type fakeIntake struct{ info SessionInfo }

func (f *fakeIntake) SessionInfo(context.Context, uuid.UUID) (SessionInfo, error) {
	return f.info, nil
}

type fakeCompleter struct{ completed []uuid.UUID }

func (f *fakeCompleter) MarkCompleted(_ context.Context, id uuid.UUID) error {
	f.completed = append(f.completed, id)
	return nil
}

type fakeEnqueuer struct {
	enqueued []uuid.UUID
	err      error
}

func (f *fakeEnqueuer) EnqueueScore(_ context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, id)
	return nil
}

func testSession() SessionInfo {
	return SessionInfo{
		ID:                 uuid.New(),
		Description:        "leaking pipe under kitchen sink",
		Status:             intakerepo.StatusReadyForScope,
		ServiceType:        "Plumbing",
		Subcategory:        "Leak Repair",
		Answers:            map[string]string{"location": "kitchen"},
		EstimatedManHours:  f(2.5),
		EstimatedCostCents: i(28250),
	}
}

// newTestServiceBus wires the scoring handler onto the bus the way the
// module does, so completion drives scoring through JobCompleted.
func newTestServiceBus(repo repository.Repository, intake IntakeReader, completer SessionCompleter, enqueuer ScoreEnqueuer) (*Service, *events.InMemoryBus) {
	bus := events.NewInMemoryBus(logger.New("test"))
	svc := New(repo, intake, completer, enqueuer, bus, logger.New("test"))
	bus.Subscribe(events.JobCompleted{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.JobCompleted)
		if !ok {
			return nil
		}
		return svc.ScheduleScoring(ctx, e.JobID)
	}))
	return svc, bus
}

func newTestService(repo repository.Repository, intake IntakeReader, completer SessionCompleter) *Service {
	svc, _ := newTestServiceBus(repo, intake, completer, nil)
	return svc
}

func TestCompleteJobScoresInline(t *testing.T) {
	repo := newMemRepo()
	completer := &fakeCompleter{}
	svc := newTestService(repo, &fakeIntake{info: testSession()}, completer)

	job, err := svc.CompleteJob(context.Background(), uuid.New(), CompleteJobInput{
		ActualManHours:  f(2.5),
		ActualCostCents: i(28250),
		CustomerRating:  ir(5),
	})
	if err != nil {
		t.Fatal(err)
	}
	if job.AccuracyScore == nil || *job.AccuracyScore != 1.0 {
		t.Fatalf("expected perfect score, got %v", job.AccuracyScore)
	}
	if job.HighQuality == nil || !*job.HighQuality {
		t.Fatal("expected high quality training example")
	}
	if len(completer.completed) != 1 {
		t.Fatal("session was not marked completed")
	}
	if job.ScoredAt == nil {
		t.Fatal("job was not scored")
	}
}

func TestCompleteJobInvalidRating(t *testing.T) {
	svc := newTestService(newMemRepo(), &fakeIntake{info: testSession()}, &fakeCompleter{})
	_, err := svc.CompleteJob(context.Background(), uuid.New(), CompleteJobInput{CustomerRating: ir(6)})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestCompleteJobAlreadyCompleted(t *testing.T) {
	info := testSession()
	info.Status = intakerepo.StatusCompleted
	svc := newTestService(newMemRepo(), &fakeIntake{info: info}, &fakeCompleter{})
	_, err := svc.CompleteJob(context.Background(), uuid.New(), CompleteJobInput{})
	var appErr *apperr.Error
	if err == nil || !errors.As(err, &appErr) || appErr.Kind != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestScoreJobIsIdempotent(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo, &fakeIntake{info: testSession()}, &fakeCompleter{})

	job, err := svc.CompleteJob(context.Background(), uuid.New(), CompleteJobInput{
		ActualManHours: f(5.0),
	})
	if err != nil {
		t.Fatal(err)
	}
	firstScore := job.AccuracyScore

	if err := svc.ScoreJob(context.Background(), job.ID); err != nil {
		t.Fatalf("rescoring should be a no-op, got %v", err)
	}
	after, err := repo.GetJob(context.Background(), job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !floatPtrEqual(after.AccuracyScore, firstScore) {
		t.Fatal("score changed on rescore")
	}
}

func TestScoreJobNoActualsStoresNilScore(t *testing.T) {
	info := testSession()
	info.EstimatedManHours = nil
	info.EstimatedCostCents = nil
	repo := newMemRepo()
	svc := newTestService(repo, &fakeIntake{info: info}, &fakeCompleter{})

	job, err := svc.CompleteJob(context.Background(), uuid.New(), CompleteJobInput{})
	if err != nil {
		t.Fatal(err)
	}
	if job.AccuracyScore != nil {
		t.Fatalf("expected nil score when nothing computable, got %v", *job.AccuracyScore)
	}
	if job.ScoredAt == nil {
		t.Fatal("job should still be marked scored")
	}
}

func TestCompleteJobPublishesJobCompleted(t *testing.T) {
	repo := newMemRepo()
	svc, bus := newTestServiceBus(repo, &fakeIntake{info: testSession()}, &fakeCompleter{}, nil)

	var seen []events.JobCompleted
	bus.Subscribe(events.JobCompleted{}.EventName(), events.HandlerFunc(func(_ context.Context, event events.Event) error {
		if e, ok := event.(events.JobCompleted); ok {
			seen = append(seen, e)
		}
		return nil
	}))

	sessionID := uuid.New()
	job, err := svc.CompleteJob(context.Background(), sessionID, CompleteJobInput{ActualManHours: f(2.5)})
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 {
		t.Fatalf("expected one JobCompleted event, got %d", len(seen))
	}
	if seen[0].JobID != job.ID {
		t.Fatalf("event carries job %s, want %s", seen[0].JobID, job.ID)
	}
	if seen[0].SessionID != sessionID {
		t.Fatalf("event carries session %s, want %s", seen[0].SessionID, sessionID)
	}
	if job.ScoredAt == nil {
		t.Fatal("scoring did not run off the completion event")
	}
}

func TestCompleteJobEnqueuesScoring(t *testing.T) {
	repo := newMemRepo()
	enq := &fakeEnqueuer{}
	svc, _ := newTestServiceBus(repo, &fakeIntake{info: testSession()}, &fakeCompleter{}, enq)

	job, err := svc.CompleteJob(context.Background(), uuid.New(), CompleteJobInput{ActualManHours: f(2.0)})
	if err != nil {
		t.Fatal(err)
	}
	if len(enq.enqueued) != 1 || enq.enqueued[0] != job.ID {
		t.Fatalf("expected job %s enqueued, got %v", job.ID, enq.enqueued)
	}
	if job.ScoredAt != nil {
		t.Fatal("scoring should be deferred to the worker when enqueued")
	}
}

func TestCompleteJobEnqueueFailureScoresInline(t *testing.T) {
	repo := newMemRepo()
	enq := &fakeEnqueuer{err: errors.New("redis down")}
	svc, _ := newTestServiceBus(repo, &fakeIntake{info: testSession()}, &fakeCompleter{}, enq)

	job, err := svc.CompleteJob(context.Background(), uuid.New(), CompleteJobInput{ActualManHours: f(2.0)})
	if err != nil {
		t.Fatal(err)
	}
	if job.ScoredAt == nil {
		t.Fatal("expected inline scoring fallback when enqueue fails")
	}
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
