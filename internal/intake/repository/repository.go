package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"scopeworks_backend/internal/intake/domain"
	"scopeworks_backend/platform/apperr"
)

const (
	sessionNotFoundMessage  = "session not found"
	questionNotFoundMessage = "question not found"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new intake repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const sessionColumns = `
	id, description, address, urgent, photo_keys,
	service_intent, service_type, subcategory, confidence, reasoning, clarifier, degraded_reason,
	status, estimated_man_hours, estimated_cost_cents, scope_generated_at, created_at, updated_at`

func scanSession(row pgx.Row) (Session, error) {
	var s Session
	err := row.Scan(
		&s.ID, &s.Description, &s.Address, &s.Urgent, &s.PhotoKeys,
		&s.ServiceIntent, &s.ServiceType, &s.Subcategory, &s.Confidence, &s.Reasoning, &s.Clarifier, &s.DegradedReason,
		&s.Status, &s.EstimatedManHours, &s.EstimatedCostCents, &s.ScopeGeneratedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// GetSession retrieves a session by its ID.
func (r *Repo) GetSession(ctx context.Context, id uuid.UUID) (Session, error) {
	query := `SELECT` + sessionColumns + ` FROM intake_sessions WHERE id = $1`

	s, err := scanSession(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Session{}, apperr.NotFound(sessionNotFoundMessage)
		}
		return Session{}, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

// CreateSession persists a new session with its classification snapshot.
func (r *Repo) CreateSession(ctx context.Context, params CreateSessionParams) (Session, error) {
	query := `
		INSERT INTO intake_sessions (
			description, address, urgent,
			service_intent, service_type, subcategory, confidence, reasoning, clarifier, degraded_reason, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING` + sessionColumns

	s, err := scanSession(r.pool.QueryRow(ctx, query,
		params.Description, params.Address, params.Urgent,
		params.ServiceIntent, params.ServiceType, params.Subcategory, params.Confidence,
		params.Reasoning, params.Clarifier, params.DegradedReason, StatusAwaitingAnswers,
	))
	if err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}
	return s, nil
}

// SetSessionStatus updates the session state machine. Moving a ready
// session back to awaiting answers is refused; ready is terminal for
// questioning.
func (r *Repo) SetSessionStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `
		UPDATE intake_sessions
		SET status = $2, updated_at = now()
		WHERE id = $1 AND NOT (status <> $3 AND $2 = $3)`

	result, err := r.pool.Exec(ctx, query, id, status, StatusAwaitingAnswers)
	if err != nil {
		return fmt.Errorf("set session status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(sessionNotFoundMessage)
	}
	return nil
}

// AppendPhotoKey records an uploaded photo object key on the session.
func (r *Repo) AppendPhotoKey(ctx context.Context, id uuid.UUID, fileKey string) error {
	query := `
		UPDATE intake_sessions
		SET photo_keys = array_append(photo_keys, $2), updated_at = now()
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, fileKey)
	if err != nil {
		return fmt.Errorf("append photo key: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(sessionNotFoundMessage)
	}
	return nil
}

// SaveEstimate stores the generated scope's headline figures.
func (r *Repo) SaveEstimate(ctx context.Context, id uuid.UUID, manHours float64, costCents int64) error {
	query := `
		UPDATE intake_sessions
		SET estimated_man_hours = $2, estimated_cost_cents = $3, scope_generated_at = now(), updated_at = now()
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, manHours, costCents)
	if err != nil {
		return fmt.Errorf("save estimate: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(sessionNotFoundMessage)
	}
	return nil
}

// LatestAnswers returns the superseding answer per question for a session.
// Answers are append-only; DISTINCT ON picks the most recent one per question.
func (r *Repo) LatestAnswers(ctx context.Context, sessionID uuid.UUID) (map[string]string, []Answer, error) {
	query := `
		SELECT DISTINCT ON (a.question_id)
			a.id, a.session_id, a.question_id, q.question_key, a.value, a.created_at
		FROM session_answers a
		JOIN dynamic_questions q ON q.id = a.question_id
		WHERE a.session_id = $1
		ORDER BY a.question_id, a.created_at DESC, a.id DESC`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	byKey := make(map[string]string)
	var answers []Answer
	for rows.Next() {
		var a Answer
		if err := rows.Scan(&a.ID, &a.SessionID, &a.QuestionID, &a.QuestionKey, &a.Value, &a.CreatedAt); err != nil {
			return nil, nil, fmt.Errorf("scan answer: %w", err)
		}
		byKey[a.QuestionKey] = a.Value
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate answers: %w", err)
	}

	return byKey, answers, nil
}

// AppendAnswer records a new answer. Existing answers for the same question
// are kept; the newest one supersedes on read.
func (r *Repo) AppendAnswer(ctx context.Context, sessionID, questionID uuid.UUID, value string) (Answer, error) {
	query := `
		INSERT INTO session_answers (session_id, question_id, value)
		VALUES ($1, $2, $3)
		RETURNING id, session_id, question_id,
			(SELECT question_key FROM dynamic_questions WHERE id = $2), value, created_at`

	var a Answer
	err := r.pool.QueryRow(ctx, query, sessionID, questionID, value).Scan(
		&a.ID, &a.SessionID, &a.QuestionID, &a.QuestionKey, &a.Value, &a.CreatedAt,
	)
	if err != nil {
		return Answer{}, fmt.Errorf("append answer: %w", err)
	}
	return a, nil
}

const questionColumns = `
	id, service_type, subcategory, question_key, question_text, response_type, options,
	sequence, required_for_scope, cond_kind, cond_question_key, cond_value, created_at`

// ListQuestions returns questions for a (serviceType, subcategory) pair in
// stable selection order.
func (r *Repo) ListQuestions(ctx context.Context, serviceType, subcategory string) ([]Question, error) {
	query := `
		SELECT` + questionColumns + `
		FROM dynamic_questions
		WHERE service_type = $1 AND subcategory = $2
		ORDER BY sequence ASC, created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, serviceType, subcategory)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	return questions, nil
}

// GetQuestion retrieves a question by its ID.
func (r *Repo) GetQuestion(ctx context.Context, id uuid.UUID) (Question, error) {
	query := `SELECT` + questionColumns + ` FROM dynamic_questions WHERE id = $1`

	q, err := scanQuestion(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Question{}, apperr.NotFound(questionNotFoundMessage)
		}
		return Question{}, fmt.Errorf("get question: %w", err)
	}
	return q, nil
}

func scanQuestion(row pgx.Row) (Question, error) {
	var q Question
	var condKind, condKey, condValue *string

	err := row.Scan(
		&q.ID, &q.ServiceType, &q.Subcategory, &q.QuestionKey, &q.QuestionText, &q.ResponseType, &q.Options,
		&q.Sequence, &q.RequiredForScope, &condKind, &condKey, &condValue, &q.CreatedAt,
	)
	if err != nil {
		return Question{}, err
	}

	if condKind != nil && *condKind != "" {
		q.Condition = &domain.Predicate{Kind: domain.PredicateKind(*condKind)}
		if condKey != nil {
			q.Condition.QuestionKey = *condKey
		}
		if condValue != nil {
			q.Condition.Value = *condValue
		}
	}

	return q, nil
}
