// Package repository persists the completed jobs corpus.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"scopeworks_backend/platform/apperr"
)

// CompletedJob is one append-only job outcome. AccuracyScore, HighQuality,
// and Tags are filled in exactly once when the job is scored.
type CompletedJob struct {
	ID                 uuid.UUID
	SessionID          uuid.UUID
	ServiceType        string
	Subcategory        string
	Description        string
	Urgent             bool
	StructuredAnswers  map[string]string
	EstimatedManHours  *float64
	EstimatedCostCents *int64
	ActualManHours     *float64
	ActualCostCents    *int64
	CustomerRating     *int
	IssuesEncountered  *string
	AccuracyScore      *float64
	HighQuality        *bool
	Tags               []string
	ScoredAt           *time.Time
	CreatedAt          time.Time
}

// CreateJobParams holds everything persisted at job completion.
type CreateJobParams struct {
	SessionID          uuid.UUID
	ServiceType        string
	Subcategory        string
	Description        string
	Urgent             bool
	StructuredAnswers  map[string]string
	EstimatedManHours  *float64
	EstimatedCostCents *int64
	ActualManHours     *float64
	ActualCostCents    *int64
	CustomerRating     *int
	IssuesEncountered  *string
}

// Repository combines completed job persistence operations.
type Repository interface {
	CreateJob(ctx context.Context, params CreateJobParams) (CompletedJob, error)
	GetJob(ctx context.Context, id uuid.UUID) (CompletedJob, error)
	// SetScore records the accuracy score, quality flag, and tags. It is a
	// no-op returning Conflict when the job was already scored.
	SetScore(ctx context.Context, id uuid.UUID, score *float64, highQuality bool, tags []string) error
	ListRecent(ctx context.Context, serviceType, subcategory string, limit int) ([]CompletedJob, error)
}

// Repo is the pgx-backed Repository.
type Repo struct {
	pool *pgxpool.Pool
}

var _ Repository = (*Repo)(nil)

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const jobColumns = `id, session_id, service_type, subcategory, description, urgent,
	structured_answers, estimated_man_hours, estimated_cost_cents,
	actual_man_hours, actual_cost_cents, customer_rating, issues_encountered,
	accuracy_score, high_quality, tags, scored_at, created_at`

func scanJob(row pgx.Row) (CompletedJob, error) {
	var j CompletedJob
	err := row.Scan(&j.ID, &j.SessionID, &j.ServiceType, &j.Subcategory, &j.Description, &j.Urgent,
		&j.StructuredAnswers, &j.EstimatedManHours, &j.EstimatedCostCents,
		&j.ActualManHours, &j.ActualCostCents, &j.CustomerRating, &j.IssuesEncountered,
		&j.AccuracyScore, &j.HighQuality, &j.Tags, &j.ScoredAt, &j.CreatedAt)
	return j, err
}

func (r *Repo) CreateJob(ctx context.Context, p CreateJobParams) (CompletedJob, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO completed_jobs
			(id, session_id, service_type, subcategory, description, urgent,
			 structured_answers, estimated_man_hours, estimated_cost_cents,
			 actual_man_hours, actual_cost_cents, customer_rating, issues_encountered)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+jobColumns,
		uuid.New(), p.SessionID, p.ServiceType, p.Subcategory, p.Description, p.Urgent,
		p.StructuredAnswers, p.EstimatedManHours, p.EstimatedCostCents,
		p.ActualManHours, p.ActualCostCents, p.CustomerRating, p.IssuesEncountered)

	job, err := scanJob(row)
	if err != nil {
		return CompletedJob{}, fmt.Errorf("insert completed job: %w", err)
	}
	return job, nil
}

func (r *Repo) GetJob(ctx context.Context, id uuid.UUID) (CompletedJob, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM completed_jobs WHERE id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CompletedJob{}, apperr.NotFound("completed job not found")
		}
		return CompletedJob{}, fmt.Errorf("get completed job: %w", err)
	}
	return job, nil
}

func (r *Repo) SetScore(ctx context.Context, id uuid.UUID, score *float64, highQuality bool, tags []string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE completed_jobs
		SET accuracy_score = $2, high_quality = $3, tags = $4, scored_at = now()
		WHERE id = $1 AND scored_at IS NULL`,
		id, score, highQuality, tags)
	if err != nil {
		return fmt.Errorf("set job score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("job already scored")
	}
	return nil
}

func (r *Repo) ListRecent(ctx context.Context, serviceType, subcategory string, limit int) ([]CompletedJob, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := `SELECT ` + jobColumns + ` FROM completed_jobs`
	args := []any{}
	switch {
	case serviceType != "" && subcategory != "":
		query += ` WHERE service_type = $1 AND subcategory = $2`
		args = append(args, serviceType, subcategory)
	case serviceType != "":
		query += ` WHERE service_type = $1`
		args = append(args, serviceType)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query completed jobs: %w", err)
	}
	defer rows.Close()

	var jobs []CompletedJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan completed job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completed jobs: %w", err)
	}
	return jobs, nil
}
