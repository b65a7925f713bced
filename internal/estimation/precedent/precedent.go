// Package precedent retrieves and ranks completed jobs as historical
// precedents for new estimates.
package precedent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Precedent is a completed job viewed as estimation evidence.
type Precedent struct {
	JobID             uuid.UUID
	SessionID         uuid.UUID
	ServiceType       string
	Subcategory       string
	StructuredAnswers map[string]string
	ActualManHours    *float64
	ActualCostCents   *int64
	AccuracyScore     *float64
	CompletedAt       time.Time
}

// Repository fetches scored completed jobs for a service category.
type Repository interface {
	ListForCategory(ctx context.Context, serviceType, subcategory string, limit int) ([]Precedent, error)
}

// Repo is the pgx-backed Repository reading the completed jobs corpus.
type Repo struct {
	pool *pgxpool.Pool
}

var _ Repository = (*Repo)(nil)

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) ListForCategory(ctx context.Context, serviceType, subcategory string, limit int) ([]Precedent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, session_id, service_type, subcategory, structured_answers,
		       actual_man_hours, actual_cost_cents, accuracy_score, created_at
		FROM completed_jobs
		WHERE service_type = $1 AND subcategory = $2
		ORDER BY created_at DESC
		LIMIT $3`,
		serviceType, subcategory, limit)
	if err != nil {
		return nil, fmt.Errorf("query completed jobs: %w", err)
	}
	defer rows.Close()

	var precedents []Precedent
	for rows.Next() {
		var p Precedent
		if err := rows.Scan(&p.JobID, &p.SessionID, &p.ServiceType, &p.Subcategory,
			&p.StructuredAnswers, &p.ActualManHours, &p.ActualCostCents,
			&p.AccuracyScore, &p.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan completed job: %w", err)
		}
		precedents = append(precedents, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completed jobs: %w", err)
	}
	return precedents, nil
}
