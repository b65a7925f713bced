// Package standards provides read access to the production standard table:
// reference labor-hours and material-cost rates per service line item.
package standards

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductionStandard is one reference rate row. At least one of
// LaborHoursPerUnit and MaterialCostCents is non-nil, enforced by a
// database constraint.
type ProductionStandard struct {
	ID                uuid.UUID
	ServiceType       string
	Subcategory       string
	ItemDescription   string
	UnitOfMeasure     string
	LaborHoursPerUnit *float64
	MaterialCostCents *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Repository reads production standards.
type Repository interface {
	// ListForCategory returns all standards for a (serviceType, subcategory)
	// pair in insertion order.
	ListForCategory(ctx context.Context, serviceType, subcategory string) ([]ProductionStandard, error)
}

// Repo is the pgx-backed Repository.
type Repo struct {
	pool *pgxpool.Pool
}

var _ Repository = (*Repo)(nil)

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) ListForCategory(ctx context.Context, serviceType, subcategory string) ([]ProductionStandard, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, service_type, subcategory, item_description, unit_of_measure,
		       labor_hours_per_unit, material_cost_cents, created_at, updated_at
		FROM production_standards
		WHERE service_type = $1 AND subcategory = $2
		ORDER BY created_at, id`,
		serviceType, subcategory)
	if err != nil {
		return nil, fmt.Errorf("query production standards: %w", err)
	}
	defer rows.Close()

	var standards []ProductionStandard
	for rows.Next() {
		var s ProductionStandard
		if err := rows.Scan(&s.ID, &s.ServiceType, &s.Subcategory, &s.ItemDescription,
			&s.UnitOfMeasure, &s.LaborHoursPerUnit, &s.MaterialCostCents,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan production standard: %w", err)
		}
		standards = append(standards, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate production standards: %w", err)
	}
	return standards, nil
}

// Upsert inserts or refreshes a standard by its natural key. Used by the
// standards import CLI, not by request-path code.
func (r *Repo) Upsert(ctx context.Context, s ProductionStandard) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO production_standards
			(id, service_type, subcategory, item_description, unit_of_measure,
			 labor_hours_per_unit, material_cost_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (service_type, subcategory, item_description)
		DO UPDATE SET unit_of_measure = EXCLUDED.unit_of_measure,
		              labor_hours_per_unit = EXCLUDED.labor_hours_per_unit,
		              material_cost_cents = EXCLUDED.material_cost_cents,
		              updated_at = now()`,
		uuid.New(), s.ServiceType, s.Subcategory, s.ItemDescription,
		s.UnitOfMeasure, s.LaborHoursPerUnit, s.MaterialCostCents)
	if err != nil {
		return fmt.Errorf("upsert production standard: %w", err)
	}
	return nil
}
