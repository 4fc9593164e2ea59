package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/shift-roster-api/internal/models"
)

// StaffingRequirementRepository persists slot headcounts.
type StaffingRequirementRepository struct {
	db *sqlx.DB
}

// NewStaffingRequirementRepository constructs the repository.
func NewStaffingRequirementRepository(db *sqlx.DB) *StaffingRequirementRepository {
	return &StaffingRequirementRepository{db: db}
}

func (r *StaffingRequirementRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// ListByDepartmentAndRange returns requirements in the inclusive range.
func (r *StaffingRequirementRepository) ListByDepartmentAndRange(ctx context.Context, department string, start, end time.Time) ([]models.StaffingRequirement, error) {
	const query = `SELECT id, date, department, time_slot, required_count FROM staffing_requirements
WHERE department = $1 AND date BETWEEN $2 AND $3 ORDER BY date ASC, time_slot ASC, id ASC`
	var reqs []models.StaffingRequirement
	if err := r.db.SelectContext(ctx, &reqs, query, department, start, end); err != nil {
		return nil, fmt.Errorf("list staffing requirements: %w", err)
	}
	return reqs, nil
}

// UpsertBatch writes requirements keyed by (date, department, time_slot).
func (r *StaffingRequirementRepository) UpsertBatch(ctx context.Context, exec sqlx.ExtContext, reqs []models.StaffingRequirement) error {
	target := r.exec(exec)
	const query = `INSERT INTO staffing_requirements (date, department, time_slot, required_count)
VALUES (:date, :department, :time_slot, :required_count)
ON CONFLICT (date, department, time_slot) DO UPDATE
SET required_count = EXCLUDED.required_count`
	for i := range reqs {
		if _, err := sqlx.NamedExecContext(ctx, target, query, &reqs[i]); err != nil {
			return fmt.Errorf("upsert staffing requirement: %w", err)
		}
	}
	return nil
}
