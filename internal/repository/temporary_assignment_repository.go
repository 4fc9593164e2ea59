package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/shift-roster-api/internal/models"
)

// TemporaryAssignmentRepository persists pre-committed temporary workers.
type TemporaryAssignmentRepository struct {
	db *sqlx.DB
}

// NewTemporaryAssignmentRepository constructs the repository.
func NewTemporaryAssignmentRepository(db *sqlx.DB) *TemporaryAssignmentRepository {
	return &TemporaryAssignmentRepository{db: db}
}

func (r *TemporaryAssignmentRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// ListByDepartmentAndRange returns assignments in storage order.
func (r *TemporaryAssignmentRepository) ListByDepartmentAndRange(ctx context.Context, department string, start, end time.Time) ([]models.TemporaryAssignment, error) {
	const query = `SELECT id, worker_id, date, department, time_slot, fixed, created_at FROM temporary_assignments
WHERE department = $1 AND date BETWEEN $2 AND $3 ORDER BY id ASC`
	var assignments []models.TemporaryAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, department, start, end); err != nil {
		return nil, fmt.Errorf("list temporary assignments: %w", err)
	}
	return assignments, nil
}

// InsertBatch stores assignments, ignoring ones that already exist, and
// returns how many rows were written.
func (r *TemporaryAssignmentRepository) InsertBatch(ctx context.Context, exec sqlx.ExtContext, assignments []models.TemporaryAssignment) (int64, error) {
	target := r.exec(exec)
	now := time.Now().UTC()
	const query = `INSERT INTO temporary_assignments (worker_id, date, department, time_slot, fixed, created_at)
VALUES (:worker_id, :date, :department, :time_slot, :fixed, :created_at)
ON CONFLICT (worker_id, date, department, time_slot) DO NOTHING`

	var written int64
	for i := range assignments {
		assignment := &assignments[i]
		assignment.Fixed = true
		if assignment.CreatedAt.IsZero() {
			assignment.CreatedAt = now
		}
		res, err := sqlx.NamedExecContext(ctx, target, query, assignment)
		if err != nil {
			return written, fmt.Errorf("insert temporary assignment: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			written += n
		}
	}
	return written, nil
}
