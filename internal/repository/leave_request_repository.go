package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/shift-roster-api/internal/models"
)

// LeaveRequestRepository stores the append-only leave history.
type LeaveRequestRepository struct {
	db *sqlx.DB
}

// NewLeaveRequestRepository constructs the repository.
func NewLeaveRequestRepository(db *sqlx.DB) *LeaveRequestRepository {
	return &LeaveRequestRepository{db: db}
}

func (r *LeaveRequestRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// ListLatestByDepartmentAndRange returns the newest row per (worker, date) in
// the inclusive date range, ordered by date then worker.
func (r *LeaveRequestRepository) ListLatestByDepartmentAndRange(ctx context.Context, department string, start, end time.Time) ([]models.LeaveRequest, error) {
	const query = `SELECT id, worker_id, date, department, kind, status, created_at FROM (
	SELECT DISTINCT ON (worker_id, date) id, worker_id, date, department, kind, status, created_at
	FROM leave_requests
	WHERE department = $1 AND date BETWEEN $2 AND $3
	ORDER BY worker_id, date, created_at DESC, id DESC
) latest ORDER BY date ASC, worker_id ASC`
	var requests []models.LeaveRequest
	if err := r.db.SelectContext(ctx, &requests, query, department, start, end); err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	return requests, nil
}

// InsertBatch appends leave rows in a single statement.
func (r *LeaveRequestRepository) InsertBatch(ctx context.Context, exec sqlx.ExtContext, requests []models.LeaveRequest) error {
	if len(requests) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range requests {
		if requests[i].CreatedAt.IsZero() {
			requests[i].CreatedAt = now
		}
	}

	const query = `INSERT INTO leave_requests (worker_id, date, department, kind, status, created_at)
VALUES (:worker_id, :date, :department, :kind, :status, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, requests); err != nil {
		return fmt.Errorf("insert leave requests: %w", err)
	}
	return nil
}
