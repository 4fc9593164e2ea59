package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/shift-roster-api/internal/models"
)

const shiftColumns = `id, worker_id, date, department, shift_type, time_slot, is_temporary, is_fixed, status, updated_by, updated_at, created_at`

// ShiftRepository persists shift cells. Duplicate rows per cell are allowed.
type ShiftRepository struct {
	db *sqlx.DB
}

// NewShiftRepository constructs the repository.
func NewShiftRepository(db *sqlx.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// BatchInsert writes shifts in a single multi-row insert.
func (r *ShiftRepository) BatchInsert(ctx context.Context, exec sqlx.ExtContext, shifts []models.Shift) error {
	if len(shifts) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range shifts {
		if shifts[i].CreatedAt.IsZero() {
			shifts[i].CreatedAt = now
		}
	}

	const query = `INSERT INTO shifts (worker_id, date, department, shift_type, time_slot, is_temporary, is_fixed, status, updated_by, updated_at, created_at)
VALUES (:worker_id, :date, :department, :shift_type, :time_slot, :is_temporary, :is_fixed, :status, :updated_by, :updated_at, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, shifts); err != nil {
		return fmt.Errorf("batch insert shifts: %w", err)
	}
	return nil
}

// ListByDepartmentAndRange returns every row in the inclusive date range.
func (r *ShiftRepository) ListByDepartmentAndRange(ctx context.Context, department string, start, end time.Time) ([]models.Shift, error) {
	const query = `SELECT ` + shiftColumns + ` FROM shifts WHERE department = $1 AND date BETWEEN $2 AND $3 ORDER BY date ASC, worker_id ASC, id ASC`
	var shifts []models.Shift
	if err := r.db.SelectContext(ctx, &shifts, query, department, start, end); err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	return shifts, nil
}

// FindByCell returns the row the display map shows for the cell, or nil when
// none exists. The ordering mirrors service.CompareShiftPriority so edits
// land on the visible row when duplicates exist.
func (r *ShiftRepository) FindByCell(ctx context.Context, exec sqlx.ExtContext, workerID int64, date time.Time, department string) (*models.Shift, error) {
	const query = `SELECT ` + shiftColumns + ` FROM shifts WHERE worker_id = $1 AND date = $2 AND department = $3
ORDER BY CASE WHEN status = 'DRAFT' THEN 2 WHEN status IS NOT NULL THEN 1 ELSE 0 END DESC, updated_at DESC NULLS LAST, id DESC LIMIT 1`
	var shift models.Shift
	if err := sqlx.GetContext(ctx, r.exec(exec), &shift, query, workerID, date, department); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find shift cell: %w", err)
	}
	return &shift, nil
}

// Save inserts a new row when ID is zero, otherwise updates the row in place.
func (r *ShiftRepository) Save(ctx context.Context, exec sqlx.ExtContext, shift *models.Shift) error {
	target := r.exec(exec)
	if shift.ID == 0 {
		if shift.CreatedAt.IsZero() {
			shift.CreatedAt = time.Now().UTC()
		}
		const insert = `INSERT INTO shifts (worker_id, date, department, shift_type, time_slot, is_temporary, is_fixed, status, updated_by, updated_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
		row := target.QueryRowxContext(ctx, insert,
			shift.WorkerID, shift.Date, shift.Department, shift.ShiftType, shift.TimeSlot,
			shift.IsTemporary, shift.IsFixed, shift.Status, shift.UpdatedBy, shift.UpdatedAt, shift.CreatedAt)
		if err := row.Scan(&shift.ID); err != nil {
			return fmt.Errorf("insert shift: %w", err)
		}
		return nil
	}

	const update = `UPDATE shifts SET shift_type = :shift_type, status = :status, updated_by = :updated_by, updated_at = :updated_at WHERE id = :id`
	if _, err := sqlx.NamedExecContext(ctx, target, update, shift); err != nil {
		return fmt.Errorf("update shift %d: %w", shift.ID, err)
	}
	return nil
}

// DeleteCellExcept removes the rows of the cell other than keepID and returns
// the number deleted.
func (r *ShiftRepository) DeleteCellExcept(ctx context.Context, exec sqlx.ExtContext, workerID int64, date time.Time, department string, keepID int64) (int64, error) {
	const query = `DELETE FROM shifts WHERE worker_id = $1 AND date = $2 AND department = $3 AND id <> $4`
	res, err := r.exec(exec).ExecContext(ctx, query, workerID, date, department, keepID)
	if err != nil {
		return 0, fmt.Errorf("prune shift cell: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune shift cell: %w", err)
	}
	return n, nil
}

// DeleteByCell removes every row of the cell and returns the number deleted.
func (r *ShiftRepository) DeleteByCell(ctx context.Context, exec sqlx.ExtContext, workerID int64, date time.Time, department string) (int64, error) {
	const query = `DELETE FROM shifts WHERE worker_id = $1 AND date = $2 AND department = $3`
	res, err := r.exec(exec).ExecContext(ctx, query, workerID, date, department)
	if err != nil {
		return 0, fmt.Errorf("delete shift cell: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete shift cell: %w", err)
	}
	return n, nil
}
