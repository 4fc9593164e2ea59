package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/shift-roster-api/internal/models"
	appErrors "github.com/noah-isme/shift-roster-api/pkg/errors"
)

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type rosterWorkerReader interface {
	ListByDepartment(ctx context.Context, department string) ([]models.WorkerProfile, error)
}

type workerChecker interface {
	Exists(ctx context.Context, exec sqlx.ExtContext, id int64) (bool, error)
}

type leaveRequestStore interface {
	ListLatestByDepartmentAndRange(ctx context.Context, department string, start, end time.Time) ([]models.LeaveRequest, error)
	InsertBatch(ctx context.Context, exec sqlx.ExtContext, requests []models.LeaveRequest) error
}

type staffingRequirementStore interface {
	ListByDepartmentAndRange(ctx context.Context, department string, start, end time.Time) ([]models.StaffingRequirement, error)
	UpsertBatch(ctx context.Context, exec sqlx.ExtContext, reqs []models.StaffingRequirement) error
}

type temporaryAssignmentStore interface {
	ListByDepartmentAndRange(ctx context.Context, department string, start, end time.Time) ([]models.TemporaryAssignment, error)
	InsertBatch(ctx context.Context, exec sqlx.ExtContext, assignments []models.TemporaryAssignment) (int64, error)
}

type shiftReader interface {
	ListByDepartmentAndRange(ctx context.Context, department string, start, end time.Time) ([]models.Shift, error)
}

type shiftBatchWriter interface {
	BatchInsert(ctx context.Context, exec sqlx.ExtContext, shifts []models.Shift) error
}

type shiftCellStore interface {
	FindByCell(ctx context.Context, exec sqlx.ExtContext, workerID int64, date time.Time, department string) (*models.Shift, error)
	Save(ctx context.Context, exec sqlx.ExtContext, shift *models.Shift) error
	DeleteByCell(ctx context.Context, exec sqlx.ExtContext, workerID int64, date time.Time, department string) (int64, error)
	DeleteCellExcept(ctx context.Context, exec sqlx.ExtContext, workerID int64, date time.Time, department string, keepID int64) (int64, error)
}

// Clock returns the current time. Services default to UTC wall time.
type Clock func() time.Time

func defaultClock() time.Time {
	return time.Now().UTC()
}

// withTx runs fn inside a transaction and commits when fn succeeds.
func withTx(ctx context.Context, provider txProvider, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := provider.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func dateKey(t time.Time) string {
	return t.Format(models.DateLayout)
}

// asInternal keeps typed errors and wraps anything else as an internal error.
func asInternal(err error, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return appErrors.Internal(err, message)
}
