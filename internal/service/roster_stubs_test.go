package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shift-roster-api/internal/models"
)

type txProviderMock struct {
	db *sqlx.DB
}

func (t *txProviderMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return t.db.BeginTxx(ctx, opts)
}

func newTxProviderMock(t *testing.T) (txProvider, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &txProviderMock{db: sqlx.NewDb(db, "sqlmock")}, mock
}

var fixedNow = time.Date(2025, 7, 20, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func day(d int) time.Time {
	return time.Date(2025, 8, d, 0, 0, 0, 0, time.UTC)
}

type workerStub struct {
	workers []models.WorkerProfile
	known   map[int64]bool
	err     error
}

func (s *workerStub) ListByDepartment(context.Context, string) ([]models.WorkerProfile, error) {
	return s.workers, s.err
}

func (s *workerStub) Exists(_ context.Context, _ sqlx.ExtContext, id int64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if s.known != nil {
		return s.known[id], nil
	}
	for _, w := range s.workers {
		if w.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type leaveStub struct {
	rows     []models.LeaveRequest
	inserted []models.LeaveRequest
	err      error
}

func (s *leaveStub) ListLatestByDepartmentAndRange(context.Context, string, time.Time, time.Time) ([]models.LeaveRequest, error) {
	return s.rows, s.err
}

func (s *leaveStub) InsertBatch(_ context.Context, _ sqlx.ExtContext, rows []models.LeaveRequest) error {
	if s.err != nil {
		return s.err
	}
	s.inserted = append(s.inserted, rows...)
	return nil
}

type requirementStub struct {
	rows     []models.StaffingRequirement
	upserted []models.StaffingRequirement
	err      error
}

func (s *requirementStub) ListByDepartmentAndRange(context.Context, string, time.Time, time.Time) ([]models.StaffingRequirement, error) {
	return s.rows, s.err
}

func (s *requirementStub) UpsertBatch(_ context.Context, _ sqlx.ExtContext, rows []models.StaffingRequirement) error {
	if s.err != nil {
		return s.err
	}
	s.upserted = append(s.upserted, rows...)
	return nil
}

type tempStub struct {
	rows     []models.TemporaryAssignment
	inserted []models.TemporaryAssignment
	err      error
}

func (s *tempStub) ListByDepartmentAndRange(context.Context, string, time.Time, time.Time) ([]models.TemporaryAssignment, error) {
	return s.rows, s.err
}

func (s *tempStub) InsertBatch(_ context.Context, _ sqlx.ExtContext, rows []models.TemporaryAssignment) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.inserted = append(s.inserted, rows...)
	return int64(len(rows)), nil
}

type shiftBatchStub struct {
	batches [][]models.Shift
	err     error
}

func (s *shiftBatchStub) BatchInsert(_ context.Context, _ sqlx.ExtContext, shifts []models.Shift) error {
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, append([]models.Shift(nil), shifts...))
	return nil
}

func worker(id int64, offDays ...time.Weekday) models.WorkerProfile {
	w := models.WorkerProfile{ID: id, Username: "worker", FirstName: "Name", LastName: "Worker", Department: "amami"}
	for _, d := range offDays {
		w.Weekly[d].Off = true
	}
	return w
}
