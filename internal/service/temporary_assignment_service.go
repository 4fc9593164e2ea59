package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/shift-roster-api/internal/dto"
	"github.com/noah-isme/shift-roster-api/internal/models"
	appErrors "github.com/noah-isme/shift-roster-api/pkg/errors"
)

// TemporaryAssignmentService pre-commits temporary workers to slots.
type TemporaryAssignmentService struct {
	assignments temporaryAssignmentStore
	workers     workerChecker
	tx          txProvider
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewTemporaryAssignmentService constructs the service.
func NewTemporaryAssignmentService(assignments temporaryAssignmentStore, workers workerChecker, tx txProvider, validate *validator.Validate, logger *zap.Logger) *TemporaryAssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemporaryAssignmentService{assignments: assignments, workers: workers, tx: tx, validator: validate, logger: logger}
}

// Assign stores every entry. Entries already stored for the same worker, date
// and slot are ignored and not counted as written.
func (s *TemporaryAssignmentService) Assign(ctx context.Context, req dto.AssignTemporaryWorkers) (*dto.ImportCounts, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid temporary assignments")
	}

	rows := make([]models.TemporaryAssignment, 0, len(req.Assignments))
	for i, input := range req.Assignments {
		date, department, err := parseDateAndDepartment(input.Date, input.Department)
		if err != nil {
			return nil, appErrors.Validation(fmt.Sprintf("assignments[%d]: %s", i, err.Error()))
		}
		slot := strings.TrimSpace(input.TimeSlot)
		if slot == "" {
			return nil, appErrors.Validation(fmt.Sprintf("assignments[%d]: time slot is required", i))
		}
		rows = append(rows, models.TemporaryAssignment{
			WorkerID:   input.WorkerID,
			Date:       date,
			Department: department,
			TimeSlot:   slot,
			Fixed:      true,
		})
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	var written int64
	err := withTx(ctx, s.tx, func(tx *sqlx.Tx) error {
		for _, row := range rows {
			exists, err := s.workers.Exists(ctx, tx, row.WorkerID)
			if err != nil {
				return appErrors.Internal(err, "failed to check worker")
			}
			if !exists {
				return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("worker %d not found", row.WorkerID))
			}
		}
		n, err := s.assignments.InsertBatch(ctx, tx, rows)
		if err != nil {
			return err
		}
		written = n
		return nil
	})
	if err != nil {
		return nil, asInternal(err, "failed to store temporary assignments")
	}

	s.logger.Info("temporary assignments recorded", zap.Int("received", len(rows)), zap.Int64("written", written))
	return &dto.ImportCounts{Received: len(rows), Written: int(written)}, nil
}

// ListMonth returns the month's assignments in storage order.
func (s *TemporaryAssignmentService) ListMonth(ctx context.Context, department string, year, month int) ([]models.TemporaryAssignment, error) {
	department, err := validateMonthQuery(department, year, month)
	if err != nil {
		return nil, err
	}
	start, end := models.MonthRange(year, month)
	rows, err := s.assignments.ListByDepartmentAndRange(ctx, department, start, end)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load temporary assignments")
	}
	if rows == nil {
		rows = []models.TemporaryAssignment{}
	}
	return rows, nil
}
