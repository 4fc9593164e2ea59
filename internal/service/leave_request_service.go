package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/shift-roster-api/internal/dto"
	"github.com/noah-isme/shift-roster-api/internal/models"
	appErrors "github.com/noah-isme/shift-roster-api/pkg/errors"
)

// LeaveRequestService records leave history. Rows are only ever appended; the
// newest row of a cell decides its state.
type LeaveRequestService struct {
	leaves    leaveRequestStore
	tx        txProvider
	validator *validator.Validate
	logger    *zap.Logger
	now       Clock
}

// NewLeaveRequestService constructs the service.
func NewLeaveRequestService(leaves leaveRequestStore, tx txProvider, validate *validator.Validate, logger *zap.Logger, clock Clock) *LeaveRequestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = defaultClock
	}
	return &LeaveRequestService{leaves: leaves, tx: tx, validator: validate, logger: logger, now: clock}
}

// Submit appends REQUESTED rows for every entry in one transaction.
func (s *LeaveRequestService) Submit(ctx context.Context, req dto.SubmitLeaveRequests) (*dto.ImportCounts, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid leave requests")
	}

	now := s.now()
	rows := make([]models.LeaveRequest, 0, len(req.Requests))
	for i, input := range req.Requests {
		kind, ok := models.ParseLeaveKind(input.Kind)
		if !ok {
			return nil, appErrors.Validation(fmt.Sprintf("requests[%d]: unknown leave kind %q", i, input.Kind))
		}
		date, department, err := parseDateAndDepartment(input.Date, input.Department)
		if err != nil {
			return nil, appErrors.Validation(fmt.Sprintf("requests[%d]: %s", i, err.Error()))
		}
		rows = append(rows, models.LeaveRequest{
			WorkerID:   input.WorkerID,
			Date:       date,
			Department: department,
			Kind:       kind,
			Status:     models.LeaveRequested,
			CreatedAt:  now,
		})
	}

	if err := s.append(ctx, rows); err != nil {
		return nil, err
	}
	return &dto.ImportCounts{Received: len(req.Requests), Written: len(rows)}, nil
}

// Cancel appends a CANCELLED row for the cell.
func (s *LeaveRequestService) Cancel(ctx context.Context, req dto.CancelLeaveRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid leave cancellation")
	}
	date, department, err := parseDateAndDepartment(req.Date, req.Department)
	if err != nil {
		return appErrors.Validation(err.Error())
	}
	return s.append(ctx, []models.LeaveRequest{{
		WorkerID:   req.WorkerID,
		Date:       date,
		Department: department,
		Kind:       models.LeaveDayOff,
		Status:     models.LeaveCancelled,
		CreatedAt:  s.now(),
	}})
}

// ListMonth returns the authoritative row of every cell in the month.
func (s *LeaveRequestService) ListMonth(ctx context.Context, department string, year, month int) ([]models.LeaveRequest, error) {
	department, err := validateMonthQuery(department, year, month)
	if err != nil {
		return nil, err
	}
	start, end := models.MonthRange(year, month)
	rows, err := s.leaves.ListLatestByDepartmentAndRange(ctx, department, start, end)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load leave requests")
	}
	if rows == nil {
		rows = []models.LeaveRequest{}
	}
	return rows, nil
}

func (s *LeaveRequestService) append(ctx context.Context, rows []models.LeaveRequest) error {
	if s.tx == nil {
		return appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}
	err := withTx(ctx, s.tx, func(tx *sqlx.Tx) error {
		return s.leaves.InsertBatch(ctx, tx, rows)
	})
	if err != nil {
		return asInternal(err, "failed to store leave requests")
	}
	s.logger.Info("leave requests recorded", zap.Int("count", len(rows)))
	return nil
}

// parseDateAndDepartment checks a yyyy-MM-dd date and trims the department.
func parseDateAndDepartment(rawDate, department string) (time.Time, string, error) {
	date, err := time.Parse(models.DateLayout, strings.TrimSpace(rawDate))
	if err != nil {
		return time.Time{}, "", fmt.Errorf("date %q must be yyyy-MM-dd", rawDate)
	}
	department = strings.TrimSpace(department)
	if department == "" {
		return time.Time{}, "", fmt.Errorf("department is required")
	}
	return date, department, nil
}

func validateMonthQuery(department string, year, month int) (string, error) {
	department = strings.TrimSpace(department)
	if department == "" {
		return "", appErrors.Validation("department is required")
	}
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return "", appErrors.Validation("month must be a valid yyyy-MM between 2000 and 2100")
	}
	return department, nil
}
