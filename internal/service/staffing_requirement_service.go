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

// StaffingRequirementService maintains per-slot headcounts.
type StaffingRequirementService struct {
	requirements staffingRequirementStore
	tx           txProvider
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewStaffingRequirementService constructs the service.
func NewStaffingRequirementService(requirements staffingRequirementStore, tx txProvider, validate *validator.Validate, logger *zap.Logger) *StaffingRequirementService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffingRequirementService{requirements: requirements, tx: tx, validator: validate, logger: logger}
}

// Upsert writes each requirement, replacing the count of an existing slot.
func (s *StaffingRequirementService) Upsert(ctx context.Context, req dto.UpsertStaffingRequirements) (*dto.ImportCounts, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staffing requirements")
	}

	rows := make([]models.StaffingRequirement, 0, len(req.Requirements))
	for i, input := range req.Requirements {
		date, department, err := parseDateAndDepartment(input.Date, input.Department)
		if err != nil {
			return nil, appErrors.Validation(fmt.Sprintf("requirements[%d]: %s", i, err.Error()))
		}
		slot := strings.TrimSpace(input.TimeSlot)
		if slot == "" {
			return nil, appErrors.Validation(fmt.Sprintf("requirements[%d]: time slot is required", i))
		}
		rows = append(rows, models.StaffingRequirement{Date: date, Department: department, TimeSlot: slot, RequiredCount: input.RequiredCount})
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	err := withTx(ctx, s.tx, func(tx *sqlx.Tx) error {
		return s.requirements.UpsertBatch(ctx, tx, rows)
	})
	if err != nil {
		return nil, asInternal(err, "failed to store staffing requirements")
	}
	s.logger.Info("staffing requirements stored", zap.Int("count", len(rows)))
	return &dto.ImportCounts{Received: len(rows), Written: len(rows)}, nil
}

// ListMonth returns the month's requirements ordered by date and slot.
func (s *StaffingRequirementService) ListMonth(ctx context.Context, department string, year, month int) ([]models.StaffingRequirement, error) {
	department, err := validateMonthQuery(department, year, month)
	if err != nil {
		return nil, err
	}
	start, end := models.MonthRange(year, month)
	rows, err := s.requirements.ListByDepartmentAndRange(ctx, department, start, end)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load staffing requirements")
	}
	if rows == nil {
		rows = []models.StaffingRequirement{}
	}
	return rows, nil
}
