package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/shift-roster-api/internal/dto"
	"github.com/noah-isme/shift-roster-api/internal/models"
	appErrors "github.com/noah-isme/shift-roster-api/pkg/errors"
)

// ShiftGeneratorConfig governs generator behaviour.
type ShiftGeneratorConfig struct {
	// Actor is written to UpdatedBy when the request carries none.
	Actor string
	Clock Clock
}

// ShiftGeneratorService fills a department month with DRAFT shifts from the
// staffing requirements, temporary assignments and worker availability.
type ShiftGeneratorService struct {
	workers      rosterWorkerReader
	leaves       leaveRequestStore
	requirements staffingRequirementStore
	temps        temporaryAssignmentStore
	shifts       shiftBatchWriter
	tx           txProvider
	cache        *CacheService
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	actor        string
	now          Clock
}

// NewShiftGeneratorService wires generator dependencies.
func NewShiftGeneratorService(
	workers rosterWorkerReader,
	leaves leaveRequestStore,
	requirements staffingRequirementStore,
	temps temporaryAssignmentStore,
	shifts shiftBatchWriter,
	tx txProvider,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ShiftGeneratorConfig,
) *ShiftGeneratorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Clock == nil {
		cfg.Clock = defaultClock
	}
	if strings.TrimSpace(cfg.Actor) == "" {
		cfg.Actor = "generator"
	}
	return &ShiftGeneratorService{
		workers:      workers,
		leaves:       leaves,
		requirements: requirements,
		temps:        temps,
		shifts:       shifts,
		tx:           tx,
		cache:        cache,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		actor:        cfg.Actor,
		now:          cfg.Clock,
	}
}

// monthInputs groups everything the generator reads for one month.
type monthInputs struct {
	workers      []models.WorkerProfile
	leaves       map[string][]models.LeaveRequest
	requirements map[string][]models.StaffingRequirement
	temps        map[string][]models.TemporaryAssignment
	requirementN int
}

// Generate builds and stores the month's shifts in one transaction. Slots
// that cannot be fully staffed are reported in the summary, not as errors.
func (s *ShiftGeneratorService) Generate(ctx context.Context, req dto.GenerateShiftsRequest) (*dto.GenerationSummary, error) {
	req.Department = strings.TrimSpace(req.Department)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation request")
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	actor := strings.TrimSpace(req.Actor)
	if actor == "" {
		actor = s.actor
	}

	started := time.Now()
	summary, err := s.generate(ctx, req.Year, req.Month, req.Department, actor)
	if err != nil {
		s.metrics.RecordGeneration(false, time.Since(started), 0, 0, 0)
		s.logger.Error("shift generation failed",
			zap.String("department", req.Department),
			zap.Int("year", req.Year),
			zap.Int("month", req.Month),
			zap.Error(err))
		return nil, err
	}

	s.cache.Invalidate(ctx, ShiftMapCacheKey(req.Department, req.Year, req.Month))
	s.metrics.RecordGeneration(true, time.Since(started), summary.ShiftsCreated-summary.TemporaryShifts, summary.TemporaryShifts, len(summary.Underfilled))
	s.logger.Info("shift generation finished",
		zap.String("department", req.Department),
		zap.String("month", summary.Month),
		zap.Int("shifts", summary.ShiftsCreated),
		zap.Int("underfilled", len(summary.Underfilled)),
		zap.Duration("took", time.Since(started)))
	return summary, nil
}

func (s *ShiftGeneratorService) generate(ctx context.Context, year, month int, department, actor string) (*dto.GenerationSummary, error) {
	start, end := models.MonthRange(year, month)
	// Inputs load concurrently on pooled connections before the write tx opens.
	inputs, err := s.loadMonth(ctx, department, start, end)
	if err != nil {
		return nil, err
	}

	dates := models.MonthDates(year, month)
	summary := &dto.GenerationSummary{
		Department:   department,
		Month:        start.Format(models.MonthLayout),
		Days:         len(dates),
		Requirements: inputs.requirementN,
		Underfilled:  []dto.UnderfilledSlot{},
	}
	now := s.now()

	err = withTx(ctx, s.tx, func(tx *sqlx.Tx) error {
		for _, date := range dates {
			key := dateKey(date)
			shifts := planDate(date, department, actor, now, inputs.workers, inputs.requirements[key], inputs.temps[key], inputs.leaves[key], summary)
			if len(shifts) == 0 {
				continue
			}
			if err := s.shifts.BatchInsert(ctx, tx, shifts); err != nil {
				return appErrors.Internal(err, fmt.Sprintf("failed to store shifts for %s", key))
			}
		}
		return nil
	})
	if err != nil {
		return nil, asInternal(err, "failed to commit shift generation")
	}
	return summary, nil
}

func (s *ShiftGeneratorService) loadMonth(ctx context.Context, department string, start, end time.Time) (*monthInputs, error) {
	var (
		workers []models.WorkerProfile
		leaves  []models.LeaveRequest
		reqs    []models.StaffingRequirement
		temps   []models.TemporaryAssignment
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		if workers, err = s.workers.ListByDepartment(egCtx, department); err != nil {
			return appErrors.Internal(err, "failed to load workers")
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		if leaves, err = s.leaves.ListLatestByDepartmentAndRange(egCtx, department, start, end); err != nil {
			return appErrors.Internal(err, "failed to load leave requests")
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		if reqs, err = s.requirements.ListByDepartmentAndRange(egCtx, department, start, end); err != nil {
			return appErrors.Internal(err, "failed to load staffing requirements")
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		if temps, err = s.temps.ListByDepartmentAndRange(egCtx, department, start, end); err != nil {
			return appErrors.Internal(err, "failed to load temporary assignments")
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	inputs := &monthInputs{
		workers:      workers,
		leaves:       make(map[string][]models.LeaveRequest),
		requirements: make(map[string][]models.StaffingRequirement),
		temps:        make(map[string][]models.TemporaryAssignment),
		requirementN: len(reqs),
	}
	for _, leave := range leaves {
		if leave.Blocking() {
			key := dateKey(leave.Date)
			inputs.leaves[key] = append(inputs.leaves[key], leave)
		}
	}
	for _, req := range reqs {
		key := dateKey(req.Date)
		inputs.requirements[key] = append(inputs.requirements[key], req)
	}
	for _, temp := range temps {
		key := dateKey(temp.Date)
		inputs.temps[key] = append(inputs.temps[key], temp)
	}
	return inputs, nil
}

// planDate produces the shifts for one date. Temporary workers are placed
// first; regular workers fill what is left in load order. The same worker may
// be placed in several slots of a day.
func planDate(
	date time.Time,
	department, actor string,
	now time.Time,
	workers []models.WorkerProfile,
	reqs []models.StaffingRequirement,
	temps []models.TemporaryAssignment,
	leaves []models.LeaveRequest,
	summary *dto.GenerationSummary,
) []models.Shift {
	var shifts []models.Shift
	newShift := func(workerID int64, slot, shiftType string, temporary bool) models.Shift {
		updatedBy := actor
		updatedAt := now
		return models.Shift{
			WorkerID:    workerID,
			Date:        date,
			Department:  department,
			ShiftType:   shiftType,
			TimeSlot:    slot,
			IsTemporary: temporary,
			IsFixed:     temporary,
			Status:      models.StatusPtr(models.ShiftDraft),
			UpdatedBy:   &updatedBy,
			UpdatedAt:   &updatedAt,
		}
	}

	for _, req := range reqs {
		filled := 0
		for _, temp := range temps {
			if filled >= req.RequiredCount {
				break
			}
			if temp.TimeSlot != req.TimeSlot {
				continue
			}
			shifts = append(shifts, newShift(temp.WorkerID, req.TimeSlot, models.ShiftTypeConfirmedTemporary, true))
			summary.TemporaryShifts++
			filled++
		}

		for _, worker := range workers {
			if filled >= req.RequiredCount {
				break
			}
			if !IsAvailable(worker, date, req.TimeSlot, leaves) {
				continue
			}
			shifts = append(shifts, newShift(worker.ID, req.TimeSlot, models.ShiftTypeDay, false))
			filled++
		}

		if filled < req.RequiredCount {
			summary.Underfilled = append(summary.Underfilled, dto.UnderfilledSlot{
				Date:     dateKey(date),
				TimeSlot: req.TimeSlot,
				Required: req.RequiredCount,
				Filled:   filled,
			})
		}
	}
	summary.ShiftsCreated += len(shifts)
	return shifts
}
