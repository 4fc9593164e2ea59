package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/shift-roster-api/internal/dto"
	"github.com/noah-isme/shift-roster-api/internal/models"
	appErrors "github.com/noah-isme/shift-roster-api/pkg/errors"
)

// EditAction selects what a bulk submission does.
type EditAction string

const (
	ActionDraft     EditAction = "DRAFT"
	ActionConfirmed EditAction = "CONFIRMED"
	ActionUnconfirm EditAction = "UNCONFIRM"
)

// DefaultActor is recorded when a request names nobody.
const DefaultActor = "system"

// ParseAction maps a submission action. Unknown values confirm.
func ParseAction(raw string) EditAction {
	switch EditAction(strings.ToUpper(strings.TrimSpace(raw))) {
	case ActionDraft:
		return ActionDraft
	case ActionUnconfirm:
		return ActionUnconfirm
	default:
		return ActionConfirmed
	}
}

// ShiftEditService applies bulk cell edits.
type ShiftEditService struct {
	workers workerChecker
	shifts  shiftCellStore
	tx      txProvider
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	now     Clock
}

// NewShiftEditService wires edit dependencies. A nil clock uses UTC now.
func NewShiftEditService(workers workerChecker, shifts shiftCellStore, tx txProvider, cache *CacheService, metrics *MetricsService, logger *zap.Logger, clock Clock) *ShiftEditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = defaultClock
	}
	return &ShiftEditService{workers: workers, shifts: shifts, tx: tx, cache: cache, metrics: metrics, logger: logger, now: clock}
}

// Submit dispatches a bulk submission by its action.
func (s *ShiftEditService) Submit(ctx context.Context, sub dto.ShiftEditSubmission, actor string) (*dto.EditReport, error) {
	switch action := ParseAction(sub.Action); action {
	case ActionUnconfirm:
		return s.Unconfirm(ctx, sub.Department, sub.Shifts, actor)
	default:
		return s.ApplyEdits(ctx, sub.Department, models.ShiftStatus(action), sub.Shifts, actor)
	}
}

type parsedEdit struct {
	key      string
	value    string
	workerID int64
	date     time.Time
}

// cellEditFunc handles one well-formed entry and returns its outcome and
// skip reason.
type cellEditFunc func(ctx context.Context, tx *sqlx.Tx, edit parsedEdit) (string, string, error)

// ApplyEdits writes each cell with status. Empty and "-" values delete the
// cell; other values upsert its newest row.
func (s *ShiftEditService) ApplyEdits(ctx context.Context, department string, status models.ShiftStatus, edits map[string]string, actor string) (*dto.EditReport, error) {
	actor = normaliseActor(actor)
	return s.process(ctx, department, string(status), edits, func(ctx context.Context, tx *sqlx.Tx, edit parsedEdit) (string, string, error) {
		value := strings.TrimSpace(edit.value)
		if value == "" || value == models.ShiftTypeClear {
			if _, err := s.shifts.DeleteByCell(ctx, tx, edit.workerID, edit.date, department); err != nil {
				return "", "", err
			}
			return dto.EditDeleted, "", nil
		}

		shift, err := s.shifts.FindByCell(ctx, tx, edit.workerID, edit.date, department)
		if err != nil {
			return "", "", err
		}
		if shift == nil {
			exists, err := s.workers.Exists(ctx, tx, edit.workerID)
			if err != nil {
				return "", "", err
			}
			if !exists {
				return dto.EditSkipped, dto.SkipUnknownWorker, nil
			}
			shift = &models.Shift{WorkerID: edit.workerID, Date: edit.date, Department: department}
		}

		now := s.now()
		shift.ShiftType = value
		shift.Status = models.StatusPtr(status)
		shift.UpdatedBy = &actor
		shift.UpdatedAt = &now
		if err := s.shifts.Save(ctx, tx, shift); err != nil {
			return "", "", err
		}
		// Leftover duplicates could outrank the saved row in the display map.
		if _, err := s.shifts.DeleteCellExcept(ctx, tx, edit.workerID, edit.date, department, shift.ID); err != nil {
			return "", "", err
		}
		return dto.EditApplied, "", nil
	})
}

// Unconfirm moves the displayed row of each listed cell back to DRAFT. Values
// are ignored.
func (s *ShiftEditService) Unconfirm(ctx context.Context, department string, edits map[string]string, actor string) (*dto.EditReport, error) {
	actor = normaliseActor(actor)
	return s.process(ctx, department, string(ActionUnconfirm), edits, func(ctx context.Context, tx *sqlx.Tx, edit parsedEdit) (string, string, error) {
		shift, err := s.shifts.FindByCell(ctx, tx, edit.workerID, edit.date, department)
		if err != nil {
			return "", "", err
		}
		if shift == nil {
			return dto.EditSkipped, dto.SkipNotFound, nil
		}
		now := s.now()
		shift.Status = models.StatusPtr(models.ShiftDraft)
		shift.UpdatedBy = &actor
		shift.UpdatedAt = &now
		if err := s.shifts.Save(ctx, tx, shift); err != nil {
			return "", "", err
		}
		return dto.EditApplied, "", nil
	})
}

func (s *ShiftEditService) process(ctx context.Context, department, action string, edits map[string]string, handle cellEditFunc) (*dto.EditReport, error) {
	department = strings.TrimSpace(department)
	if department == "" {
		return nil, appErrors.Validation("department is required")
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	report := &dto.EditReport{Department: department, Action: action, Entries: []dto.EditEntryResult{}}
	months := make(map[string]struct{ year, month int })

	err := withTx(ctx, s.tx, func(tx *sqlx.Tx) error {
		for _, key := range SortedCellKeys(edits) {
			workerID, date, err := models.ParseCellKey(key)
			if err != nil {
				s.logger.Debug("skipping malformed cell key", zap.String("key", key), zap.Error(err))
				report.Add(key, dto.EditSkipped, dto.SkipMalformedKey)
				continue
			}

			outcome, reason, err := handle(ctx, tx, parsedEdit{key: key, value: edits[key], workerID: workerID, date: date})
			if err != nil {
				return appErrors.Internal(err, fmt.Sprintf("failed to apply edit %s", key))
			}
			if outcome == dto.EditSkipped {
				s.logger.Debug("skipping cell edit", zap.String("key", key), zap.String("reason", reason))
			} else {
				months[date.Format(models.MonthLayout)] = struct{ year, month int }{date.Year(), int(date.Month())}
			}
			report.Add(key, outcome, reason)
		}
		return nil
	})
	if err != nil {
		return nil, asInternal(err, "failed to commit shift edits")
	}

	keys := make([]string, 0, len(months))
	for _, m := range months {
		keys = append(keys, ShiftMapCacheKey(department, m.year, m.month))
	}
	s.cache.Invalidate(ctx, keys...)
	for _, entry := range report.Entries {
		s.metrics.RecordEditOutcome(entry.Outcome)
	}

	s.logger.Info("shift edits processed",
		zap.String("department", department),
		zap.String("action", action),
		zap.Int("applied", report.Applied),
		zap.Int("deleted", report.Deleted),
		zap.Int("skipped", report.Skipped))
	return report, nil
}

func normaliseActor(actor string) string {
	if actor = strings.TrimSpace(actor); actor == "" {
		return DefaultActor
	}
	return actor
}
