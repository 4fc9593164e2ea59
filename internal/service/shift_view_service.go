package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/shift-roster-api/internal/dto"
	"github.com/noah-isme/shift-roster-api/internal/models"
	appErrors "github.com/noah-isme/shift-roster-api/pkg/errors"
)

// RosterGrid is a reconciled department month: one row per worker, one column
// per date, cells keyed by cell key.
type RosterGrid struct {
	Department string
	Year       int
	Month      int
	Workers    []models.WorkerProfile
	Dates      []time.Time
	Cells      map[string]string
}

// Cell returns the displayed code for a worker on date.
func (g *RosterGrid) Cell(workerID int64, date time.Time) string {
	return g.Cells[models.CellKey(workerID, date)]
}

// ShiftViewService reconciles duplicate shift rows into one display value per
// cell.
type ShiftViewService struct {
	workers  rosterWorkerReader
	shifts   shiftReader
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewShiftViewService constructs the reconciler.
func NewShiftViewService(workers rosterWorkerReader, shifts shiftReader, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *ShiftViewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftViewService{workers: workers, shifts: shifts, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func statusRank(status *models.ShiftStatus) int {
	switch {
	case status == nil:
		return 0
	case *status == models.ShiftDraft:
		return 2
	default:
		return 1
	}
}

// CompareShiftPriority orders two rows of the same cell. It returns a positive
// value when a should be displayed instead of b, negative when b wins and zero
// only for rows with identical status, timestamp and id.
//
// DRAFT outranks every other status and any status outranks NULL. Within a
// rank the later UpdatedAt wins, a NULL timestamp losing to any value. The
// higher id breaks remaining ties.
func CompareShiftPriority(a, b models.Shift) int {
	if ra, rb := statusRank(a.Status), statusRank(b.Status); ra != rb {
		return ra - rb
	}

	switch {
	case a.UpdatedAt == nil && b.UpdatedAt != nil:
		return -1
	case a.UpdatedAt != nil && b.UpdatedAt == nil:
		return 1
	case a.UpdatedAt != nil && b.UpdatedAt != nil:
		if a.UpdatedAt.After(*b.UpdatedAt) {
			return 1
		}
		if b.UpdatedAt.After(*a.UpdatedAt) {
			return -1
		}
	}

	switch {
	case a.ID > b.ID:
		return 1
	case a.ID < b.ID:
		return -1
	default:
		return 0
	}
}

// BuildDisplayMap returns the winning shift code for every cell of workers on
// dates. Cells whose winner has a blank code are omitted. An empty workers
// slice keeps every worker found in storage.
func (s *ShiftViewService) BuildDisplayMap(ctx context.Context, workers []models.WorkerProfile, dates []time.Time, department string) (map[string]string, error) {
	result := make(map[string]string)
	if len(dates) == 0 {
		return result, nil
	}

	start, end := dates[0], dates[0]
	wantDates := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		if d.Before(start) {
			start = d
		}
		if d.After(end) {
			end = d
		}
		wantDates[dateKey(d)] = struct{}{}
	}

	var wantWorkers map[int64]struct{}
	if len(workers) > 0 {
		wantWorkers = make(map[int64]struct{}, len(workers))
		for _, w := range workers {
			wantWorkers[w.ID] = struct{}{}
		}
	}

	rows, err := s.shifts.ListByDepartmentAndRange(ctx, department, start, end)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load shifts")
	}

	winners := make(map[string]models.Shift)
	for _, row := range rows {
		if _, ok := wantDates[dateKey(row.Date)]; !ok {
			continue
		}
		if wantWorkers != nil {
			if _, ok := wantWorkers[row.WorkerID]; !ok {
				continue
			}
		}
		key := row.CellKey()
		current, seen := winners[key]
		if !seen || CompareShiftPriority(row, current) > 0 {
			winners[key] = row
		}
	}

	for key, shift := range winners {
		if code := strings.TrimSpace(shift.ShiftType); code != "" {
			result[key] = code
		}
	}
	return result, nil
}

// MonthGrid reconciles every worker of the department over the month. Cells
// are served from cache when enabled.
func (s *ShiftViewService) MonthGrid(ctx context.Context, department string, year, month int) (*RosterGrid, error) {
	department = strings.TrimSpace(department)
	if department == "" {
		return nil, appErrors.Validation("department is required")
	}
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, appErrors.Validation("month must be a valid yyyy-MM between 2000 and 2100")
	}

	workers, err := s.workers.ListByDepartment(ctx, department)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load workers")
	}
	grid := &RosterGrid{
		Department: department,
		Year:       year,
		Month:      month,
		Workers:    workers,
		Dates:      models.MonthDates(year, month),
	}

	key := ShiftMapCacheKey(department, year, month)
	var cached map[string]string
	if s.cache.Get(ctx, key, &cached) {
		grid.Cells = cached
		return grid, nil
	}

	// A department with no workers shows nothing rather than every stored row.
	if len(workers) == 0 {
		grid.Cells = map[string]string{}
		return grid, nil
	}
	cells, err := s.BuildDisplayMap(ctx, workers, grid.Dates, department)
	if err != nil {
		return nil, err
	}
	grid.Cells = cells
	s.cache.Set(ctx, key, cells, s.cacheTTL)
	return grid, nil
}

// MonthDisplayMap returns the reconciled month as an API payload.
func (s *ShiftViewService) MonthDisplayMap(ctx context.Context, department string, year, month int) (*dto.ShiftMapResponse, error) {
	grid, err := s.MonthGrid(ctx, department, year, month)
	if err != nil {
		return nil, err
	}
	return &dto.ShiftMapResponse{
		Department: grid.Department,
		Month:      grid.Dates[0].Format(models.MonthLayout),
		Cells:      grid.Cells,
	}, nil
}

// SortedCellKeys returns the keys of cells in lexical order.
func SortedCellKeys(cells map[string]string) []string {
	keys := make([]string, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
