package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shift-roster-api/internal/dto"
	"github.com/noah-isme/shift-roster-api/internal/models"
	appErrors "github.com/noah-isme/shift-roster-api/pkg/errors"
)

type cellStoreStub struct {
	rows    map[string]*models.Shift
	saved   []models.Shift
	deleted []string
	nextID  int64
	saveErr error
}

func newCellStore(rows ...models.Shift) *cellStoreStub {
	s := &cellStoreStub{rows: map[string]*models.Shift{}, nextID: 100}
	for i := range rows {
		r := rows[i]
		s.rows[r.CellKey()] = &r
	}
	return s
}

func (s *cellStoreStub) FindByCell(_ context.Context, _ sqlx.ExtContext, workerID int64, date time.Time, _ string) (*models.Shift, error) {
	if r, ok := s.rows[models.CellKey(workerID, date)]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (s *cellStoreStub) Save(_ context.Context, _ sqlx.ExtContext, shift *models.Shift) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	if shift.ID == 0 {
		s.nextID++
		shift.ID = s.nextID
	}
	cp := *shift
	s.rows[shift.CellKey()] = &cp
	s.saved = append(s.saved, cp)
	return nil
}

func (s *cellStoreStub) DeleteByCell(_ context.Context, _ sqlx.ExtContext, workerID int64, date time.Time, _ string) (int64, error) {
	key := models.CellKey(workerID, date)
	s.deleted = append(s.deleted, key)
	if _, ok := s.rows[key]; ok {
		delete(s.rows, key)
		return 1, nil
	}
	return 0, nil
}

func (s *cellStoreStub) DeleteCellExcept(context.Context, sqlx.ExtContext, int64, time.Time, string, int64) (int64, error) {
	return 0, nil
}

// rowStore keeps every row so a cell may hold duplicates, matching the shifts
// table. It serves both the edit processor and the display map.
type rowStore struct {
	rows   []models.Shift
	nextID int64
}

func (s *rowStore) FindByCell(_ context.Context, _ sqlx.ExtContext, workerID int64, date time.Time, _ string) (*models.Shift, error) {
	var best *models.Shift
	for i := range s.rows {
		r := s.rows[i]
		if r.CellKey() != models.CellKey(workerID, date) {
			continue
		}
		if best == nil || CompareShiftPriority(r, *best) > 0 {
			best = &r
		}
	}
	return best, nil
}

func (s *rowStore) Save(_ context.Context, _ sqlx.ExtContext, shift *models.Shift) error {
	if shift.ID == 0 {
		s.nextID++
		shift.ID = s.nextID
		s.rows = append(s.rows, *shift)
		return nil
	}
	for i := range s.rows {
		if s.rows[i].ID == shift.ID {
			s.rows[i] = *shift
		}
	}
	return nil
}

func (s *rowStore) deleteWhere(match func(models.Shift) bool) int64 {
	kept := s.rows[:0]
	var n int64
	for _, r := range s.rows {
		if match(r) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	s.rows = kept
	return n
}

func (s *rowStore) DeleteByCell(_ context.Context, _ sqlx.ExtContext, workerID int64, date time.Time, _ string) (int64, error) {
	key := models.CellKey(workerID, date)
	return s.deleteWhere(func(r models.Shift) bool { return r.CellKey() == key }), nil
}

func (s *rowStore) DeleteCellExcept(_ context.Context, _ sqlx.ExtContext, workerID int64, date time.Time, _ string, keepID int64) (int64, error) {
	key := models.CellKey(workerID, date)
	return s.deleteWhere(func(r models.Shift) bool { return r.CellKey() == key && r.ID != keepID }), nil
}

func (s *rowStore) ListByDepartmentAndRange(context.Context, string, time.Time, time.Time) ([]models.Shift, error) {
	return append([]models.Shift(nil), s.rows...), nil
}

func newEditFixture(t *testing.T, store *cellStoreStub, workers *workerStub, commit bool) (*ShiftEditService, *memoryCacheRepo) {
	t.Helper()
	tx, mock := newTxProviderMock(t)
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })
	cacheRepo := newMemoryCacheRepo()
	svc := NewShiftEditService(workers, store, tx, NewCacheService(cacheRepo, nil, time.Minute, nil, true), NewMetricsService(), nil, fixedClock)
	return svc, cacheRepo
}

func TestParseAction(t *testing.T) {
	assert.Equal(t, ActionDraft, ParseAction(" draft "))
	assert.Equal(t, ActionConfirmed, ParseAction("CONFIRMED"))
	assert.Equal(t, ActionUnconfirm, ParseAction("unconfirm"))
	assert.Equal(t, ActionConfirmed, ParseAction("publish"))
	assert.Equal(t, ActionConfirmed, ParseAction(""))
}

func TestApplyEditsReport(t *testing.T) {
	existing := row(10, 1, day(2), "日", draft, ts(1))
	store := newCellStore(existing, row(11, 1, day(3), "夜", confirmed, ts(1)))
	svc, cacheRepo := newEditFixture(t, store, &workerStub{known: map[int64]bool{1: true, 2: true}}, true)

	report, err := svc.ApplyEdits(context.Background(), "amami", models.ShiftConfirmed, map[string]string{
		"1_2025-08-02": " 夜 ",
		"1_2025-08-03": "-",
		"2_2025-08-04": "休",
		"9_2025-08-04": "日",
		"bad":          "日",
		"_2025-08-04":  "日",
		"1_2025-99-01": "日",
		"1_2025-08-05": "   ",
	}, "ops")
	require.NoError(t, err)

	assert.Equal(t, []dto.EditEntryResult{
		{Key: "1_2025-08-02", Outcome: dto.EditApplied},
		{Key: "1_2025-08-03", Outcome: dto.EditDeleted},
		{Key: "1_2025-08-05", Outcome: dto.EditDeleted},
		{Key: "1_2025-99-01", Outcome: dto.EditSkipped, Reason: dto.SkipMalformedKey},
		{Key: "2_2025-08-04", Outcome: dto.EditApplied},
		{Key: "9_2025-08-04", Outcome: dto.EditSkipped, Reason: dto.SkipUnknownWorker},
		{Key: "_2025-08-04", Outcome: dto.EditSkipped, Reason: dto.SkipMalformedKey},
		{Key: "bad", Outcome: dto.EditSkipped, Reason: dto.SkipMalformedKey},
	}, report.Entries)
	assert.Equal(t, 2, report.Applied)
	assert.Equal(t, 2, report.Deleted)
	assert.Equal(t, 4, report.Skipped)

	updated := store.rows["1_2025-08-02"]
	assert.Equal(t, int64(10), updated.ID)
	assert.Equal(t, "夜", updated.ShiftType)
	assert.Equal(t, models.ShiftConfirmed, *updated.Status)
	assert.Equal(t, "ops", *updated.UpdatedBy)
	assert.Equal(t, fixedNow, *updated.UpdatedAt)

	created := store.rows["2_2025-08-04"]
	require.NotNil(t, created)
	assert.Equal(t, "休", created.ShiftType)
	assert.Equal(t, "amami", created.Department)
	assert.NotContains(t, store.rows, "1_2025-08-03")
	assert.Contains(t, cacheRepo.deleted, "shiftmap:amami:2025-08")
}

func TestApplyEditsDraftStatusAndDefaultActor(t *testing.T) {
	store := newCellStore()
	svc, _ := newEditFixture(t, store, &workerStub{known: map[int64]bool{1: true}}, true)

	report, err := svc.Submit(context.Background(), dto.ShiftEditSubmission{
		Department: "amami",
		Action:     "draft",
		Shifts:     map[string]string{"1_2025-08-02": "明"},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", report.Action)
	row := store.rows["1_2025-08-02"]
	assert.Equal(t, models.ShiftDraft, *row.Status)
	assert.Equal(t, DefaultActor, *row.UpdatedBy)
}

func TestUnconfirm(t *testing.T) {
	store := newCellStore(row(10, 1, day(2), "日", confirmed, ts(1)))
	svc, _ := newEditFixture(t, store, &workerStub{}, true)

	report, err := svc.Submit(context.Background(), dto.ShiftEditSubmission{
		Department: "amami",
		Action:     "UNCONFIRM",
		Shifts:     map[string]string{"1_2025-08-02": "", "1_2025-08-09": "", "x": ""},
	}, "ops")
	require.NoError(t, err)

	assert.Equal(t, []dto.EditEntryResult{
		{Key: "1_2025-08-02", Outcome: dto.EditApplied},
		{Key: "1_2025-08-09", Outcome: dto.EditSkipped, Reason: dto.SkipNotFound},
		{Key: "x", Outcome: dto.EditSkipped, Reason: dto.SkipMalformedKey},
	}, report.Entries)
	row := store.rows["1_2025-08-02"]
	assert.Equal(t, models.ShiftDraft, *row.Status)
	assert.Equal(t, "日", row.ShiftType)
}

func TestApplyEditsStorageFailureRollsBack(t *testing.T) {
	store := newCellStore()
	store.saveErr = errors.New("deadlock")
	svc, cacheRepo := newEditFixture(t, store, &workerStub{known: map[int64]bool{1: true}}, false)

	_, err := svc.ApplyEdits(context.Background(), "amami", models.ShiftConfirmed, map[string]string{"1_2025-08-02": "日"}, "ops")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "1_2025-08-02")
	assert.Empty(t, cacheRepo.deleted)
}

func TestApplyEditsBlankDepartment(t *testing.T) {
	tx, _ := newTxProviderMock(t)
	store := newCellStore()
	svc := NewShiftEditService(&workerStub{}, store, tx, nil, nil, nil, fixedClock)

	_, err := svc.ApplyEdits(context.Background(), "  ", models.ShiftConfirmed, map[string]string{"1_2025-08-02": "日"}, "ops")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.saved)
}

func TestApplyEditsEmptySubmission(t *testing.T) {
	svc, cacheRepo := newEditFixture(t, newCellStore(), &workerStub{}, true)

	report, err := svc.ApplyEdits(context.Background(), "amami", models.ShiftConfirmed, nil, "ops")
	require.NoError(t, err)
	assert.Empty(t, report.Entries)
	assert.Empty(t, cacheRepo.deleted)
}

func newRowStoreServices(t *testing.T, store *rowStore, clock Clock, txCount int) (*ShiftEditService, *ShiftViewService) {
	t.Helper()
	tx, mock := newTxProviderMock(t)
	for i := 0; i < txCount; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })
	workers := &workerStub{workers: []models.WorkerProfile{worker(1)}}
	edits := NewShiftEditService(workers, store, tx, nil, nil, nil, clock)
	view := NewShiftViewService(workers, store, nil, time.Minute, nil)
	return edits, view
}

func TestClearedCellLeavesDisplayMap(t *testing.T) {
	store := &rowStore{rows: []models.Shift{
		row(10, 1, day(1), "日", confirmed, ts(1)),
		row(11, 1, day(1), "夜", draft, ts(2)),
		row(12, 1, day(2), "休", confirmed, ts(1)),
	}, nextID: 20}
	edits, view := newRowStoreServices(t, store, fixedClock, 1)
	dates := []time.Time{day(1), day(2)}

	report, err := edits.ApplyEdits(context.Background(), "amami", models.ShiftConfirmed, map[string]string{"1_2025-08-01": "-"}, "ops")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Deleted)

	display, err := view.BuildDisplayMap(context.Background(), nil, dates, "amami")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1_2025-08-02": "休"}, display)
}

func TestEditOverDuplicateCellIsDisplayed(t *testing.T) {
	later := func() time.Time { return *ts(5) }
	store := &rowStore{rows: []models.Shift{
		row(10, 1, day(1), "日", draft, ts(1)),
		row(11, 1, day(1), "夜", confirmed, ts(2)),
		row(12, 1, day(1), "明", draft, ts(0)),
	}, nextID: 20}
	edits, view := newRowStoreServices(t, store, later, 2)
	dates := []time.Time{day(1)}

	display, err := view.BuildDisplayMap(context.Background(), nil, dates, "amami")
	require.NoError(t, err)
	assert.Equal(t, "日", display["1_2025-08-01"])

	_, err = edits.ApplyEdits(context.Background(), "amami", models.ShiftConfirmed, map[string]string{"1_2025-08-01": "休"}, "ops")
	require.NoError(t, err)

	display, err = view.BuildDisplayMap(context.Background(), nil, dates, "amami")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1_2025-08-01": "休"}, display)
	require.Len(t, store.rows, 1)
	assert.Equal(t, int64(10), store.rows[0].ID)

	_, err = edits.Unconfirm(context.Background(), "amami", map[string]string{"1_2025-08-01": ""}, "ops")
	require.NoError(t, err)
	assert.Equal(t, models.ShiftDraft, *store.rows[0].Status)
	assert.Equal(t, "休", store.rows[0].ShiftType)
}
