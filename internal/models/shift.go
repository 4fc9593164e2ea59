package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ShiftStatus is the lifecycle state of a shift cell.
type ShiftStatus string

const (
	ShiftDraft     ShiftStatus = "DRAFT"
	ShiftConfirmed ShiftStatus = "CONFIRMED"
)

// Roster codes. Only the first two are produced by the generator; the rest are
// free-form values entered by editors.
const (
	ShiftTypeConfirmedTemporary = "臨(確)"
	ShiftTypeDay                = "日"
	ShiftTypeNight              = "夜"
	ShiftTypeDawn               = "明"
	ShiftTypeDayOff             = "休"
	ShiftTypePaidLeave          = "有"
	ShiftTypeSelfTemporary      = "臨(自)"

	// ShiftTypeClear in an edit submission deletes the cell.
	ShiftTypeClear = "-"
)

// DateLayout is the date format used in cell keys and query parameters.
const DateLayout = "2006-01-02"

// MonthLayout is the yyyy-MM month format.
const MonthLayout = "2006-01"

// Shift is one stored assignment of a worker on a date. Several rows may exist
// for the same cell; readers pick a winner.
type Shift struct {
	ID          int64        `db:"id" json:"id"`
	WorkerID    int64        `db:"worker_id" json:"worker_id"`
	Date        time.Time    `db:"date" json:"date"`
	Department  string       `db:"department" json:"department"`
	ShiftType   string       `db:"shift_type" json:"shift_type"`
	TimeSlot    string       `db:"time_slot" json:"time_slot"`
	IsTemporary bool         `db:"is_temporary" json:"is_temporary"`
	IsFixed     bool         `db:"is_fixed" json:"is_fixed"`
	Status      *ShiftStatus `db:"status" json:"status,omitempty"`
	UpdatedBy   *string      `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt   *time.Time   `db:"updated_at" json:"updated_at,omitempty"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
}

// CellKey identifies the cell the shift belongs to.
func (s Shift) CellKey() string {
	return CellKey(s.WorkerID, s.Date)
}

// CellKey formats "<workerId>_<yyyy-MM-dd>".
func CellKey(workerID int64, date time.Time) string {
	return strconv.FormatInt(workerID, 10) + "_" + date.Format(DateLayout)
}

// ParseCellKey splits a cell key on its first underscore. Keys with no
// underscore, an empty worker part, a non-numeric id or a bad date fail.
func ParseCellKey(key string) (int64, time.Time, error) {
	idx := strings.IndexByte(key, '_')
	if idx <= 0 {
		return 0, time.Time{}, fmt.Errorf("cell key %q: missing worker separator", key)
	}
	workerID, err := strconv.ParseInt(key[:idx], 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("cell key %q: worker id: %w", key, err)
	}
	date, err := time.Parse(DateLayout, key[idx+1:])
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("cell key %q: date: %w", key, err)
	}
	return workerID, date, nil
}

// StatusPtr returns a pointer to status, for building rows.
func StatusPtr(status ShiftStatus) *ShiftStatus {
	return &status
}

// MonthRange returns the first and last day of the month, both in UTC.
func MonthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// MonthDates lists every day of the month in order.
func MonthDates(year, month int) []time.Time {
	start, end := MonthRange(year, month)
	dates := make([]time.Time, 0, end.Day())
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// ParseMonth parses yyyy-MM into year and month.
func ParseMonth(raw string) (int, int, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(raw))
	if err != nil {
		return 0, 0, fmt.Errorf("month %q: expected yyyy-MM", raw)
	}
	return t.Year(), int(t.Month()), nil
}
