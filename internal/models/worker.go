package models

import "time"

// EmploymentType categorises a worker. Unknown values are tolerated.
type EmploymentType string

const (
	EmploymentRegular   EmploymentType = "REGULAR"
	EmploymentPartTime  EmploymentType = "PART_TIME"
	EmploymentTemporary EmploymentType = "TEMPORARY"
)

// WeekdaySchedule is the fixed availability pattern for one day of the week.
type WeekdaySchedule struct {
	Off   bool    `json:"off"`
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`
}

// WorkerProfile is a staff member assignable to shifts. Weekly is indexed by
// time.Weekday, so Weekly[time.Sunday] is the Sunday pattern.
type WorkerProfile struct {
	ID             int64              `db:"id" json:"id"`
	Username       string             `db:"username" json:"username"`
	FirstName      string             `db:"first_name" json:"first_name"`
	LastName       string             `db:"last_name" json:"last_name"`
	Department     string             `db:"department" json:"department"`
	EmploymentType EmploymentType     `db:"employment_type" json:"employment_type"`
	Weekly         [7]WeekdaySchedule `db:"-" json:"weekly"`
}

// Schedule returns the weekly pattern for the weekday of date.
func (w WorkerProfile) Schedule(date time.Time) WeekdaySchedule {
	return w.Weekly[date.Weekday()]
}

// DisplayName renders "Last First", falling back to the username.
func (w WorkerProfile) DisplayName() string {
	switch {
	case w.LastName != "" && w.FirstName != "":
		return w.LastName + " " + w.FirstName
	case w.LastName != "":
		return w.LastName
	case w.FirstName != "":
		return w.FirstName
	default:
		return w.Username
	}
}
