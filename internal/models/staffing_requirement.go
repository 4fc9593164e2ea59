package models

import "time"

// StaffingRequirement is the headcount needed for a slot on a date.
type StaffingRequirement struct {
	ID            int64     `db:"id" json:"id"`
	Date          time.Time `db:"date" json:"date"`
	Department    string    `db:"department" json:"department"`
	TimeSlot      string    `db:"time_slot" json:"time_slot"`
	RequiredCount int       `db:"required_count" json:"required_count"`
}
