package models

import "time"

// TemporaryAssignment pre-commits a temporary worker to a slot.
type TemporaryAssignment struct {
	ID         int64     `db:"id" json:"id"`
	WorkerID   int64     `db:"worker_id" json:"worker_id"`
	Date       time.Time `db:"date" json:"date"`
	Department string    `db:"department" json:"department"`
	TimeSlot   string    `db:"time_slot" json:"time_slot"`
	Fixed      bool      `db:"fixed" json:"fixed"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
