package service

import (
	"time"

	"github.com/noah-isme/shift-roster-api/internal/models"
)

// IsAvailable reports whether worker can be scheduled on date. A fixed weekly
// day off or any leave request of the worker for the date blocks the whole
// day. timeSlot is accepted for slot-level leave but does not yet narrow the
// check.
func IsAvailable(worker models.WorkerProfile, date time.Time, timeSlot string, leaves []models.LeaveRequest) bool {
	if worker.Schedule(date).Off {
		return false
	}
	for _, leave := range leaves {
		if leave.WorkerID == worker.ID {
			return false
		}
	}
	return true
}
