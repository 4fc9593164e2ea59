package models

import (
	"strings"
	"time"
)

// LeaveKind distinguishes plain days off from paid leave.
type LeaveKind string

const (
	LeaveDayOff    LeaveKind = "DAY_OFF"
	LeavePaidLeave LeaveKind = "PAID_LEAVE"
)

// LeaveStatus tracks a leave request through review.
type LeaveStatus string

const (
	LeaveRequested LeaveStatus = "REQUESTED"
	LeaveApproved  LeaveStatus = "APPROVED"
	LeaveRejected  LeaveStatus = "REJECTED"
	LeaveCancelled LeaveStatus = "CANCELLED"
)

// LeaveRequest is one row of a worker's leave history for a date. The newest
// row per (worker, date, department) is authoritative.
type LeaveRequest struct {
	ID         int64       `db:"id" json:"id"`
	WorkerID   int64       `db:"worker_id" json:"worker_id"`
	Date       time.Time   `db:"date" json:"date"`
	Department string      `db:"department" json:"department"`
	Kind       LeaveKind   `db:"kind" json:"kind"`
	Status     LeaveStatus `db:"status" json:"status"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
}

// Blocking reports whether the request removes the worker from the pool.
func (l LeaveRequest) Blocking() bool {
	return l.Status != LeaveRejected && l.Status != LeaveCancelled
}

// Code returns the roster code shown for the request.
func (l LeaveRequest) Code() string {
	if l.Kind == LeavePaidLeave {
		return ShiftTypePaidLeave
	}
	return ShiftTypeDayOff
}

// ParseLeaveKind accepts the enum names and the roster codes 休 and 有.
func ParseLeaveKind(raw string) (LeaveKind, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(LeaveDayOff), ShiftTypeDayOff:
		return LeaveDayOff, true
	case string(LeavePaidLeave), ShiftTypePaidLeave:
		return LeavePaidLeave, true
	default:
		return "", false
	}
}
