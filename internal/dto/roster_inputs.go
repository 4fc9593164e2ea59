package dto

// LeaveRequestInput records a day-off or paid-leave request.
type LeaveRequestInput struct {
	WorkerID   int64  `json:"workerId" yaml:"workerId" validate:"required,min=1"`
	Date       string `json:"date" yaml:"date" validate:"required,datetime=2006-01-02"`
	Department string `json:"department" yaml:"department" validate:"required"`
	Kind       string `json:"kind" yaml:"kind" validate:"required"`
}

// SubmitLeaveRequests wraps a batch of leave requests.
type SubmitLeaveRequests struct {
	Requests []LeaveRequestInput `json:"requests" validate:"required,min=1,dive"`
}

// CancelLeaveRequest withdraws the current leave for a cell.
type CancelLeaveRequest struct {
	WorkerID   int64  `json:"workerId" yaml:"workerId" validate:"required,min=1"`
	Date       string `json:"date" yaml:"date" validate:"required,datetime=2006-01-02"`
	Department string `json:"department" yaml:"department" validate:"required"`
}

// TemporaryAssignmentInput pre-commits a temporary worker.
type TemporaryAssignmentInput struct {
	WorkerID   int64  `json:"workerId" yaml:"workerId" validate:"required,min=1"`
	Date       string `json:"date" yaml:"date" validate:"required,datetime=2006-01-02"`
	Department string `json:"department" yaml:"department" validate:"required"`
	TimeSlot   string `json:"timeSlot" yaml:"timeSlot" validate:"required"`
}

// AssignTemporaryWorkers wraps a batch of temporary assignments.
type AssignTemporaryWorkers struct {
	Assignments []TemporaryAssignmentInput `json:"assignments" validate:"required,min=1,dive"`
}

// StaffingRequirementInput declares the headcount for a slot.
type StaffingRequirementInput struct {
	Date          string `json:"date" yaml:"date" validate:"required,datetime=2006-01-02"`
	Department    string `json:"department" yaml:"department" validate:"required"`
	TimeSlot      string `json:"timeSlot" yaml:"timeSlot" validate:"required"`
	RequiredCount int    `json:"requiredCount" yaml:"requiredCount" validate:"min=0"`
}

// UpsertStaffingRequirements wraps a batch of requirements.
type UpsertStaffingRequirements struct {
	Requirements []StaffingRequirementInput `json:"requirements" validate:"required,min=1,dive"`
}

// ImportCounts summarises a batch write.
type ImportCounts struct {
	Received int `json:"received"`
	Written  int `json:"written"`
}
