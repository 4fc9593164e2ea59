package dto

// GenerateShiftsRequest asks for a month of shifts to be generated.
type GenerateShiftsRequest struct {
	Year       int    `json:"year" validate:"required,min=2000,max=2100"`
	Month      int    `json:"month" validate:"required,min=1,max=12"`
	Department string `json:"department" validate:"required"`
	Async      bool   `json:"async"`
	Actor      string `json:"-"`
}

// UnderfilledSlot reports a slot the generator could not fully staff.
type UnderfilledSlot struct {
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
	Required int    `json:"required"`
	Filled   int    `json:"filled"`
}

// GenerationSummary describes the outcome of a generation run.
type GenerationSummary struct {
	Department      string            `json:"department"`
	Month           string            `json:"month"`
	Days            int               `json:"days"`
	Requirements    int               `json:"requirements"`
	ShiftsCreated   int               `json:"shiftsCreated"`
	TemporaryShifts int               `json:"temporaryShifts"`
	Underfilled     []UnderfilledSlot `json:"underfilled"`
}

// GenerationJobResponse is returned when generation is queued.
type GenerationJobResponse struct {
	JobID string `json:"jobId"`
	State string `json:"state"`
}

// ShiftEditSubmission is the bulk edit format: cell key to shift code.
type ShiftEditSubmission struct {
	Department string            `json:"department"`
	Action     string            `json:"action"`
	Shifts     map[string]string `json:"shifts"`
}

// Edit outcomes.
const (
	EditApplied = "APPLIED"
	EditDeleted = "DELETED"
	EditSkipped = "SKIPPED"
)

// Skip reasons.
const (
	SkipMalformedKey  = "MALFORMED_KEY"
	SkipUnknownWorker = "UNKNOWN_WORKER"
	SkipNotFound      = "NOT_FOUND"
)

// EditEntryResult is the outcome for one submitted cell.
type EditEntryResult struct {
	Key     string `json:"key"`
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
}

// EditReport lists per-cell outcomes in key order.
type EditReport struct {
	Department string            `json:"department"`
	Action     string            `json:"action"`
	Applied    int               `json:"applied"`
	Deleted    int               `json:"deleted"`
	Skipped    int               `json:"skipped"`
	Entries    []EditEntryResult `json:"entries"`
}

// Add records an entry and updates the counters.
func (r *EditReport) Add(key, outcome, reason string) {
	r.Entries = append(r.Entries, EditEntryResult{Key: key, Outcome: outcome, Reason: reason})
	switch outcome {
	case EditApplied:
		r.Applied++
	case EditDeleted:
		r.Deleted++
	case EditSkipped:
		r.Skipped++
	}
}

// ShiftMapResponse is the reconciled month view.
type ShiftMapResponse struct {
	Department string            `json:"department"`
	Month      string            `json:"month"`
	Cells      map[string]string `json:"cells"`
}
