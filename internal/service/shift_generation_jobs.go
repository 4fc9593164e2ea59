package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/shift-roster-api/internal/dto"
	appErrors "github.com/noah-isme/shift-roster-api/pkg/errors"
	"github.com/noah-isme/shift-roster-api/pkg/jobs"
)

// JobTypeShiftGeneration tags queued month generation runs.
const JobTypeShiftGeneration = "shift_generation"

type shiftGenerator interface {
	Generate(ctx context.Context, req dto.GenerateShiftsRequest) (*dto.GenerationSummary, error)
}

type jobQueue interface {
	Enqueue(job jobs.Job) (string, error)
	Status(id string) (jobs.Status, bool)
}

// GenerationJobHandler returns the queue handler that runs generation jobs.
func GenerationJobHandler(generator shiftGenerator) jobs.Handler {
	return func(ctx context.Context, job jobs.Job) error {
		req, ok := job.Payload.(dto.GenerateShiftsRequest)
		if !ok {
			return fmt.Errorf("job %s: unexpected payload %T", job.ID, job.Payload)
		}
		_, err := generator.Generate(ctx, req)
		return err
	}
}

// ShiftGenerationJobs submits generation runs to the background queue.
type ShiftGenerationJobs struct {
	queue     jobQueue
	validator *validator.Validate
}

// NewShiftGenerationJobs constructs the submitter.
func NewShiftGenerationJobs(queue jobQueue, validate *validator.Validate) *ShiftGenerationJobs {
	if validate == nil {
		validate = validator.New()
	}
	return &ShiftGenerationJobs{queue: queue, validator: validate}
}

// Submit validates and enqueues a generation run, returning its job id.
func (s *ShiftGenerationJobs) Submit(req dto.GenerateShiftsRequest) (*dto.GenerationJobResponse, error) {
	req.Department = strings.TrimSpace(req.Department)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation request")
	}
	id, err := s.queue.Enqueue(jobs.Job{Type: JobTypeShiftGeneration, Payload: req})
	if err != nil {
		return nil, asInternal(err, "failed to queue shift generation")
	}
	return &dto.GenerationJobResponse{JobID: id, State: string(jobs.StateQueued)}, nil
}

// Status returns the state of a queued run.
func (s *ShiftGenerationJobs) Status(id string) (jobs.Status, bool) {
	return s.queue.Status(id)
}
