package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/shift-roster-api/internal/dto"
	"github.com/noah-isme/shift-roster-api/internal/service"
	appErrors "github.com/noah-isme/shift-roster-api/pkg/errors"
	"github.com/noah-isme/shift-roster-api/pkg/jobs"
	"github.com/noah-isme/shift-roster-api/pkg/response"
)

type shiftGenerator interface {
	Generate(ctx context.Context, req dto.GenerateShiftsRequest) (*dto.GenerationSummary, error)
}

type generationJobs interface {
	Submit(req dto.GenerateShiftsRequest) (*dto.GenerationJobResponse, error)
	Status(id string) (jobs.Status, bool)
}

type shiftMapReader interface {
	MonthDisplayMap(ctx context.Context, department string, year, month int) (*dto.ShiftMapResponse, error)
}

type shiftEditor interface {
	Submit(ctx context.Context, sub dto.ShiftEditSubmission, actor string) (*dto.EditReport, error)
}

type rosterExporter interface {
	Export(ctx context.Context, department string, year, month int, format string) (*service.ExportResult, error)
}

// ShiftHandler exposes generation, the month map, bulk edits and export.
type ShiftHandler struct {
	generator         shiftGenerator
	jobs              generationJobs
	view              shiftMapReader
	edits             shiftEditor
	exporter          rosterExporter
	defaultDepartment string
}

// NewShiftHandler constructs the handler. jobs may be nil, in which case
// async requests run inline.
func NewShiftHandler(
	generator *service.ShiftGeneratorService,
	jobs *service.ShiftGenerationJobs,
	view *service.ShiftViewService,
	edits *service.ShiftEditService,
	exporter *service.RosterExportService,
	defaultDepartment string,
) *ShiftHandler {
	h := &ShiftHandler{
		generator:         generator,
		view:              view,
		edits:             edits,
		exporter:          exporter,
		defaultDepartment: defaultDepartment,
	}
	if jobs != nil {
		h.jobs = jobs
	}
	return h
}

// Generate godoc
// @Summary Generate a month of draft shifts
// @Description Runs inline by default. With async=true the run is queued and a job id is returned.
// @Tags Shifts
// @Accept json
// @Produce json
// @Param X-Actor header string false "Administrator recorded as updater"
// @Param payload body dto.GenerateShiftsRequest true "Generation payload"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope
// @Router /shifts/generate [post]
func (h *ShiftHandler) Generate(c *gin.Context) {
	var req dto.GenerateShiftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	if req.Department == "" {
		req.Department = h.defaultDepartment
	}
	if actor := actorFromContext(c); actor != defaultActor {
		req.Actor = actor
	}

	if req.Async && h.jobs != nil {
		queued, err := h.jobs.Submit(req)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Accepted(c, queued)
		return
	}

	summary, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// JobStatus godoc
// @Summary Get the state of a queued generation run
// @Tags Shifts
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /shifts/jobs/{id} [get]
func (h *ShiftHandler) JobStatus(c *gin.Context) {
	if h.jobs == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "job not found"))
		return
	}
	status, ok := h.jobs.Status(c.Param("id"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "job not found"))
		return
	}
	response.OK(c, status)
}

// Map godoc
// @Summary Reconciled shift map for a department month
// @Description Cells are keyed "{workerId}_{yyyy-MM-dd}" and hold a shift type, a leave code or empty.
// @Tags Shifts
// @Produce json
// @Param department query string false "Department"
// @Param month query string true "Month (yyyy-MM)"
// @Success 200 {object} response.Envelope
// @Router /shifts/map [get]
func (h *ShiftHandler) Map(c *gin.Context) {
	query, err := parseMonthQuery(c, h.defaultDepartment)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.view.MonthDisplayMap(c.Request.Context(), query.Department, query.Year, query.Month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Edits godoc
// @Summary Submit bulk shift edits
// @Description action is DRAFT, CONFIRMED or UNCONFIRM. Empty or "-" values delete the cell.
// @Tags Shifts
// @Accept json
// @Produce json
// @Param X-Actor header string false "Administrator recorded as updater"
// @Param payload body dto.ShiftEditSubmission true "Edit submission"
// @Success 200 {object} response.Envelope
// @Router /shifts/edits [post]
func (h *ShiftHandler) Edits(c *gin.Context) {
	var sub dto.ShiftEditSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid edit payload"))
		return
	}
	report, err := h.edits.Submit(c.Request.Context(), sub, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// Export godoc
// @Summary Download the month roster
// @Tags Shifts
// @Produce text/csv
// @Produce application/pdf
// @Param department query string false "Department"
// @Param month query string true "Month (yyyy-MM)"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /shifts/export [get]
func (h *ShiftHandler) Export(c *gin.Context) {
	query, err := parseMonthQuery(c, h.defaultDepartment)
	if err != nil {
		response.Error(c, err)
		return
	}
	format := c.DefaultQuery("format", service.FormatCSV)
	result, err := h.exporter.Export(c.Request.Context(), query.Department, query.Year, query.Month, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Body)
}
