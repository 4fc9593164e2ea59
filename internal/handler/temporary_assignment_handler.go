package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/shift-roster-api/internal/dto"
	"github.com/noah-isme/shift-roster-api/internal/models"
	"github.com/noah-isme/shift-roster-api/internal/service"
	appErrors "github.com/noah-isme/shift-roster-api/pkg/errors"
	"github.com/noah-isme/shift-roster-api/pkg/response"
)

type temporaryAssignmentService interface {
	Assign(ctx context.Context, req dto.AssignTemporaryWorkers) (*dto.ImportCounts, error)
	ListMonth(ctx context.Context, department string, year, month int) ([]models.TemporaryAssignment, error)
}

// TemporaryAssignmentHandler exposes temporary worker pre-assignment.
type TemporaryAssignmentHandler struct {
	service           temporaryAssignmentService
	defaultDepartment string
}

// NewTemporaryAssignmentHandler constructs the handler.
func NewTemporaryAssignmentHandler(svc *service.TemporaryAssignmentService, defaultDepartment string) *TemporaryAssignmentHandler {
	return &TemporaryAssignmentHandler{service: svc, defaultDepartment: defaultDepartment}
}

// Assign godoc
// @Summary Pre-assign temporary workers to slots
// @Tags Temporary
// @Accept json
// @Produce json
// @Param payload body dto.AssignTemporaryWorkers true "Assignments"
// @Success 201 {object} response.Envelope
// @Router /temporary-assignments [post]
func (h *TemporaryAssignmentHandler) Assign(c *gin.Context) {
	var req dto.AssignTemporaryWorkers
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	counts, err := h.service.Assign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, counts)
}

// List godoc
// @Summary Temporary assignments for a department month
// @Tags Temporary
// @Produce json
// @Param department query string false "Department"
// @Param month query string true "Month (yyyy-MM)"
// @Success 200 {object} response.Envelope
// @Router /temporary-assignments [get]
func (h *TemporaryAssignmentHandler) List(c *gin.Context) {
	query, err := parseMonthQuery(c, h.defaultDepartment)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.service.ListMonth(c.Request.Context(), query.Department, query.Year, query.Month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, map[string]interface{}{"count": len(rows)})
}
