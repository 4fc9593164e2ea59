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

type staffingRequirementService interface {
	Upsert(ctx context.Context, req dto.UpsertStaffingRequirements) (*dto.ImportCounts, error)
	ListMonth(ctx context.Context, department string, year, month int) ([]models.StaffingRequirement, error)
}

// StaffingRequirementHandler exposes headcount declarations.
type StaffingRequirementHandler struct {
	service           staffingRequirementService
	defaultDepartment string
}

// NewStaffingRequirementHandler constructs the handler.
func NewStaffingRequirementHandler(svc *service.StaffingRequirementService, defaultDepartment string) *StaffingRequirementHandler {
	return &StaffingRequirementHandler{service: svc, defaultDepartment: defaultDepartment}
}

// Upsert godoc
// @Summary Create or replace staffing requirements
// @Tags Requirements
// @Accept json
// @Produce json
// @Param payload body dto.UpsertStaffingRequirements true "Requirements"
// @Success 200 {object} response.Envelope
// @Router /staffing-requirements [put]
func (h *StaffingRequirementHandler) Upsert(c *gin.Context) {
	var req dto.UpsertStaffingRequirements
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid requirement payload"))
		return
	}
	counts, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, counts)
}

// List godoc
// @Summary Staffing requirements for a department month
// @Tags Requirements
// @Produce json
// @Param department query string false "Department"
// @Param month query string true "Month (yyyy-MM)"
// @Success 200 {object} response.Envelope
// @Router /staffing-requirements [get]
func (h *StaffingRequirementHandler) List(c *gin.Context) {
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
