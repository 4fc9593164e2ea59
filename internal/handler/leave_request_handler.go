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

type leaveRequestService interface {
	Submit(ctx context.Context, req dto.SubmitLeaveRequests) (*dto.ImportCounts, error)
	Cancel(ctx context.Context, req dto.CancelLeaveRequest) error
	ListMonth(ctx context.Context, department string, year, month int) ([]models.LeaveRequest, error)
}

// LeaveRequestHandler exposes leave intake.
type LeaveRequestHandler struct {
	service           leaveRequestService
	defaultDepartment string
}

// NewLeaveRequestHandler constructs the handler.
func NewLeaveRequestHandler(svc *service.LeaveRequestService, defaultDepartment string) *LeaveRequestHandler {
	return &LeaveRequestHandler{service: svc, defaultDepartment: defaultDepartment}
}

// Submit godoc
// @Summary Record day-off or paid-leave requests
// @Tags Leave
// @Accept json
// @Produce json
// @Param payload body dto.SubmitLeaveRequests true "Leave requests"
// @Success 201 {object} response.Envelope
// @Router /leave-requests [post]
func (h *LeaveRequestHandler) Submit(c *gin.Context) {
	var req dto.SubmitLeaveRequests
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid leave payload"))
		return
	}
	counts, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, counts)
}

// Cancel godoc
// @Summary Withdraw the current leave for a worker day
// @Tags Leave
// @Accept json
// @Param payload body dto.CancelLeaveRequest true "Cell to cancel"
// @Success 204
// @Router /leave-requests [delete]
func (h *LeaveRequestHandler) Cancel(c *gin.Context) {
	var req dto.CancelLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cancel payload"))
		return
	}
	if err := h.service.Cancel(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// List godoc
// @Summary Authoritative leave rows for a department month
// @Tags Leave
// @Produce json
// @Param department query string false "Department"
// @Param month query string true "Month (yyyy-MM)"
// @Success 200 {object} response.Envelope
// @Router /leave-requests [get]
func (h *LeaveRequestHandler) List(c *gin.Context) {
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
