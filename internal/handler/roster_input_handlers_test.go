package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shift-roster-api/internal/dto"
	"github.com/noah-isme/shift-roster-api/internal/models"
	appErrors "github.com/noah-isme/shift-roster-api/pkg/errors"
)

type leaveServiceMock struct {
	submitted dto.SubmitLeaveRequests
	cancelled dto.CancelLeaveRequest
	listed    string
	err       error
}

func (m *leaveServiceMock) Submit(ctx context.Context, req dto.SubmitLeaveRequests) (*dto.ImportCounts, error) {
	m.submitted = req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.ImportCounts{Received: len(req.Requests), Written: len(req.Requests)}, nil
}

func (m *leaveServiceMock) Cancel(ctx context.Context, req dto.CancelLeaveRequest) error {
	m.cancelled = req
	return m.err
}

func (m *leaveServiceMock) ListMonth(ctx context.Context, department string, year, month int) ([]models.LeaveRequest, error) {
	m.listed = department
	return []models.LeaveRequest{{ID: 1, WorkerID: 3, Date: time.Date(year, time.Month(month), 2, 0, 0, 0, 0, time.UTC), Kind: models.LeaveDayOff}}, nil
}

func TestLeaveRequestHandlerSubmit(t *testing.T) {
	svc := &leaveServiceMock{}
	h := &LeaveRequestHandler{service: svc, defaultDepartment: "amami"}

	w := performRequest(h.Submit, http.MethodPost, "/leave-requests",
		[]byte(`{"requests":[{"workerId":3,"date":"2025-08-02","department":"amami","kind":"DAY_OFF"}]}`), nil)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.submitted.Requests, 1)
	assert.Equal(t, int64(3), svc.submitted.Requests[0].WorkerID)
	assert.Contains(t, w.Body.String(), `"written":1`)
}

func TestLeaveRequestHandlerSubmitValidationError(t *testing.T) {
	svc := &leaveServiceMock{err: appErrors.Validation("invalid leave request")}
	h := &LeaveRequestHandler{service: svc}

	w := performRequest(h.Submit, http.MethodPost, "/leave-requests", []byte(`{"requests":[]}`), nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeaveRequestHandlerCancel(t *testing.T) {
	svc := &leaveServiceMock{}
	h := &LeaveRequestHandler{service: svc}

	w := performRequest(h.Cancel, http.MethodDelete, "/leave-requests",
		[]byte(`{"workerId":3,"date":"2025-08-02","department":"amami"}`), nil)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "2025-08-02", svc.cancelled.Date)
}

func TestLeaveRequestHandlerList(t *testing.T) {
	svc := &leaveServiceMock{}
	h := &LeaveRequestHandler{service: svc, defaultDepartment: "amami"}

	w := performRequest(h.List, http.MethodGet, "/leave-requests?month=2025-08", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "amami", svc.listed)
	assert.Contains(t, w.Body.String(), `"count":1`)
}

func TestLeaveRequestHandlerListRequiresDepartment(t *testing.T) {
	h := &LeaveRequestHandler{service: &leaveServiceMock{}}

	w := performRequest(h.List, http.MethodGet, "/leave-requests?month=2025-08", nil, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

type temporaryServiceMock struct {
	assigned dto.AssignTemporaryWorkers
	err      error
}

func (m *temporaryServiceMock) Assign(ctx context.Context, req dto.AssignTemporaryWorkers) (*dto.ImportCounts, error) {
	m.assigned = req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.ImportCounts{Received: len(req.Assignments), Written: len(req.Assignments)}, nil
}

func (m *temporaryServiceMock) ListMonth(ctx context.Context, department string, year, month int) ([]models.TemporaryAssignment, error) {
	return nil, nil
}

func TestTemporaryAssignmentHandlerAssign(t *testing.T) {
	svc := &temporaryServiceMock{}
	h := &TemporaryAssignmentHandler{service: svc}

	w := performRequest(h.Assign, http.MethodPost, "/temporary-assignments",
		[]byte(`{"assignments":[{"workerId":12,"date":"2025-08-01","department":"amami","timeSlot":"9-18"}]}`), nil)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, svc.assigned.Assignments, 1)
	assert.Equal(t, "9-18", svc.assigned.Assignments[0].TimeSlot)
}

func TestTemporaryAssignmentHandlerUnknownWorker(t *testing.T) {
	svc := &temporaryServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "worker 99 not found")}
	h := &TemporaryAssignmentHandler{service: svc}

	w := performRequest(h.Assign, http.MethodPost, "/temporary-assignments",
		[]byte(`{"assignments":[{"workerId":99,"date":"2025-08-01","department":"amami","timeSlot":"9-18"}]}`), nil)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTemporaryAssignmentHandlerListEmpty(t *testing.T) {
	h := &TemporaryAssignmentHandler{service: &temporaryServiceMock{}, defaultDepartment: "amami"}

	w := performRequest(h.List, http.MethodGet, "/temporary-assignments?month=2025-08", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)
}

type requirementServiceMock struct {
	upserted dto.UpsertStaffingRequirements
}

func (m *requirementServiceMock) Upsert(ctx context.Context, req dto.UpsertStaffingRequirements) (*dto.ImportCounts, error) {
	m.upserted = req
	return &dto.ImportCounts{Received: len(req.Requirements), Written: len(req.Requirements)}, nil
}

func (m *requirementServiceMock) ListMonth(ctx context.Context, department string, year, month int) ([]models.StaffingRequirement, error) {
	return []models.StaffingRequirement{{ID: 1, Department: department, TimeSlot: "9-18", RequiredCount: 2}}, nil
}

func TestStaffingRequirementHandlerUpsert(t *testing.T) {
	svc := &requirementServiceMock{}
	h := &StaffingRequirementHandler{service: svc}

	w := performRequest(h.Upsert, http.MethodPut, "/staffing-requirements",
		[]byte(`{"requirements":[{"date":"2025-08-01","department":"amami","timeSlot":"9-18","requiredCount":2}]}`), nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.upserted.Requirements, 1)
	assert.Equal(t, 2, svc.upserted.Requirements[0].RequiredCount)
}

func TestStaffingRequirementHandlerUpsertMalformed(t *testing.T) {
	h := &StaffingRequirementHandler{service: &requirementServiceMock{}}

	w := performRequest(h.Upsert, http.MethodPut, "/staffing-requirements", []byte(`{"requirements":"x"}`), nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStaffingRequirementHandlerList(t *testing.T) {
	h := &StaffingRequirementHandler{service: &requirementServiceMock{}}

	w := performRequest(h.List, http.MethodGet, "/staffing-requirements?department=kita&month=2025-08", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
}
