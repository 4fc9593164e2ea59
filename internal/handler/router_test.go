package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMountsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, _, _, _, _ := newShiftHandlerForTest()
	r := gin.New()
	Register(r, "/api/v1", Handlers{
		Shifts:       h,
		Leave:        &LeaveRequestHandler{service: &leaveServiceMock{}},
		Temporary:    &TemporaryAssignmentHandler{service: &temporaryServiceMock{}},
		Requirements: &StaffingRequirementHandler{service: &requirementServiceMock{}},
		Metrics:      NewMetricsHandler(nil, nil),
	})

	want := map[string]bool{
		"GET /health":                        true,
		"GET /ready":                         true,
		"GET /metrics":                       true,
		"POST /api/v1/shifts/generate":       true,
		"GET /api/v1/shifts/jobs/:id":        true,
		"GET /api/v1/shifts/map":             true,
		"POST /api/v1/shifts/edits":          true,
		"GET /api/v1/shifts/export":          true,
		"POST /api/v1/leave-requests":        true,
		"DELETE /api/v1/leave-requests":      true,
		"GET /api/v1/leave-requests":         true,
		"POST /api/v1/temporary-assignments": true,
		"GET /api/v1/temporary-assignments":  true,
		"PUT /api/v1/staffing-requirements":  true,
		"GET /api/v1/staffing-requirements":  true,
	}
	got := map[string]bool{}
	for _, route := range r.Routes() {
		got[route.Method+" "+route.Path] = true
	}
	assert.Equal(t, want, got)
}

func TestRegisterServesMapThroughPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, _, _, view, _, _ := newShiftHandlerForTest()
	r := gin.New()
	Register(r, "/api/v1", Handlers{Shifts: h})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/shifts/map?department=kita&month=2025-09", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "kita", view.department)
	assert.Equal(t, 9, view.month)
}
