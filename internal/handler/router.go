package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Shifts       *ShiftHandler
	Leave        *LeaveRequestHandler
	Temporary    *TemporaryAssignmentHandler
	Requirements *StaffingRequirementHandler
	Metrics      *MetricsHandler
}

// Register mounts the probes at the root and the roster API under prefix.
func Register(r gin.IRouter, prefix string, h Handlers) {
	if h.Metrics != nil {
		r.GET("/health", h.Metrics.Health)
		r.GET("/ready", h.Metrics.Ready)
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	api := r.Group(prefix)

	if h.Shifts != nil {
		shifts := api.Group("/shifts")
		shifts.POST("/generate", h.Shifts.Generate)
		shifts.GET("/jobs/:id", h.Shifts.JobStatus)
		shifts.GET("/map", h.Shifts.Map)
		shifts.POST("/edits", h.Shifts.Edits)
		shifts.GET("/export", h.Shifts.Export)
	}

	if h.Leave != nil {
		api.POST("/leave-requests", h.Leave.Submit)
		api.DELETE("/leave-requests", h.Leave.Cancel)
		api.GET("/leave-requests", h.Leave.List)
	}

	if h.Temporary != nil {
		api.POST("/temporary-assignments", h.Temporary.Assign)
		api.GET("/temporary-assignments", h.Temporary.List)
	}

	if h.Requirements != nil {
		api.PUT("/staffing-requirements", h.Requirements.Upsert)
		api.GET("/staffing-requirements", h.Requirements.List)
	}
}
