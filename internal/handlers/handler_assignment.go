package handlers

import (
	"net/http"

	portssvc "github.com/agritrack/plot_capacity_app/internal/core/ports/services"
	"github.com/agritrack/plot_capacity_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// assignmentHandler handles HTTP requests related to assignments.
type assignmentHandler struct {
	assignmentService portssvc.AssignmentSvcFacade
}

func newAssignmentHandler(assignmentService portssvc.AssignmentSvcFacade) *assignmentHandler {
	return &assignmentHandler{assignmentService: assignmentService}
}

// registerAssignmentRoutes registers routes related to assignments.
func registerAssignmentRoutes(rg *gin.RouterGroup, assignmentService portssvc.AssignmentSvcFacade) {
	h := newAssignmentHandler(assignmentService)

	assignments := rg.Group("/assignments")
	{
		assignments.POST("", h.createAssignment)
		assignments.POST("/bulk", h.bulkCreateAssignments)
		assignments.GET("/:assignmentID", h.getAssignment)
		assignments.POST("/:assignmentID/complete", h.completeAssignment)
		assignments.POST("/:assignmentID/cancel", h.cancelAssignment)
	}

	rg.GET("/plots/:plotID/assignments", h.listByPlot)
	rg.GET("/workers/:workerID/assignments", h.listByWorker)
}

func (h *assignmentHandler) createAssignment(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "failed to create assignment")
		return
	}
	respondOK(c, http.StatusCreated, "assignment created", dto.ToAssignmentResponse(assignment))
}

func (h *assignmentHandler) bulkCreateAssignments(c *gin.Context) {
	var req dto.BulkCreateAssignmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	result, err := h.assignmentService.BulkCreateAssignments(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "failed to bulk create assignments")
		return
	}
	respondOK(c, http.StatusCreated, "bulk assignment creation finished", result)
}

func (h *assignmentHandler) getAssignment(c *gin.Context) {
	assignmentID, ok := pathID(c, "assignmentID")
	if !ok {
		return
	}
	assignment, err := h.assignmentService.GetAssignmentByID(c.Request.Context(), assignmentID)
	if err != nil {
		respondError(c, err, "failed to get assignment")
		return
	}
	respondOK(c, http.StatusOK, "assignment retrieved", dto.ToAssignmentResponse(assignment))
}

func (h *assignmentHandler) completeAssignment(c *gin.Context) {
	assignmentID, ok := pathID(c, "assignmentID")
	if !ok {
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentService.CompleteAssignment(c.Request.Context(), assignmentID, actor)
	if err != nil {
		respondError(c, err, "failed to complete assignment")
		return
	}
	respondOK(c, http.StatusOK, "assignment completed", dto.ToAssignmentResponse(assignment))
}

func (h *assignmentHandler) cancelAssignment(c *gin.Context) {
	assignmentID, ok := pathID(c, "assignmentID")
	if !ok {
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentService.CancelAssignment(c.Request.Context(), assignmentID, actor)
	if err != nil {
		respondError(c, err, "failed to cancel assignment")
		return
	}
	respondOK(c, http.StatusOK, "assignment cancelled", dto.ToAssignmentResponse(assignment))
}

func (h *assignmentHandler) listByPlot(c *gin.Context) {
	plotID, ok := pathID(c, "plotID")
	if !ok {
		return
	}
	var params dto.ListAssignmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	assignments, nextToken, err := h.assignmentService.ListByPlot(c.Request.Context(), plotID, params)
	if err != nil {
		respondError(c, err, "failed to list assignments for plot")
		return
	}
	respondPage(c, "assignments listed", dto.ToAssignmentResponses(assignments), nextToken)
}

func (h *assignmentHandler) listByWorker(c *gin.Context) {
	workerID, ok := pathID(c, "workerID")
	if !ok {
		return
	}
	var params dto.ListAssignmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	assignments, nextToken, err := h.assignmentService.ListByWorker(c.Request.Context(), workerID, params)
	if err != nil {
		respondError(c, err, "failed to list assignments for worker")
		return
	}
	respondPage(c, "assignments listed", dto.ToAssignmentResponses(assignments), nextToken)
}
