package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/agritrack/plot_capacity_app/internal/core/ports/services"
	"github.com/agritrack/plot_capacity_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// plotHandler handles HTTP requests related to plots.
type plotHandler struct {
	plotService portssvc.PlotSvcFacade
}

func newPlotHandler(plotService portssvc.PlotSvcFacade) *plotHandler {
	return &plotHandler{plotService: plotService}
}

// registerPlotRoutes registers routes related to plot CRUD and lifecycle.
func registerPlotRoutes(rg *gin.RouterGroup, plotService portssvc.PlotSvcFacade) {
	h := newPlotHandler(plotService)

	plots := rg.Group("/plots")
	{
		plots.POST("", h.createPlot)
		plots.POST("/bulk", h.bulkCreatePlots)
		plots.POST("/bulk-status", h.bulkChangeStatus)
		plots.GET("", h.listPlots)
		plots.GET("/:plotID", h.getPlot)
		plots.PUT("/:plotID", h.updatePlot)
		plots.DELETE("/:plotID", h.deletePlot)
		plots.POST("/:plotID/capacity", h.adjustCapacity)
		plots.POST("/:plotID/status", h.changeStatus)
	}
}

func (h *plotHandler) createPlot(c *gin.Context) {
	var req dto.CreatePlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	plot, report, err := h.plotService.CreatePlot(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "failed to create plot")
		return
	}
	// The duplicate report rides along as advisory metadata.
	c.JSON(http.StatusCreated, dto.OKWithMeta("plot created", dto.ToPlotResponse(plot), gin.H{"duplicateReport": report}))
}

func (h *plotHandler) bulkCreatePlots(c *gin.Context) {
	var req dto.BulkCreatePlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	result, err := h.plotService.BulkCreatePlots(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "failed to bulk create plots")
		return
	}
	respondOK(c, http.StatusCreated, "bulk plot creation finished", result)
}

func (h *plotHandler) bulkChangeStatus(c *gin.Context) {
	var req dto.BulkChangePlotStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	result, err := h.plotService.BulkChangeStatus(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "failed to bulk change plot status")
		return
	}
	respondOK(c, http.StatusOK, "bulk plot status change finished", result)
}

func (h *plotHandler) listPlots(c *gin.Context) {
	var params dto.ListPlotsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	plots, nextToken, err := h.plotService.ListPlots(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "failed to list plots")
		return
	}
	respondPage(c, "plots listed", dto.ToPlotResponses(plots), nextToken)
}

func (h *plotHandler) getPlot(c *gin.Context) {
	plotID, ok := pathID(c, "plotID")
	if !ok {
		return
	}
	plot, err := h.plotService.GetPlotByID(c.Request.Context(), plotID)
	if err != nil {
		respondError(c, err, "failed to get plot")
		return
	}
	respondOK(c, http.StatusOK, "plot retrieved", dto.ToPlotResponse(plot))
}

func (h *plotHandler) updatePlot(c *gin.Context) {
	plotID, ok := pathID(c, "plotID")
	if !ok {
		return
	}
	var req dto.UpdatePlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	plot, err := h.plotService.UpdatePlot(c.Request.Context(), plotID, req, actor)
	if err != nil {
		respondError(c, err, "failed to update plot")
		return
	}
	respondOK(c, http.StatusOK, "plot updated", dto.ToPlotResponse(plot))
}

func (h *plotHandler) deletePlot(c *gin.Context) {
	plotID, ok := pathID(c, "plotID")
	if !ok {
		return
	}
	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))
	actor, ok := actorID(c)
	if !ok {
		return
	}

	if err := h.plotService.DeletePlot(c.Request.Context(), plotID, force, actor); err != nil {
		respondError(c, err, "failed to delete plot")
		return
	}
	respondOK(c, http.StatusOK, "plot deleted", nil)
}

func (h *plotHandler) adjustCapacity(c *gin.Context) {
	plotID, ok := pathID(c, "plotID")
	if !ok {
		return
	}
	var req dto.AdjustCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	plot, err := h.plotService.AdjustCapacity(c.Request.Context(), plotID, req, actor)
	if err != nil {
		respondError(c, err, "failed to adjust plot capacity")
		return
	}
	respondOK(c, http.StatusOK, "plot capacity adjusted", dto.ToPlotResponse(plot))
}

func (h *plotHandler) changeStatus(c *gin.Context) {
	plotID, ok := pathID(c, "plotID")
	if !ok {
		return
	}
	var req dto.ChangePlotStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	plot, err := h.plotService.ChangeStatus(c.Request.Context(), plotID, req.Status, actor)
	if err != nil {
		respondError(c, err, "failed to change plot status")
		return
	}
	respondOK(c, http.StatusOK, "plot status changed", dto.ToPlotResponse(plot))
}
