package handlers

import (
	"net/http"

	portssvc "github.com/agritrack/plot_capacity_app/internal/core/ports/services"
	"github.com/agritrack/plot_capacity_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// fieldHandler handles HTTP requests related to fields.
type fieldHandler struct {
	fieldService     portssvc.FieldSvcFacade
	plotService      portssvc.PlotSvcFacade
	analyticsService portssvc.AnalyticsSvcFacade
}

func newFieldHandler(fieldService portssvc.FieldSvcFacade, plotService portssvc.PlotSvcFacade, analyticsService portssvc.AnalyticsSvcFacade) *fieldHandler {
	return &fieldHandler{
		fieldService:     fieldService,
		plotService:      plotService,
		analyticsService: analyticsService,
	}
}

// registerFieldRoutes registers routes related to fields.
func registerFieldRoutes(rg *gin.RouterGroup, fieldService portssvc.FieldSvcFacade, plotService portssvc.PlotSvcFacade, analyticsService portssvc.AnalyticsSvcFacade) {
	h := newFieldHandler(fieldService, plotService, analyticsService)

	fields := rg.Group("/fields")
	{
		fields.POST("", h.createField)
		fields.GET("", h.listFields)
		fields.GET("/:fieldID", h.getField)
		fields.PUT("/:fieldID", h.updateField)
		fields.GET("/:fieldID/plots", h.listFieldPlots)
		fields.GET("/:fieldID/comparison", h.compareField)
	}
}

func (h *fieldHandler) createField(c *gin.Context) {
	var req dto.CreateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	field, err := h.fieldService.CreateField(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "failed to create field")
		return
	}
	respondOK(c, http.StatusCreated, "field created", dto.ToFieldResponse(field))
}

func (h *fieldHandler) listFields(c *gin.Context) {
	fields, err := h.fieldService.ListFields(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list fields")
		return
	}
	out := make([]dto.FieldResponse, len(fields))
	for i := range fields {
		out[i] = dto.ToFieldResponse(&fields[i])
	}
	respondOK(c, http.StatusOK, "fields listed", out)
}

func (h *fieldHandler) getField(c *gin.Context) {
	fieldID, ok := pathID(c, "fieldID")
	if !ok {
		return
	}
	field, err := h.fieldService.GetFieldByID(c.Request.Context(), fieldID)
	if err != nil {
		respondError(c, err, "failed to get field")
		return
	}
	respondOK(c, http.StatusOK, "field retrieved", dto.ToFieldResponse(field))
}

func (h *fieldHandler) updateField(c *gin.Context) {
	fieldID, ok := pathID(c, "fieldID")
	if !ok {
		return
	}
	var req dto.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	field, err := h.fieldService.UpdateField(c.Request.Context(), fieldID, req, actor)
	if err != nil {
		respondError(c, err, "failed to update field")
		return
	}
	respondOK(c, http.StatusOK, "field updated", dto.ToFieldResponse(field))
}

func (h *fieldHandler) listFieldPlots(c *gin.Context) {
	fieldID, ok := pathID(c, "fieldID")
	if !ok {
		return
	}
	plots, err := h.plotService.ListPlotsByField(c.Request.Context(), fieldID)
	if err != nil {
		respondError(c, err, "failed to list plots for field")
		return
	}
	respondOK(c, http.StatusOK, "plots listed", dto.ToPlotResponses(plots))
}

func (h *fieldHandler) compareField(c *gin.Context) {
	fieldID, ok := pathID(c, "fieldID")
	if !ok {
		return
	}
	comparisons, err := h.analyticsService.CompareField(c.Request.Context(), fieldID)
	if err != nil {
		respondError(c, err, "failed to compare field plots")
		return
	}
	respondOK(c, http.StatusOK, "field comparison computed", comparisons)
}
