package handlers

import (
	"net/http"

	portssvc "github.com/agritrack/plot_capacity_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// analyticsHandler exposes the reporting views of one plot.
type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvcFacade
}

func newAnalyticsHandler(analyticsService portssvc.AnalyticsSvcFacade) *analyticsHandler {
	return &analyticsHandler{analyticsService: analyticsService}
}

// registerAnalyticsRoutes registers the per-plot analytics routes.
func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvcFacade) {
	h := newAnalyticsHandler(analyticsService)

	analytics := rg.Group("/plots/:plotID/analytics")
	{
		analytics.GET("/utilization", h.getUtilization)
		analytics.GET("/trends", h.getTrends)
		analytics.GET("/productivity", h.getProductivity)
		analytics.GET("/recommendations", h.getRecommendations)
		analytics.GET("/payments", h.getPaymentSummary)
		analytics.GET("/report", h.getReport)
	}
}

func (h *analyticsHandler) getUtilization(c *gin.Context) {
	plotID, ok := pathID(c, "plotID")
	if !ok {
		return
	}
	from, to, ok := bindPeriod(c)
	if !ok {
		return
	}
	report, err := h.analyticsService.Utilization(c.Request.Context(), plotID, from, to)
	if err != nil {
		respondError(c, err, "failed to compute utilization")
		return
	}
	respondOK(c, http.StatusOK, "utilization computed", report)
}

func (h *analyticsHandler) getTrends(c *gin.Context) {
	plotID, ok := pathID(c, "plotID")
	if !ok {
		return
	}
	from, to, ok := bindPeriod(c)
	if !ok {
		return
	}
	report, err := h.analyticsService.Trends(c.Request.Context(), plotID, from, to)
	if err != nil {
		respondError(c, err, "failed to compute trends")
		return
	}
	respondOK(c, http.StatusOK, "trends computed", report)
}

func (h *analyticsHandler) getProductivity(c *gin.Context) {
	plotID, ok := pathID(c, "plotID")
	if !ok {
		return
	}
	from, to, ok := bindPeriod(c)
	if !ok {
		return
	}
	ranking, err := h.analyticsService.WorkerProductivity(c.Request.Context(), plotID, from, to)
	if err != nil {
		respondError(c, err, "failed to compute worker productivity")
		return
	}
	respondOK(c, http.StatusOK, "worker productivity computed", ranking)
}

func (h *analyticsHandler) getRecommendations(c *gin.Context) {
	plotID, ok := pathID(c, "plotID")
	if !ok {
		return
	}
	recommendations, err := h.analyticsService.CapacityRecommendations(c.Request.Context(), plotID)
	if err != nil {
		respondError(c, err, "failed to compute capacity recommendations")
		return
	}
	respondOK(c, http.StatusOK, "capacity recommendations computed", recommendations)
}

func (h *analyticsHandler) getPaymentSummary(c *gin.Context) {
	plotID, ok := pathID(c, "plotID")
	if !ok {
		return
	}
	from, to, ok := bindPeriod(c)
	if !ok {
		return
	}
	summary, err := h.analyticsService.PaymentSummary(c.Request.Context(), plotID, from, to)
	if err != nil {
		respondError(c, err, "failed to summarize payments")
		return
	}
	respondOK(c, http.StatusOK, "payment summary computed", summary)
}

func (h *analyticsHandler) getReport(c *gin.Context) {
	plotID, ok := pathID(c, "plotID")
	if !ok {
		return
	}
	from, to, ok := bindPeriod(c)
	if !ok {
		return
	}
	report, err := h.analyticsService.PlotReport(c.Request.Context(), plotID, from, to)
	if err != nil {
		respondError(c, err, "failed to build plot report")
		return
	}
	respondOK(c, http.StatusOK, "plot report built", report)
}
