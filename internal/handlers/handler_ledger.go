package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/agritrack/plot_capacity_app/internal/core/ports/services"
	"github.com/agritrack/plot_capacity_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// ledgerHandler exposes the capacity ledger, the allocation validator and
// the duplicate detector.
type ledgerHandler struct {
	ledgerService    portssvc.CapacityLedgerSvc
	validatorService portssvc.CapacityValidatorSvc
	detectorService  portssvc.DuplicateDetectorSvc
}

func newLedgerHandler(ledgerService portssvc.CapacityLedgerSvc, validatorService portssvc.CapacityValidatorSvc, detectorService portssvc.DuplicateDetectorSvc) *ledgerHandler {
	return &ledgerHandler{
		ledgerService:    ledgerService,
		validatorService: validatorService,
		detectorService:  detectorService,
	}
}

// registerLedgerRoutes registers the capacity read and check routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.CapacityLedgerSvc, validatorService portssvc.CapacityValidatorSvc, detectorService portssvc.DuplicateDetectorSvc) {
	h := newLedgerHandler(ledgerService, validatorService, detectorService)

	plots := rg.Group("/plots")
	{
		plots.GET("/:plotID/usage", h.getUsage)
		plots.GET("/:plotID/consumed", h.getConsumed)
		plots.GET("/:plotID/consumed/workers", h.getConsumedByWorker)
		plots.GET("/:plotID/consumed/days", h.getConsumedByDay)
		plots.POST("/validate-allocation", h.validateAllocation)
		plots.POST("/detect-duplicates", h.detectDuplicates)
	}
}

func (h *ledgerHandler) getUsage(c *gin.Context) {
	plotID, ok := pathID(c, "plotID")
	if !ok {
		return
	}
	usage, err := h.ledgerService.PlotUsage(c.Request.Context(), plotID)
	if err != nil {
		respondError(c, err, "failed to compute plot usage")
		return
	}
	respondOK(c, http.StatusOK, "plot usage computed", dto.ToPlotUsageResponse(*usage))
}

func (h *ledgerHandler) getConsumed(c *gin.Context) {
	plotID, ok := pathID(c, "plotID")
	if !ok {
		return
	}
	var onDate *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail("invalid date", gin.H{"error": "date must be YYYY-MM-DD"}))
			return
		}
		onDate = &parsed
	}

	consumed, err := h.ledgerService.ConsumedCapacity(c.Request.Context(), plotID, onDate)
	if err != nil {
		respondError(c, err, "failed to compute consumed capacity")
		return
	}
	respondOK(c, http.StatusOK, "consumed capacity computed", gin.H{"plotID": plotID, "consumed": consumed.Round(2)})
}

func (h *ledgerHandler) getConsumedByWorker(c *gin.Context) {
	plotID, ok := pathID(c, "plotID")
	if !ok {
		return
	}
	breakdown, err := h.ledgerService.ConsumedByWorker(c.Request.Context(), plotID)
	if err != nil {
		respondError(c, err, "failed to compute worker breakdown")
		return
	}
	respondOK(c, http.StatusOK, "worker breakdown computed", breakdown)
}

func (h *ledgerHandler) getConsumedByDay(c *gin.Context) {
	plotID, ok := pathID(c, "plotID")
	if !ok {
		return
	}
	from, to, ok := bindPeriod(c)
	if !ok {
		return
	}
	breakdown, err := h.ledgerService.ConsumedByDay(c.Request.Context(), plotID, from, to)
	if err != nil {
		respondError(c, err, "failed to compute daily breakdown")
		return
	}
	respondOK(c, http.StatusOK, "daily breakdown computed", breakdown)
}

func (h *ledgerHandler) validateAllocation(c *gin.Context) {
	var req dto.ValidateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	check, err := h.validatorService.ValidateAllocation(c.Request.Context(), req.PlotID, req.Amount, req.Date)
	if err != nil {
		respondError(c, err, "failed to validate allocation")
		return
	}
	respondOK(c, http.StatusOK, "allocation validated", check)
}

func (h *ledgerHandler) detectDuplicates(c *gin.Context) {
	var req dto.DetectDuplicatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	report, err := h.detectorService.DetectDuplicates(c.Request.Context(), req.FieldID, req.Location, req.ExcludePlotID, req.Radius)
	if err != nil {
		respondError(c, err, "failed to detect duplicates")
		return
	}
	respondOK(c, http.StatusOK, "duplicate detection finished", report)
}

// bindPeriod parses from/to query dates, defaulting to the trailing 30 days.
func bindPeriod(c *gin.Context) (time.Time, time.Time, bool) {
	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return time.Time{}, time.Time{}, false
	}
	to := params.To
	if to.IsZero() {
		to = time.Now()
	}
	from := params.From
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid period", gin.H{"error": "to must not be before from"}))
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
