package dto

import (
	"time"

	"github.com/agritrack/plot_capacity_app/internal/core/domain"
)

// ReportPeriodParams bounds an analytics request. Zero values default to
// the trailing 30 days.
type ReportPeriodParams struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}

// DetectDuplicatesRequest scores a candidate registration.
type DetectDuplicatesRequest struct {
	FieldID       int64    `json:"fieldID" binding:"required"`
	Location      string   `json:"location" binding:"required"`
	ExcludePlotID *int64   `json:"excludePlotID,omitempty"`
	Radius        *float64 `json:"radius,omitempty"`
}

// PlotReportResponse bundles the full analytics view of one plot.
type PlotReportResponse struct {
	Utilization     domain.UtilizationReport        `json:"utilization"`
	Trends          domain.PlotTrendReport          `json:"trends"`
	Productivity    []domain.WorkerProductivity     `json:"productivity"`
	Recommendations []domain.CapacityRecommendation `json:"recommendations"`
	Payments        domain.PaymentSummary           `json:"payments"`
}
