package dto

import (
	"time"

	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePlotRequest registers a new plot under a field.
type CreatePlotRequest struct {
	FieldID       int64           `json:"fieldID" binding:"required"`
	Location      *string         `json:"location,omitempty"`
	TotalCapacity decimal.Decimal `json:"totalCapacity"`
	Notes         string          `json:"notes,omitempty"`
}

// UpdatePlotRequest is a typed patch over the allow-listed mutable plot
// fields; only non-nil fields are applied. Capacity and status have their
// own explicit operations.
type UpdatePlotRequest struct {
	Location *string `json:"location,omitempty"`
	Notes    *string `json:"notes,omitempty"` // Appended, never replaced
}

// AdjustCapacityRequest changes a plot's declared budget explicitly.
type AdjustCapacityRequest struct {
	Mode   domain.CapacityAdjustmentMode `json:"mode" binding:"required,capacitymode"`
	Amount decimal.Decimal               `json:"amount"`
	Reason string                        `json:"reason,omitempty"`
}

// ChangePlotStatusRequest transitions a plot's lifecycle status.
type ChangePlotStatusRequest struct {
	Status domain.PlotStatus `json:"status" binding:"required,plotstatus"`
}

// DeletePlotRequest removes a plot; Force cascades dependent assignments
// and payments inside the same transaction.
type DeletePlotRequest struct {
	Force bool `json:"force"`
}

// BulkChangePlotStatusRequest transitions several plots to the same status
// in one unit of work.
type BulkChangePlotStatusRequest struct {
	PlotIDs []int64           `json:"plotIDs" binding:"required,min=1"`
	Status  domain.PlotStatus `json:"status" binding:"required,plotstatus"`
}

// BulkStatusResult reports the outcome of a bulk status change. Failed
// indexes refer to positions in the request's PlotIDs.
type BulkStatusResult struct {
	Updated []PlotResponse `json:"updated"`
	Failed  []BulkFailure  `json:"failed"`
}

// BulkCreatePlotsRequest registers several plots in one unit of work.
type BulkCreatePlotsRequest struct {
	Plots []CreatePlotRequest `json:"plots" binding:"required,min=1"`
}

// BulkPlotResult reports the outcome of a bulk plot creation.
type BulkPlotResult struct {
	Created []PlotResponse `json:"created"`
	Failed  []BulkFailure  `json:"failed"`
}

// ListPlotsParams carries paging inputs for plot listings.
type ListPlotsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// PlotResponse is the presentation shape of a plot. Capacity values are
// rounded to 2 decimal places here, at the boundary only.
type PlotResponse struct {
	PlotID        int64           `json:"plotID"`
	FieldID       int64           `json:"fieldID"`
	Location      *string         `json:"location"`
	TotalCapacity decimal.Decimal `json:"totalCapacity"`
	Status        string          `json:"status"`
	SessionID     int64           `json:"sessionID"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToPlotResponse converts a domain plot to its response shape.
func ToPlotResponse(p *domain.Plot) PlotResponse {
	return PlotResponse{
		PlotID:        p.PlotID,
		FieldID:       p.FieldID,
		Location:      p.Location,
		TotalCapacity: p.TotalCapacity.Round(2),
		Status:        string(p.Status),
		SessionID:     p.SessionID,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.LastUpdatedAt,
	}
}

// ToPlotResponses converts a slice of domain plots.
func ToPlotResponses(plots []domain.Plot) []PlotResponse {
	out := make([]PlotResponse, len(plots))
	for i := range plots {
		out[i] = ToPlotResponse(&plots[i])
	}
	return out
}

// PlotUsageResponse is the boundary shape of the ledger's usage view.
type PlotUsageResponse struct {
	PlotID        int64           `json:"plotID"`
	TotalCapacity decimal.Decimal `json:"totalCapacity"`
	Consumed      decimal.Decimal `json:"consumed"`
	Remaining     decimal.Decimal `json:"remaining"`
	Utilization   decimal.Decimal `json:"utilization"`
	Overcommitted bool            `json:"overcommitted"`
}

// ToPlotUsageResponse rounds a usage view for presentation.
func ToPlotUsageResponse(u domain.PlotUsage) PlotUsageResponse {
	return PlotUsageResponse{
		PlotID:        u.PlotID,
		TotalCapacity: u.TotalCapacity.Round(2),
		Consumed:      u.Consumed.Round(2),
		Remaining:     u.Remaining.Round(2),
		Utilization:   u.Utilization.Round(2),
		Overcommitted: u.Overcommitted,
	}
}
