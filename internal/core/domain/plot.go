package domain

import (
	"github.com/shopspring/decimal"
)

// PlotStatus indicates the lifecycle state of a plot.
type PlotStatus string

const (
	PlotActive    PlotStatus = "ACTIVE"
	PlotInactive  PlotStatus = "INACTIVE"
	PlotCompleted PlotStatus = "COMPLETED"
)

// ValidPlotStatus reports whether s is one of the known plot states.
func ValidPlotStatus(s PlotStatus) bool {
	switch s {
	case PlotActive, PlotInactive, PlotCompleted:
		return true
	}
	return false
}

// Plot is a bounded sub-area of a field with a declared capacity budget.
// TotalCapacity is the budget (in capacity units) that assignments draw
// against; it is never negative and only changes through explicit
// adjustment operations.
type Plot struct {
	PlotID        int64           `json:"plotID"`
	FieldID       int64           `json:"fieldID"`
	Location      *string         `json:"location"` // Free text, unique per field when set
	TotalCapacity decimal.Decimal `json:"totalCapacity"`
	Status        PlotStatus      `json:"status"`
	SessionID     int64           `json:"sessionID"` // Accounting period the plot was registered under
	Notes         string          `json:"notes"`     // Append-only log of manual adjustments
	AuditFields
}

// CapacityAdjustmentMode selects how an adjustment is applied to a plot's budget.
type CapacityAdjustmentMode string

const (
	AdjustSet      CapacityAdjustmentMode = "SET"
	AdjustAdd      CapacityAdjustmentMode = "ADD"
	AdjustSubtract CapacityAdjustmentMode = "SUBTRACT"
)

// PlotUsage is the ledger's view of a single plot's budget consumption.
type PlotUsage struct {
	PlotID        int64           `json:"plotID"`
	TotalCapacity decimal.Decimal `json:"totalCapacity"`
	Consumed      decimal.Decimal `json:"consumed"`
	Remaining     decimal.Decimal `json:"remaining"`
	// Utilization is the instantaneous rate in percent. Zero capacity
	// always reports zero, never an error.
	Utilization decimal.Decimal `json:"utilization"`
	Overcommitted bool          `json:"overcommitted"`
}
