package services

import (
	"context"
	"time"

	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CapacityLedgerSvc answers how much of a plot's declared capacity is
// already consumed. Pure reads over committed state; no side effects.
type CapacityLedgerSvc interface {
	// ConsumedCapacity sums capacityCount over active and completed
	// assignments, optionally restricted to a single assignment date.
	// Missing aggregates read as zero.
	ConsumedCapacity(ctx context.Context, plotID int64, onDate *time.Time) (decimal.Decimal, error)

	// ConsumedByWorker breaks consumption down per worker, largest first.
	ConsumedByWorker(ctx context.Context, plotID int64) ([]domain.WorkerConsumption, error)

	// ConsumedByDay breaks consumption down per calendar day within
	// [from, to], ascending.
	ConsumedByDay(ctx context.Context, plotID int64, from, to time.Time) ([]domain.DayConsumption, error)

	// PlotUsage returns the full budget view of one plot: consumed,
	// remaining and instantaneous utilization. Zero capacity reports zero
	// utilization, never an error.
	PlotUsage(ctx context.Context, plotID int64) (*domain.PlotUsage, error)
}

// CapacityValidatorSvc decides whether a requested allocation fits a
// plot's remaining budget. Validation does not reserve capacity; callers
// must create the assignment inside the same transaction they validated in.
type CapacityValidatorSvc interface {
	ValidateAllocation(ctx context.Context, plotID int64, amount decimal.Decimal, onDate *time.Time) (*domain.AllocationCheck, error)
}

// DuplicateDetectorSvc scores a candidate plot registration against
// existing plots in the same field.
type DuplicateDetectorSvc interface {
	DetectDuplicates(ctx context.Context, fieldID int64, location string, excludePlotID *int64, radius *float64) (*domain.DuplicateReport, error)
}
