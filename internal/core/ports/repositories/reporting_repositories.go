package repositories

import (
	"context"

	"github.com/agritrack/plot_capacity_app/internal/core/domain"
)

// ReportingRepository exposes cross-plot aggregations that are pushed down
// into SQL rather than folded in memory.
type ReportingRepository interface {
	// GetFieldComparisonData returns one row per plot in the field with
	// consumed capacity and assignment counts aggregated by the store.
	// Plots without assignments appear with zero totals.
	GetFieldComparisonData(ctx context.Context, fieldID int64) ([]domain.PlotComparison, error)
}
