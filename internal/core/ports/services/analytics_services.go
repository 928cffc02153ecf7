package services

import (
	"context"
	"time"

	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	"github.com/agritrack/plot_capacity_app/internal/dto"
)

// AnalyticsSvcFacade derives time-series and ranking views from assignment
// and payment history. All operations degrade to zero-filled shapes when
// there is no underlying data; "no data" is never an error.
type AnalyticsSvcFacade interface {
	// Utilization reports consumption over [from, to]: the instantaneous
	// rate and the period rate spread over the period's day count.
	Utilization(ctx context.Context, plotID int64, from, to time.Time) (*domain.UtilizationReport, error)

	// Trends returns daily buckets with growth classification plus weekly
	// windows and monthly groups, best day of week and peak day.
	Trends(ctx context.Context, plotID int64, from, to time.Time) (*domain.PlotTrendReport, error)

	// WorkerProductivity ranks workers on a plot by total capacity
	// consumed within [from, to].
	WorkerProductivity(ctx context.Context, plotID int64, from, to time.Time) ([]domain.WorkerProductivity, error)

	// CapacityRecommendations evaluates utilization thresholds and the
	// 20%-buffer demand check for one plot.
	CapacityRecommendations(ctx context.Context, plotID int64) ([]domain.CapacityRecommendation, error)

	// CompareField returns one comparison row per plot in the field.
	CompareField(ctx context.Context, fieldID int64) ([]domain.PlotComparison, error)

	// PaymentSummary aggregates a plot's payments over [from, to].
	PaymentSummary(ctx context.Context, plotID int64, from, to time.Time) (*domain.PaymentSummary, error)

	// PlotReport bundles utilization, trends, productivity,
	// recommendations and payments into one response.
	PlotReport(ctx context.Context, plotID int64, from, to time.Time) (*dto.PlotReportResponse, error)
}
