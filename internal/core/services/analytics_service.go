package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agritrack/plot_capacity_app/internal/apperrors"
	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	portsrepo "github.com/agritrack/plot_capacity_app/internal/core/ports/repositories"
	portssvc "github.com/agritrack/plot_capacity_app/internal/core/ports/services"
	"github.com/agritrack/plot_capacity_app/internal/dto"
	"github.com/agritrack/plot_capacity_app/internal/utils/capacity"
	"github.com/shopspring/decimal"
	"log/slog"
)

// Utilization thresholds for capacity recommendations, in percent, and the
// demand buffer factors for the 30-day check.
var (
	underutilizedBelow = decimal.NewFromInt(50)
	overutilizedAbove  = decimal.NewFromInt(90)
	demandBufferFactor = decimal.NewFromFloat(1.2)
	shortageBelowRate  = decimal.NewFromFloat(0.8)
	excessAboveRate    = decimal.NewFromFloat(1.5)
)

const demandWindowDays = 30

// analyticsService derives time-series and ranking views from committed
// assignment and payment history. Reads only; empty data yields zero-filled
// shapes rather than errors.
type analyticsService struct {
	BaseService
	plotRepo       portsrepo.PlotReader
	assignmentRepo portsrepo.CapacityAggregator
	paymentRepo    portsrepo.PaymentReader
	workerRepo     portsrepo.WorkerReader
	reportingRepo  portsrepo.ReportingRepository
}

// NewAnalyticsService creates the analytics engine.
func NewAnalyticsService(plotRepo portsrepo.PlotReader, assignmentRepo portsrepo.CapacityAggregator, paymentRepo portsrepo.PaymentReader, workerRepo portsrepo.WorkerReader, reportingRepo portsrepo.ReportingRepository) portssvc.AnalyticsSvcFacade {
	return &analyticsService{
		plotRepo:       plotRepo,
		assignmentRepo: assignmentRepo,
		paymentRepo:    paymentRepo,
		workerRepo:     workerRepo,
		reportingRepo:  reportingRepo,
	}
}

var _ portssvc.AnalyticsSvcFacade = (*analyticsService)(nil)

// Utilization reports consumption over [from, to]. The day count is
// inclusive of both endpoints.
func (s *analyticsService) Utilization(ctx context.Context, plotID int64, from, to time.Time) (*domain.UtilizationReport, error) {
	plot, err := s.plotRepo.FindPlotByID(ctx, plotID)
	if err != nil {
		return nil, err
	}

	byDay, err := s.assignmentRepo.SumCapacityByDay(ctx, plotID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate daily consumption", slog.Int64("plot_id", plotID))
		return nil, err
	}
	consumed := decimal.Zero
	for _, d := range byDay {
		consumed = consumed.Add(d.Total)
	}

	days := periodDays(from, to)
	return &domain.UtilizationReport{
		PlotID:          plotID,
		TotalCapacity:   plot.TotalCapacity,
		Consumed:        consumed,
		UtilizationRate: capacity.InstantUtilization(consumed, plot.TotalCapacity),
		PeriodDays:      days,
		PeriodRate:      capacity.PeriodUtilization(consumed, plot.TotalCapacity, days),
	}, nil
}

// Trends builds the full time-series view: daily buckets with growth
// classification, fixed 7-day windows, monthly groups, best weekday and
// peak day. Assignments are streamed rather than loaded through pagination.
func (s *analyticsService) Trends(ctx context.Context, plotID int64, from, to time.Time) (*domain.PlotTrendReport, error) {
	if _, err := s.plotRepo.FindPlotByID(ctx, plotID); err != nil {
		return nil, err
	}

	assignments, err := s.collectAssignments(ctx, plotID, from, to)
	if err != nil {
		return nil, err
	}

	daily := capacity.DailyBuckets(assignments)
	return &domain.PlotTrendReport{
		PlotID:        plotID,
		Daily:         daily,
		Weekly:        capacity.WeeklyBuckets(daily),
		Monthly:       capacity.MonthlyBuckets(daily),
		BestDayOfWeek: capacity.BestDayOfWeek(daily),
		PeakDay:       capacity.PeakDay(daily),
	}, nil
}

// WorkerProductivity ranks workers on a plot within [from, to] and resolves
// display names. Missing workers keep an empty name.
func (s *analyticsService) WorkerProductivity(ctx context.Context, plotID int64, from, to time.Time) ([]domain.WorkerProductivity, error) {
	if _, err := s.plotRepo.FindPlotByID(ctx, plotID); err != nil {
		return nil, err
	}

	assignments, err := s.collectAssignments(ctx, plotID, from, to)
	if err != nil {
		return nil, err
	}

	ranked := capacity.WorkerProductivity(assignments)
	if len(ranked) == 0 {
		return ranked, nil
	}

	ids := make([]int64, len(ranked))
	for i, p := range ranked {
		ids[i] = p.WorkerID
	}
	workers, err := s.workerRepo.FindWorkersByIDs(ctx, ids)
	if err != nil {
		// Names are cosmetic; the ranking stands without them.
		s.LogError(ctx, err, "Failed to resolve worker names", slog.Int64("plot_id", plotID))
		return ranked, nil
	}
	for i := range ranked {
		if w, ok := workers[ranked[i].WorkerID]; ok {
			ranked[i].WorkerName = w.Name
		}
	}
	return ranked, nil
}

// CapacityRecommendations evaluates the utilization thresholds and the
// independent demand-buffer check over the trailing 30 days.
func (s *analyticsService) CapacityRecommendations(ctx context.Context, plotID int64) ([]domain.CapacityRecommendation, error) {
	plot, err := s.plotRepo.FindPlotByID(ctx, plotID)
	if err != nil {
		return nil, err
	}

	consumed, err := s.assignmentRepo.SumCapacity(ctx, plotID, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum consumed capacity", slog.Int64("plot_id", plotID))
		return nil, err
	}

	recommendations := []domain.CapacityRecommendation{}
	utilization := capacity.InstantUtilization(consumed, plot.TotalCapacity)
	switch {
	case utilization.LessThan(underutilizedBelow):
		recommendations = append(recommendations, domain.CapacityRecommendation{
			Code:     domain.RecUnderutilized,
			Priority: domain.PriorityMedium,
			Message:  fmt.Sprintf("plot is at %s%% of capacity; consider reducing the budget or adding assignments", decimalString(utilization)),
		})
	case utilization.GreaterThan(overutilizedAbove):
		recommendations = append(recommendations, domain.CapacityRecommendation{
			Code:     domain.RecOverutilized,
			Priority: domain.PriorityHigh,
			Message:  fmt.Sprintf("plot is at %s%% of capacity; consider raising the budget", decimalString(utilization)),
		})
	default:
		recommendations = append(recommendations, domain.CapacityRecommendation{
			Code:     domain.RecOptimal,
			Priority: domain.PriorityLow,
			Message:  fmt.Sprintf("plot is at %s%% of capacity", decimalString(utilization)),
		})
	}

	if buffered := s.demandBuffer(ctx, plotID); buffered != nil && buffered.IsPositive() {
		switch {
		case plot.TotalCapacity.LessThan(buffered.Mul(shortageBelowRate)):
			recommendations = append(recommendations, domain.CapacityRecommendation{
				Code:     domain.RecCapacityShortage,
				Priority: domain.PriorityHigh,
				Message:  fmt.Sprintf("capacity %s is below buffered demand %s", decimalString(plot.TotalCapacity), decimalString(*buffered)),
			})
		case plot.TotalCapacity.GreaterThan(buffered.Mul(excessAboveRate)):
			recommendations = append(recommendations, domain.CapacityRecommendation{
				Code:     domain.RecCapacityExcess,
				Priority: domain.PriorityLow,
				Message:  fmt.Sprintf("capacity %s far exceeds buffered demand %s", decimalString(plot.TotalCapacity), decimalString(*buffered)),
			})
		}
	}
	return recommendations, nil
}

// demandBuffer computes 1.2x the average daily demand over the trailing 30
// days. Nil when the window holds no consumption or the read fails; the
// buffer check is advisory and never blocks the threshold findings.
func (s *analyticsService) demandBuffer(ctx context.Context, plotID int64) *decimal.Decimal {
	to := time.Now()
	from := to.AddDate(0, 0, -demandWindowDays)
	byDay, err := s.assignmentRepo.SumCapacityByDay(ctx, plotID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to read demand window", slog.Int64("plot_id", plotID))
		return nil
	}
	if len(byDay) == 0 {
		return nil
	}
	total := decimal.Zero
	for _, d := range byDay {
		total = total.Add(d.Total)
	}
	buffered := total.Div(decimal.NewFromInt(demandWindowDays)).Mul(demandBufferFactor)
	return &buffered
}

// CompareField returns one comparison row per plot of the field, aggregated
// in the store.
func (s *analyticsService) CompareField(ctx context.Context, fieldID int64) ([]domain.PlotComparison, error) {
	comparisons, err := s.reportingRepo.GetFieldComparisonData(ctx, fieldID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load field comparison data", slog.Int64("field_id", fieldID))
		return nil, err
	}
	return comparisons, nil
}

// PaymentSummary aggregates a plot's payments over [from, to].
func (s *analyticsService) PaymentSummary(ctx context.Context, plotID int64, from, to time.Time) (*domain.PaymentSummary, error) {
	if _, err := s.plotRepo.FindPlotByID(ctx, plotID); err != nil {
		return nil, err
	}
	summary, err := s.paymentRepo.SummarizeByPlot(ctx, plotID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize payments", slog.Int64("plot_id", plotID))
		return nil, err
	}
	summary.PlotID = plotID
	return &summary, nil
}

// PlotReport bundles every analytics view of one plot into one response.
func (s *analyticsService) PlotReport(ctx context.Context, plotID int64, from, to time.Time) (*dto.PlotReportResponse, error) {
	utilization, err := s.Utilization(ctx, plotID, from, to)
	if err != nil {
		return nil, err
	}
	trends, err := s.Trends(ctx, plotID, from, to)
	if err != nil {
		return nil, err
	}
	productivity, err := s.WorkerProductivity(ctx, plotID, from, to)
	if err != nil {
		return nil, err
	}
	recommendations, err := s.CapacityRecommendations(ctx, plotID)
	if err != nil {
		return nil, err
	}
	payments, err := s.PaymentSummary(ctx, plotID, from, to)
	if err != nil {
		return nil, err
	}

	return &dto.PlotReportResponse{
		Utilization:     *utilization,
		Trends:          *trends,
		Productivity:    productivity,
		Recommendations: recommendations,
		Payments:        *payments,
	}, nil
}

// collectAssignments streams a plot's assignments for the period into a
// slice for the pure aggregation helpers.
func (s *analyticsService) collectAssignments(ctx context.Context, plotID int64, from, to time.Time) ([]domain.Assignment, error) {
	assignments := []domain.Assignment{}
	err := s.assignmentRepo.ForEachAssignmentInPeriod(ctx, plotID, from, to, func(a domain.Assignment) error {
		assignments = append(assignments, a)
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to stream assignments for period", slog.Int64("plot_id", plotID))
		}
		return nil, err
	}
	return assignments, nil
}

// periodDays counts calendar days in [from, to], inclusive of both ends.
func periodDays(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}
