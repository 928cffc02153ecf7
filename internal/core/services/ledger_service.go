package services

import (
	"context"
	"errors"
	"time"

	"github.com/agritrack/plot_capacity_app/internal/apperrors"
	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	portsrepo "github.com/agritrack/plot_capacity_app/internal/core/ports/repositories"
	portssvc "github.com/agritrack/plot_capacity_app/internal/core/ports/services"
	"github.com/agritrack/plot_capacity_app/internal/utils/capacity"
	"github.com/shopspring/decimal"
	"log/slog"
)

// ledgerService answers capacity-consumption questions from committed state.
// All reads; aggregation is pushed down into the store.
type ledgerService struct {
	BaseService
	plotRepo       portsrepo.PlotReader
	assignmentRepo portsrepo.CapacityAggregator
}

// NewLedgerService creates the capacity ledger service.
func NewLedgerService(plotRepo portsrepo.PlotReader, assignmentRepo portsrepo.CapacityAggregator) portssvc.CapacityLedgerSvc {
	return &ledgerService{plotRepo: plotRepo, assignmentRepo: assignmentRepo}
}

var _ portssvc.CapacityLedgerSvc = (*ledgerService)(nil)

func (s *ledgerService) ConsumedCapacity(ctx context.Context, plotID int64, onDate *time.Time) (decimal.Decimal, error) {
	total, err := s.assignmentRepo.SumCapacity(ctx, plotID, onDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum consumed capacity", slog.Int64("plot_id", plotID))
		return decimal.Zero, err
	}
	return total, nil
}

func (s *ledgerService) ConsumedByWorker(ctx context.Context, plotID int64) ([]domain.WorkerConsumption, error) {
	breakdown, err := s.assignmentRepo.SumCapacityByWorker(ctx, plotID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum capacity by worker", slog.Int64("plot_id", plotID))
		return nil, err
	}
	if breakdown == nil {
		breakdown = []domain.WorkerConsumption{}
	}
	return breakdown, nil
}

func (s *ledgerService) ConsumedByDay(ctx context.Context, plotID int64, from, to time.Time) ([]domain.DayConsumption, error) {
	breakdown, err := s.assignmentRepo.SumCapacityByDay(ctx, plotID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum capacity by day", slog.Int64("plot_id", plotID))
		return nil, err
	}
	if breakdown == nil {
		breakdown = []domain.DayConsumption{}
	}
	return breakdown, nil
}

// PlotUsage combines the plot's declared budget with its consumed total.
// A plot with zero capacity reports zero utilization.
func (s *ledgerService) PlotUsage(ctx context.Context, plotID int64) (*domain.PlotUsage, error) {
	plot, err := s.plotRepo.FindPlotByID(ctx, plotID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find plot for usage", slog.Int64("plot_id", plotID))
		}
		return nil, err
	}

	consumed, err := s.assignmentRepo.SumCapacity(ctx, plotID, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum consumed capacity for usage", slog.Int64("plot_id", plotID))
		return nil, err
	}

	remaining := plot.TotalCapacity.Sub(consumed)
	return &domain.PlotUsage{
		PlotID:        plotID,
		TotalCapacity: plot.TotalCapacity,
		Consumed:      consumed,
		Remaining:     remaining,
		Utilization:   capacity.InstantUtilization(consumed, plot.TotalCapacity),
		Overcommitted: remaining.IsNegative(),
	}, nil
}
