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
	"github.com/agritrack/plot_capacity_app/internal/utils/capacity"
	"github.com/shopspring/decimal"
	"log/slog"
)

var (
	nearFullThreshold   = decimal.NewFromInt(90)
	overcommitThreshold = decimal.NewFromInt(100)
	largeAllocationRate = decimal.NewFromFloat(0.5)
)

// capacityValidator decides whether a requested allocation fits a plot's
// remaining budget. Pure check: it never reserves capacity. The decision is
// only binding when the caller creates the assignment inside the same
// transaction the check ran in.
type capacityValidator struct {
	BaseService
	plotRepo       portsrepo.PlotReader
	assignmentRepo portsrepo.CapacityAggregator
}

// NewCapacityValidator creates the capacity validator service.
func NewCapacityValidator(plotRepo portsrepo.PlotReader, assignmentRepo portsrepo.CapacityAggregator) portssvc.CapacityValidatorSvc {
	return &capacityValidator{plotRepo: plotRepo, assignmentRepo: assignmentRepo}
}

var _ portssvc.CapacityValidatorSvc = (*capacityValidator)(nil)

// ValidateAllocation checks amount against the plot's remaining budget,
// optionally scoping consumption to one assignment date. Identical inputs
// over identical committed state always produce the identical result.
func (s *capacityValidator) ValidateAllocation(ctx context.Context, plotID int64, amount decimal.Decimal, onDate *time.Time) (*domain.AllocationCheck, error) {
	if !amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "allocation amount must be positive", apperrors.ErrValidation)
	}

	plot, err := s.plotRepo.FindPlotByID(ctx, plotID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find plot for validation", slog.Int64("plot_id", plotID))
		}
		return nil, err
	}

	consumed, err := s.assignmentRepo.SumCapacity(ctx, plotID, onDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum consumed capacity for validation", slog.Int64("plot_id", plotID))
		return nil, err
	}

	remaining := plot.TotalCapacity.Sub(consumed)
	utilizationAfter := capacity.InstantUtilization(consumed.Add(amount), plot.TotalCapacity)

	check := &domain.AllocationCheck{
		PlotID:           plotID,
		Requested:        amount,
		Consumed:         consumed,
		Remaining:        remaining,
		UtilizationAfter: utilizationAfter,
		Accepted:         remaining.GreaterThanOrEqual(amount),
		Warnings:         []domain.AllocationWarning{},
		Recommendations:  []domain.AllocationRecommendation{},
	}

	s.attachWarnings(check, plot, amount, utilizationAfter)
	if !check.Accepted {
		s.attachRecommendations(check, consumed, remaining, amount)
	}
	return check, nil
}

func (s *capacityValidator) attachWarnings(check *domain.AllocationCheck, plot *domain.Plot, amount, utilizationAfter decimal.Decimal) {
	if utilizationAfter.GreaterThan(overcommitThreshold) {
		// Only reachable when consumption already exceeds the budget,
		// e.g. after a capacity reduction.
		check.Warnings = append(check.Warnings, domain.AllocationWarning{
			Code:     domain.WarnOvercommit,
			Severity: domain.SeverityError,
			Message:  fmt.Sprintf("allocation would put plot at %s%% of capacity", decimalString(utilizationAfter)),
		})
	} else if utilizationAfter.GreaterThan(nearFullThreshold) {
		check.Warnings = append(check.Warnings, domain.AllocationWarning{
			Code:     domain.WarnNearFull,
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("allocation would put plot at %s%% of capacity", decimalString(utilizationAfter)),
		})
	}
	if plot.TotalCapacity.IsPositive() && amount.GreaterThan(plot.TotalCapacity.Mul(largeAllocationRate)) {
		check.Warnings = append(check.Warnings, domain.AllocationWarning{
			Code:     domain.WarnLargeAllocation,
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("single allocation of %s exceeds half the plot's capacity", decimalString(amount)),
		})
	}
}

func (s *capacityValidator) attachRecommendations(check *domain.AllocationCheck, consumed, remaining, amount decimal.Decimal) {
	needed := consumed.Add(amount)
	check.Recommendations = append(check.Recommendations,
		domain.AllocationRecommendation{
			Action:  domain.RecommendIncreaseCapacity,
			Message: fmt.Sprintf("raise plot capacity to %s to fit this allocation", decimalString(needed)),
		},
		domain.AllocationRecommendation{
			Action:  domain.RecommendReduceRequest,
			Message: fmt.Sprintf("reduce the request to at most %s", decimalString(remaining)),
		},
		domain.AllocationRecommendation{
			Action:  domain.RecommendReassign,
			Message: "move the allocation to another date or plot with spare capacity",
		},
	)
}
