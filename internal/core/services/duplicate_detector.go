package services

import (
	"context"
	"errors"
	"strings"

	"github.com/agritrack/plot_capacity_app/internal/apperrors"
	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	portsrepo "github.com/agritrack/plot_capacity_app/internal/core/ports/repositories"
	portssvc "github.com/agritrack/plot_capacity_app/internal/core/ports/services"
	"github.com/agritrack/plot_capacity_app/internal/utils/similarity"
	"log/slog"
)

// Risk scoring weights and level thresholds.
const (
	riskWeightExact   = 100
	riskWeightSimilar = 20
	riskWeightNearby  = 10

	riskLevelHigh   = 100
	riskLevelMedium = 50
	riskLevelLow    = 20

	nearbyScoreThreshold = 0.70
)

// duplicateDetector scores a candidate plot registration against the
// existing plots of the same field. The similarity strategy is pluggable;
// the default compares location text as a stand-in for coordinates.
type duplicateDetector struct {
	BaseService
	plotRepo portsrepo.PlotReader
	strategy similarity.Strategy
}

// NewDuplicateDetector creates the detector with the given similarity
// strategy. A nil strategy falls back to character overlap.
func NewDuplicateDetector(plotRepo portsrepo.PlotReader, strategy similarity.Strategy) portssvc.DuplicateDetectorSvc {
	if strategy == nil {
		strategy = similarity.CharacterOverlap{}
	}
	return &duplicateDetector{plotRepo: plotRepo, strategy: strategy}
}

var _ portssvc.DuplicateDetectorSvc = (*duplicateDetector)(nil)

// DetectDuplicates classifies every existing plot of the field as an exact,
// similar or nearby match of the candidate location. Candidates are
// processed in ascending plot id, so identical inputs always yield the
// identical report. Nearby matching only applies when a radius is supplied.
func (s *duplicateDetector) DetectDuplicates(ctx context.Context, fieldID int64, location string, excludePlotID *int64, radius *float64) (*domain.DuplicateReport, error) {
	if strings.TrimSpace(location) == "" {
		return nil, apperrors.NewAppError(400, "location must not be empty", apperrors.ErrValidation)
	}

	plots, err := s.plotRepo.FindPlotsByFieldID(ctx, fieldID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to list plots for duplicate detection", slog.Int64("field_id", fieldID))
		}
		return nil, err
	}

	report := &domain.DuplicateReport{
		FieldID:        fieldID,
		Location:       location,
		ExactMatches:   []domain.PlotMatch{},
		SimilarMatches: []domain.PlotMatch{},
		NearbyMatches:  []domain.PlotMatch{},
	}

	candidate := strings.ToLower(strings.TrimSpace(location))
	for _, plot := range plots {
		if excludePlotID != nil && plot.PlotID == *excludePlotID {
			continue
		}
		if plot.Location == nil {
			continue
		}
		existing := strings.ToLower(strings.TrimSpace(*plot.Location))
		match := domain.PlotMatch{
			PlotID:   plot.PlotID,
			Location: *plot.Location,
			Score:    s.strategy.Score(location, *plot.Location),
		}

		switch {
		case existing == candidate:
			match.Score = 1
			report.ExactMatches = append(report.ExactMatches, match)
		case strings.Contains(existing, candidate) || strings.Contains(candidate, existing):
			report.SimilarMatches = append(report.SimilarMatches, match)
		case radius != nil && match.Score > nearbyScoreThreshold:
			report.NearbyMatches = append(report.NearbyMatches, match)
		}
	}

	// Any number of exact matches contributes the flat exact weight once;
	// similar and nearby matches accumulate per match.
	report.RiskScore = riskWeightSimilar*len(report.SimilarMatches) +
		riskWeightNearby*len(report.NearbyMatches)
	if len(report.ExactMatches) > 0 {
		report.RiskScore += riskWeightExact
	}
	report.RiskLevel = classifyRisk(report.RiskScore)
	return report, nil
}

func classifyRisk(score int) domain.RiskLevel {
	switch {
	case score >= riskLevelHigh:
		return domain.RiskHigh
	case score >= riskLevelMedium:
		return domain.RiskMedium
	case score >= riskLevelLow:
		return domain.RiskLow
	default:
		return domain.RiskNone
	}
}
