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
	"github.com/shopspring/decimal"
	"log/slog"
)

const defaultListLimit = 20

// plotService implements plot reads and coordinator-routed plot mutations.
type plotService struct {
	BaseService
	coordinator    *WriteCoordinator
	plotRepo       portsrepo.PlotRepositoryFacade
	fieldRepo      portsrepo.FieldReader
	assignmentRepo portsrepo.AssignmentRepositoryFacade
	paymentRepo    portsrepo.PaymentRepositoryFacade
	detector       portssvc.DuplicateDetectorSvc
}

// NewPlotService creates the plot service.
func NewPlotService(coordinator *WriteCoordinator, plotRepo portsrepo.PlotRepositoryFacade, fieldRepo portsrepo.FieldReader, assignmentRepo portsrepo.AssignmentRepositoryFacade, paymentRepo portsrepo.PaymentRepositoryFacade, detector portssvc.DuplicateDetectorSvc) portssvc.PlotSvcFacade {
	return &plotService{
		coordinator:    coordinator,
		plotRepo:       plotRepo,
		fieldRepo:      fieldRepo,
		assignmentRepo: assignmentRepo,
		paymentRepo:    paymentRepo,
		detector:       detector,
	}
}

var _ portssvc.PlotSvcFacade = (*plotService)(nil)

func (s *plotService) GetPlotByID(ctx context.Context, plotID int64) (*domain.Plot, error) {
	plot, err := s.plotRepo.FindPlotByID(ctx, plotID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find plot", slog.Int64("plot_id", plotID))
		}
		return nil, err
	}
	return plot, nil
}

func (s *plotService) ListPlots(ctx context.Context, params dto.ListPlotsParams) ([]domain.Plot, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	plots, nextToken, err := s.plotRepo.ListPlots(ctx, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list plots")
		return nil, nil, err
	}
	return plots, nextToken, nil
}

func (s *plotService) ListPlotsByField(ctx context.Context, fieldID int64) ([]domain.Plot, error) {
	plots, err := s.plotRepo.FindPlotsByFieldID(ctx, fieldID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list plots by field", slog.Int64("field_id", fieldID))
		return nil, err
	}
	return plots, nil
}

// CreatePlot registers a plot. The duplicate report is advisory and never
// blocks on its own; only an exact location already present in the field
// (case-sensitive) is a hard conflict, checked inside the transaction.
func (s *plotService) CreatePlot(ctx context.Context, req dto.CreatePlotRequest, actorID string) (*domain.Plot, *domain.DuplicateReport, error) {
	if req.TotalCapacity.IsNegative() {
		return nil, nil, apperrors.NewAppError(400, "total capacity must not be negative", apperrors.ErrValidation)
	}
	if _, err := s.fieldRepo.FindFieldByID(ctx, req.FieldID); err != nil {
		return nil, nil, err
	}

	var report *domain.DuplicateReport
	if req.Location != nil {
		var err error
		report, err = s.detector.DetectDuplicates(ctx, req.FieldID, *req.Location, nil, nil)
		if err != nil {
			return nil, nil, err
		}
	}

	var plot *domain.Plot
	err := s.coordinator.Execute(ctx, actorID, func(txCtx context.Context, sessionID int64) ([]auditEntry, error) {
		created, err := s.insertPlot(txCtx, req, sessionID, actorID)
		if err != nil {
			return nil, err
		}
		plot = created
		return []auditEntry{{
			Action:     domain.ActionCreate,
			EntityType: "plot",
			EntityID:   created.PlotID,
			Details:    plotSnapshot(created),
		}}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.LogInfo(ctx, "Plot created", slog.Int64("plot_id", plot.PlotID), slog.Int64("field_id", plot.FieldID))
	return plot, report, nil
}

// insertPlot enforces location uniqueness and persists one plot inside an
// open transaction. Shared by single and bulk creation.
func (s *plotService) insertPlot(txCtx context.Context, req dto.CreatePlotRequest, sessionID int64, actorID string) (*domain.Plot, error) {
	if req.Location != nil {
		existing, err := s.plotRepo.FindPlotByFieldAndLocation(txCtx, req.FieldID, *req.Location)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.NewAppError(409,
				fmt.Sprintf("plot at location %q already exists in field", *req.Location),
				apperrors.ErrConflict)
		}
	}

	now := time.Now()
	plot := &domain.Plot{
		FieldID:       req.FieldID,
		Location:      req.Location,
		TotalCapacity: req.TotalCapacity,
		Status:        domain.PlotActive,
		SessionID:     sessionID,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.plotRepo.SavePlot(txCtx, plot); err != nil {
		return nil, err
	}
	return plot, nil
}

// UpdatePlot applies a typed patch: only location and notes are mutable
// here; capacity and status have their own operations. Notes are appended,
// never replaced.
func (s *plotService) UpdatePlot(ctx context.Context, plotID int64, req dto.UpdatePlotRequest, actorID string) (*domain.Plot, error) {
	if req.Location == nil && req.Notes == nil {
		return nil, apperrors.NewAppError(400, "no updatable fields supplied", apperrors.ErrValidation)
	}

	var updated *domain.Plot
	err := s.coordinator.Execute(ctx, actorID, func(txCtx context.Context, sessionID int64) ([]auditEntry, error) {
		plot, err := s.plotRepo.FindPlotByID(txCtx, plotID)
		if err != nil {
			return nil, err
		}

		details := map[string]any{}
		if req.Location != nil {
			if plot.Location == nil || *plot.Location != *req.Location {
				existing, err := s.plotRepo.FindPlotByFieldAndLocation(txCtx, plot.FieldID, *req.Location)
				if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
					return nil, err
				}
				if existing != nil && existing.PlotID != plotID {
					return nil, apperrors.NewAppError(409,
						fmt.Sprintf("plot at location %q already exists in field", *req.Location),
						apperrors.ErrConflict)
				}
			}
			if plot.Location != nil {
				details["locationBefore"] = *plot.Location
			}
			details["locationAfter"] = *req.Location
			plot.Location = req.Location
		}
		if req.Notes != nil && *req.Notes != "" {
			plot.Notes = appendNote(plot.Notes, *req.Notes)
			details["notesAppended"] = *req.Notes
		}

		plot.LastUpdatedAt = time.Now()
		plot.LastUpdatedBy = actorID
		if err := s.plotRepo.UpdatePlot(txCtx, *plot); err != nil {
			return nil, err
		}
		updated = plot
		return []auditEntry{{
			Action:     domain.ActionUpdate,
			EntityType: "plot",
			EntityID:   plotID,
			Details:    details,
		}}, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AdjustCapacity changes the declared budget explicitly. The budget never
// goes negative; a subtraction below zero is rejected, never clamped.
func (s *plotService) AdjustCapacity(ctx context.Context, plotID int64, req dto.AdjustCapacityRequest, actorID string) (*domain.Plot, error) {
	if req.Amount.IsNegative() {
		return nil, apperrors.NewAppError(400, "adjustment amount must not be negative", apperrors.ErrValidation)
	}

	var updated *domain.Plot
	err := s.coordinator.Execute(ctx, actorID, func(txCtx context.Context, sessionID int64) ([]auditEntry, error) {
		plot, err := s.plotRepo.FindPlotByID(txCtx, plotID)
		if err != nil {
			return nil, err
		}

		before := plot.TotalCapacity
		var after decimal.Decimal
		switch req.Mode {
		case domain.AdjustSet:
			after = req.Amount
		case domain.AdjustAdd:
			after = before.Add(req.Amount)
		case domain.AdjustSubtract:
			after = before.Sub(req.Amount)
		default:
			return nil, apperrors.NewAppError(400, fmt.Sprintf("unknown adjustment mode %q", req.Mode), apperrors.ErrValidation)
		}
		if after.IsNegative() {
			return nil, apperrors.NewAppError(400, "capacity adjustment would make the budget negative", apperrors.ErrValidation)
		}

		now := time.Now()
		if err := s.plotRepo.UpdatePlotCapacity(txCtx, plotID, after, actorID, now); err != nil {
			return nil, err
		}
		if req.Reason != "" {
			plot.Notes = appendNote(plot.Notes, req.Reason)
			plot.LastUpdatedAt = now
			plot.LastUpdatedBy = actorID
			if err := s.plotRepo.UpdatePlot(txCtx, *plot); err != nil {
				return nil, err
			}
		}

		plot.TotalCapacity = after
		updated = plot
		return []auditEntry{{
			Action:     domain.ActionCapacityAdjust,
			EntityType: "plot",
			EntityID:   plotID,
			Details: map[string]any{
				"mode":           string(req.Mode),
				"amount":         decimalString(req.Amount),
				"capacityBefore": decimalString(before),
				"capacityAfter":  decimalString(after),
				"reason":         req.Reason,
			},
		}}, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Plot capacity adjusted", slog.Int64("plot_id", plotID), slog.String("mode", string(req.Mode)))
	return updated, nil
}

// ChangeStatus transitions the plot's lifecycle status. Completing a plot
// cascades its active assignments to completed inside the same transaction;
// the cascade is part of the status change's single audit record.
func (s *plotService) ChangeStatus(ctx context.Context, plotID int64, status domain.PlotStatus, actorID string) (*domain.Plot, error) {
	if !domain.ValidPlotStatus(status) {
		return nil, apperrors.NewAppError(400, fmt.Sprintf("unknown plot status %q", status), apperrors.ErrValidation)
	}

	var updated *domain.Plot
	err := s.coordinator.Execute(ctx, actorID, func(txCtx context.Context, sessionID int64) ([]auditEntry, error) {
		plot, err := s.plotRepo.FindPlotByID(txCtx, plotID)
		if err != nil {
			return nil, err
		}
		if plot.Status == status {
			updated = plot
			return nil, nil
		}

		details, err := s.transitionStatus(txCtx, plot, status, actorID)
		if err != nil {
			return nil, err
		}
		updated = plot
		return []auditEntry{{
			Action:     domain.ActionStatusChange,
			EntityType: "plot",
			EntityID:   plotID,
			Details:    details,
		}}, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Plot status changed", slog.Int64("plot_id", plotID), slog.String("status", string(status)))
	return updated, nil
}

// transitionStatus performs one status transition inside an open
// transaction, mutating plot in place. Completing a plot also completes its
// active assignments; the cascade's ids are part of the returned details.
func (s *plotService) transitionStatus(txCtx context.Context, plot *domain.Plot, status domain.PlotStatus, actorID string) (map[string]any, error) {
	now := time.Now()
	details := map[string]any{
		"statusBefore": string(plot.Status),
		"statusAfter":  string(status),
	}
	if status == domain.PlotCompleted {
		cascaded, err := s.assignmentRepo.CompleteActiveByPlot(txCtx, plot.PlotID, actorID, now)
		if err != nil {
			return nil, err
		}
		details["cascadedAssignmentIDs"] = cascaded
	}

	if err := s.plotRepo.UpdatePlotStatus(txCtx, plot.PlotID, status, actorID, now); err != nil {
		return nil, err
	}

	plot.Status = status
	plot.LastUpdatedAt = now
	plot.LastUpdatedBy = actorID
	return details, nil
}

// BulkChangeStatus transitions several plots to the same status in one
// transaction. Unknown plots are isolated into the Failed list; plots
// already in the target status pass through untouched. Any persistence
// error rolls back the whole batch.
func (s *plotService) BulkChangeStatus(ctx context.Context, req dto.BulkChangePlotStatusRequest, actorID string) (*dto.BulkStatusResult, error) {
	if !domain.ValidPlotStatus(req.Status) {
		return nil, apperrors.NewAppError(400, fmt.Sprintf("unknown plot status %q", req.Status), apperrors.ErrValidation)
	}
	if len(req.PlotIDs) == 0 {
		return nil, apperrors.NewAppError(400, "at least one plot id is required", apperrors.ErrValidation)
	}

	result := &dto.BulkStatusResult{Updated: []dto.PlotResponse{}, Failed: []dto.BulkFailure{}}
	err := s.coordinator.Execute(ctx, actorID, func(txCtx context.Context, sessionID int64) ([]auditEntry, error) {
		entries := []auditEntry{}
		for i, plotID := range req.PlotIDs {
			plot, err := s.plotRepo.FindPlotByID(txCtx, plotID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					result.Failed = append(result.Failed, dto.BulkFailure{Index: i, Reason: fmt.Sprintf("plot %d does not exist", plotID)})
					continue
				}
				return nil, err
			}
			if plot.Status == req.Status {
				result.Updated = append(result.Updated, dto.ToPlotResponse(plot))
				continue
			}

			details, err := s.transitionStatus(txCtx, plot, req.Status, actorID)
			if err != nil {
				return nil, err
			}
			result.Updated = append(result.Updated, dto.ToPlotResponse(plot))
			entries = append(entries, auditEntry{
				Action:     domain.ActionStatusChange,
				EntityType: "plot",
				EntityID:   plot.PlotID,
				Details:    details,
			})
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Bulk plot status change finished",
		slog.Int("updated", len(result.Updated)), slog.Int("failed", len(result.Failed)),
		slog.String("status", string(req.Status)))
	return result, nil
}

// DeletePlot removes a plot. With dependent assignments or payments it is
// refused unless force is set, in which case the dependents are deleted
// first, all inside one transaction.
func (s *plotService) DeletePlot(ctx context.Context, plotID int64, force bool, actorID string) error {
	err := s.coordinator.Execute(ctx, actorID, func(txCtx context.Context, sessionID int64) ([]auditEntry, error) {
		plot, err := s.plotRepo.FindPlotByID(txCtx, plotID)
		if err != nil {
			return nil, err
		}

		assignmentCount, err := s.assignmentRepo.CountByPlot(txCtx, plotID)
		if err != nil {
			return nil, err
		}
		paymentCount, err := s.paymentRepo.CountByPlot(txCtx, plotID)
		if err != nil {
			return nil, err
		}

		details := plotSnapshot(plot)
		if assignmentCount > 0 || paymentCount > 0 {
			if !force {
				return nil, apperrors.NewAppError(409,
					fmt.Sprintf("plot has %d assignments and %d payments; use force to cascade", assignmentCount, paymentCount),
					apperrors.ErrConflict)
			}
			deletedAssignments, err := s.assignmentRepo.DeleteByPlot(txCtx, plotID)
			if err != nil {
				return nil, err
			}
			deletedPayments, err := s.paymentRepo.DeleteByPlot(txCtx, plotID)
			if err != nil {
				return nil, err
			}
			details["deletedAssignments"] = deletedAssignments
			details["deletedPayments"] = deletedPayments
		}

		if err := s.plotRepo.DeletePlot(txCtx, plotID); err != nil {
			return nil, err
		}
		return []auditEntry{{
			Action:     domain.ActionDelete,
			EntityType: "plot",
			EntityID:   plotID,
			Details:    details,
		}}, nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Plot deleted", slog.Int64("plot_id", plotID), slog.Bool("force", force))
	return nil
}

// BulkCreatePlots registers several plots in one transaction. Item-level
// validation failures are isolated into the Failed list while valid
// siblings proceed; any persistence error rolls back the whole batch.
func (s *plotService) BulkCreatePlots(ctx context.Context, req dto.BulkCreatePlotsRequest, actorID string) (*dto.BulkPlotResult, error) {
	if len(req.Plots) == 0 {
		return nil, apperrors.NewAppError(400, "at least one plot is required", apperrors.ErrValidation)
	}

	result := &dto.BulkPlotResult{Created: []dto.PlotResponse{}, Failed: []dto.BulkFailure{}}
	err := s.coordinator.Execute(ctx, actorID, func(txCtx context.Context, sessionID int64) ([]auditEntry, error) {
		entries := []auditEntry{}
		for i, item := range req.Plots {
			reason, err := s.validateBulkItem(txCtx, item)
			if err != nil {
				return nil, err
			}
			if reason != "" {
				result.Failed = append(result.Failed, dto.BulkFailure{Index: i, Reason: reason})
				continue
			}
			plot, err := s.insertPlot(txCtx, item, sessionID, actorID)
			if err != nil {
				if errors.Is(err, apperrors.ErrConflict) {
					result.Failed = append(result.Failed, dto.BulkFailure{Index: i, Reason: err.Error()})
					continue
				}
				// Persistence failure rolls the whole batch back.
				return nil, err
			}
			result.Created = append(result.Created, dto.ToPlotResponse(plot))
			entries = append(entries, auditEntry{
				Action:     domain.ActionBulkCreate,
				EntityType: "plot",
				EntityID:   plot.PlotID,
				Details:    plotSnapshot(plot),
			})
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Bulk plot creation finished",
		slog.Int("created", len(result.Created)), slog.Int("failed", len(result.Failed)))
	return result, nil
}

// validateBulkItem returns a rejection reason for one bulk item, or "".
// Infrastructure failures during the field lookup are returned as errors
// and abort the whole batch.
func (s *plotService) validateBulkItem(ctx context.Context, item dto.CreatePlotRequest) (string, error) {
	if item.FieldID == 0 {
		return "fieldID is required", nil
	}
	if item.TotalCapacity.IsNegative() {
		return "total capacity must not be negative", nil
	}
	if _, err := s.fieldRepo.FindFieldByID(ctx, item.FieldID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Sprintf("field %d does not exist", item.FieldID), nil
		}
		return "", err
	}
	return "", nil
}

// appendNote keeps plot notes append-only.
func appendNote(notes, addition string) string {
	if notes == "" {
		return addition
	}
	return notes + "\n" + addition
}

// plotSnapshot renders a plot for audit details.
func plotSnapshot(p *domain.Plot) map[string]any {
	snapshot := map[string]any{
		"fieldID":       p.FieldID,
		"totalCapacity": decimalString(p.TotalCapacity),
		"status":        string(p.Status),
	}
	if p.Location != nil {
		snapshot["location"] = *p.Location
	}
	return snapshot
}
