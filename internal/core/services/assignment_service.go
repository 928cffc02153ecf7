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
	"log/slog"
)

// assignmentService books capacity claims. Creation validates against the
// plot's remaining budget and persists inside the same transaction, so two
// concurrent claims cannot both pass validation against the same remaining
// capacity.
type assignmentService struct {
	BaseService
	coordinator    *WriteCoordinator
	assignmentRepo portsrepo.AssignmentRepositoryFacade
	plotRepo       portsrepo.PlotReader
	validator      portssvc.CapacityValidatorSvc
}

// NewAssignmentService creates the assignment service.
func NewAssignmentService(coordinator *WriteCoordinator, assignmentRepo portsrepo.AssignmentRepositoryFacade, plotRepo portsrepo.PlotReader, validator portssvc.CapacityValidatorSvc) portssvc.AssignmentSvcFacade {
	return &assignmentService{
		coordinator:    coordinator,
		assignmentRepo: assignmentRepo,
		plotRepo:       plotRepo,
		validator:      validator,
	}
}

var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

func (s *assignmentService) GetAssignmentByID(ctx context.Context, assignmentID int64) (*domain.Assignment, error) {
	assignment, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find assignment", slog.Int64("assignment_id", assignmentID))
		}
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentService) ListByPlot(ctx context.Context, plotID int64, params dto.ListAssignmentsParams) ([]domain.Assignment, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	assignments, nextToken, err := s.assignmentRepo.ListAssignmentsByPlot(ctx, plotID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list assignments by plot", slog.Int64("plot_id", plotID))
		return nil, nil, err
	}
	return assignments, nextToken, nil
}

func (s *assignmentService) ListByWorker(ctx context.Context, workerID int64, params dto.ListAssignmentsParams) ([]domain.Assignment, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	assignments, nextToken, err := s.assignmentRepo.ListAssignmentsByWorker(ctx, workerID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list assignments by worker", slog.Int64("worker_id", workerID))
		return nil, nil, err
	}
	return assignments, nextToken, nil
}

// CreateAssignment validates the claim against the plot's remaining budget
// and books it, both inside one transaction.
func (s *assignmentService) CreateAssignment(ctx context.Context, req dto.CreateAssignmentRequest, actorID string) (*domain.Assignment, error) {
	if !req.CapacityCount.IsPositive() {
		return nil, apperrors.NewAppError(400, "capacity count must be positive", apperrors.ErrValidation)
	}

	var assignment *domain.Assignment
	err := s.coordinator.Execute(ctx, actorID, func(txCtx context.Context, sessionID int64) ([]auditEntry, error) {
		created, err := s.bookAssignment(txCtx, req, sessionID, actorID)
		if err != nil {
			return nil, err
		}
		assignment = created
		return []auditEntry{{
			Action:     domain.ActionCreate,
			EntityType: "assignment",
			EntityID:   created.AssignmentID,
			Details:    assignmentSnapshot(created),
		}}, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Assignment created",
		slog.Int64("assignment_id", assignment.AssignmentID),
		slog.Int64("plot_id", assignment.PlotID))
	return assignment, nil
}

// bookAssignment revalidates and persists one claim inside an open
// transaction. Shared by single and bulk creation.
func (s *assignmentService) bookAssignment(txCtx context.Context, req dto.CreateAssignmentRequest, sessionID int64, actorID string) (*domain.Assignment, error) {
	plot, err := s.plotRepo.FindPlotByID(txCtx, req.PlotID)
	if err != nil {
		return nil, err
	}
	if plot.Status != domain.PlotActive {
		return nil, apperrors.NewAppError(409,
			fmt.Sprintf("plot %d is %s and does not accept assignments", plot.PlotID, plot.Status),
			apperrors.ErrConflict)
	}

	check, err := s.validator.ValidateAllocation(txCtx, req.PlotID, req.CapacityCount, nil)
	if err != nil {
		return nil, err
	}
	if !check.Accepted {
		return nil, apperrors.NewAppError(409,
			fmt.Sprintf("allocation of %s exceeds remaining capacity %s",
				decimalString(req.CapacityCount), decimalString(check.Remaining)),
			apperrors.ErrConflict)
	}

	now := time.Now()
	assignment := &domain.Assignment{
		PlotID:         req.PlotID,
		WorkerID:       req.WorkerID,
		AssignmentDate: req.AssignmentDate,
		CapacityCount:  req.CapacityCount,
		Status:         domain.AssignmentActive,
		SessionID:      sessionID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.assignmentRepo.SaveAssignment(txCtx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// BulkCreateAssignments books several claims in one transaction. Item-level
// validation and capacity rejections land in Failed while valid siblings
// proceed; a persistence error rolls the whole batch back. Each accepted
// item's validation sees the items booked before it.
func (s *assignmentService) BulkCreateAssignments(ctx context.Context, req dto.BulkCreateAssignmentsRequest, actorID string) (*dto.BulkAssignmentResult, error) {
	if len(req.Assignments) == 0 {
		return nil, apperrors.NewAppError(400, "at least one assignment is required", apperrors.ErrValidation)
	}

	result := &dto.BulkAssignmentResult{Created: []dto.AssignmentResponse{}, Failed: []dto.BulkFailure{}}
	err := s.coordinator.Execute(ctx, actorID, func(txCtx context.Context, sessionID int64) ([]auditEntry, error) {
		entries := []auditEntry{}
		for i, item := range req.Assignments {
			if !item.CapacityCount.IsPositive() {
				result.Failed = append(result.Failed, dto.BulkFailure{Index: i, Reason: "capacity count must be positive"})
				continue
			}
			assignment, err := s.bookAssignment(txCtx, item, sessionID, actorID)
			if err != nil {
				if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
					result.Failed = append(result.Failed, dto.BulkFailure{Index: i, Reason: err.Error()})
					continue
				}
				return nil, err
			}
			result.Created = append(result.Created, dto.ToAssignmentResponse(assignment))
			entries = append(entries, auditEntry{
				Action:     domain.ActionBulkCreate,
				EntityType: "assignment",
				EntityID:   assignment.AssignmentID,
				Details:    assignmentSnapshot(assignment),
			})
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Bulk assignment creation finished",
		slog.Int("created", len(result.Created)), slog.Int("failed", len(result.Failed)))
	return result, nil
}

func (s *assignmentService) CompleteAssignment(ctx context.Context, assignmentID int64, actorID string) (*domain.Assignment, error) {
	return s.transition(ctx, assignmentID, domain.AssignmentCompleted, actorID)
}

// CancelAssignment releases the assignment's capacity claim.
func (s *assignmentService) CancelAssignment(ctx context.Context, assignmentID int64, actorID string) (*domain.Assignment, error) {
	return s.transition(ctx, assignmentID, domain.AssignmentCancelled, actorID)
}

// transition moves an active assignment to a terminal status. Terminal
// states never transition again; repeating the same transition is a no-op.
func (s *assignmentService) transition(ctx context.Context, assignmentID int64, target domain.AssignmentStatus, actorID string) (*domain.Assignment, error) {
	var updated *domain.Assignment
	err := s.coordinator.Execute(ctx, actorID, func(txCtx context.Context, sessionID int64) ([]auditEntry, error) {
		assignment, err := s.assignmentRepo.FindAssignmentByID(txCtx, assignmentID)
		if err != nil {
			return nil, err
		}
		if assignment.Status == target {
			updated = assignment
			return nil, nil
		}
		if assignment.Status != domain.AssignmentActive {
			return nil, apperrors.NewAppError(409,
				fmt.Sprintf("assignment %d is %s and cannot become %s", assignmentID, assignment.Status, target),
				apperrors.ErrConflict)
		}

		now := time.Now()
		if err := s.assignmentRepo.UpdateAssignmentStatus(txCtx, assignmentID, target, actorID, now); err != nil {
			return nil, err
		}

		before := assignment.Status
		assignment.Status = target
		assignment.LastUpdatedAt = now
		assignment.LastUpdatedBy = actorID
		updated = assignment
		return []auditEntry{{
			Action:     domain.ActionStatusChange,
			EntityType: "assignment",
			EntityID:   assignmentID,
			Details: map[string]any{
				"statusBefore": string(before),
				"statusAfter":  string(target),
			},
		}}, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Assignment status changed",
		slog.Int64("assignment_id", assignmentID), slog.String("status", string(target)))
	return updated, nil
}

// assignmentSnapshot renders an assignment for audit details.
func assignmentSnapshot(a *domain.Assignment) map[string]any {
	return map[string]any{
		"plotID":         a.PlotID,
		"workerID":       a.WorkerID,
		"assignmentDate": a.AssignmentDate.Format("2006-01-02"),
		"capacityCount":  decimalString(a.CapacityCount),
	}
}
