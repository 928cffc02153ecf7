package services

import (
	"context"
	"errors"
	"time"

	"github.com/agritrack/plot_capacity_app/internal/apperrors"
	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	portsrepo "github.com/agritrack/plot_capacity_app/internal/core/ports/repositories"
	portssvc "github.com/agritrack/plot_capacity_app/internal/core/ports/services"
	"github.com/agritrack/plot_capacity_app/internal/dto"
	"log/slog"
)

// fieldService implements the thin field collaborator operations.
type fieldService struct {
	BaseService
	coordinator *WriteCoordinator
	fieldRepo   portsrepo.FieldRepositoryFacade
}

// NewFieldService creates the field service.
func NewFieldService(coordinator *WriteCoordinator, fieldRepo portsrepo.FieldRepositoryFacade) portssvc.FieldSvcFacade {
	return &fieldService{coordinator: coordinator, fieldRepo: fieldRepo}
}

var _ portssvc.FieldSvcFacade = (*fieldService)(nil)

func (s *fieldService) CreateField(ctx context.Context, req dto.CreateFieldRequest, actorID string) (*domain.Field, error) {
	var field *domain.Field
	err := s.coordinator.Execute(ctx, actorID, func(txCtx context.Context, sessionID int64) ([]auditEntry, error) {
		now := time.Now()
		created := &domain.Field{
			Name:     req.Name,
			Location: req.Location,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		if err := s.fieldRepo.SaveField(txCtx, created); err != nil {
			return nil, err
		}
		field = created
		return []auditEntry{{
			Action:     domain.ActionCreate,
			EntityType: "field",
			EntityID:   created.FieldID,
			Details:    map[string]any{"name": created.Name, "location": created.Location},
		}}, nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Field created", slog.Int64("field_id", field.FieldID))
	return field, nil
}

func (s *fieldService) GetFieldByID(ctx context.Context, fieldID int64) (*domain.Field, error) {
	field, err := s.fieldRepo.FindFieldByID(ctx, fieldID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find field", slog.Int64("field_id", fieldID))
		}
		return nil, err
	}
	return field, nil
}

func (s *fieldService) ListFields(ctx context.Context) ([]domain.Field, error) {
	fields, err := s.fieldRepo.ListFields(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fields")
		return nil, err
	}
	return fields, nil
}

// UpdateField applies a typed patch of name/location.
func (s *fieldService) UpdateField(ctx context.Context, fieldID int64, req dto.UpdateFieldRequest, actorID string) (*domain.Field, error) {
	if req.Name == nil && req.Location == nil {
		return nil, apperrors.NewAppError(400, "no updatable fields supplied", apperrors.ErrValidation)
	}

	var updated *domain.Field
	err := s.coordinator.Execute(ctx, actorID, func(txCtx context.Context, sessionID int64) ([]auditEntry, error) {
		field, err := s.fieldRepo.FindFieldByID(txCtx, fieldID)
		if err != nil {
			return nil, err
		}

		details := map[string]any{}
		if req.Name != nil {
			details["nameBefore"] = field.Name
			details["nameAfter"] = *req.Name
			field.Name = *req.Name
		}
		if req.Location != nil {
			details["locationBefore"] = field.Location
			details["locationAfter"] = *req.Location
			field.Location = *req.Location
		}

		field.LastUpdatedAt = time.Now()
		field.LastUpdatedBy = actorID
		if err := s.fieldRepo.UpdateField(txCtx, *field); err != nil {
			return nil, err
		}
		updated = field
		return []auditEntry{{
			Action:     domain.ActionUpdate,
			EntityType: "field",
			EntityID:   fieldID,
			Details:    details,
		}}, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
