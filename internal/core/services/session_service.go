package services

import (
	"context"
	"errors"

	"github.com/agritrack/plot_capacity_app/internal/apperrors"
	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	portsrepo "github.com/agritrack/plot_capacity_app/internal/core/ports/repositories"
	portssvc "github.com/agritrack/plot_capacity_app/internal/core/ports/services"
	"log/slog"
)

// sessionService reads accounting sessions. Session management itself lives
// outside this service.
type sessionService struct {
	BaseService
	sessionRepo portsrepo.SessionRepositoryFacade
}

// NewSessionService creates the session lookup service.
func NewSessionService(sessionRepo portsrepo.SessionRepositoryFacade) portssvc.SessionSvcFacade {
	return &sessionService{sessionRepo: sessionRepo}
}

var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

func (s *sessionService) GetSessionByID(ctx context.Context, sessionID int64) (*domain.Session, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find session", slog.Int64("session_id", sessionID))
		}
		return nil, err
	}
	return session, nil
}

func (s *sessionService) ListSessions(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.sessionRepo.ListSessions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sessions")
		return nil, err
	}
	return sessions, nil
}

// auditTrailService lists the audit history of one entity.
type auditTrailService struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditTrailService creates the audit trail lookup service.
func NewAuditTrailService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditTrailSvc {
	return &auditTrailService{auditRepo: auditRepo}
}

var _ portssvc.AuditTrailSvc = (*auditTrailService)(nil)

func (s *auditTrailService) ListByEntity(ctx context.Context, entityType string, entityID int64, limit int) ([]domain.AuditRecord, error) {
	records, err := s.auditRepo.ListByEntity(ctx, entityType, entityID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit records",
			slog.String("entity_type", entityType), slog.Int64("entity_id", entityID))
		return nil, err
	}
	return records, nil
}
