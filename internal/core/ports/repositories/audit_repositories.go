package repositories

import (
	"context"

	"github.com/agritrack/plot_capacity_app/internal/core/domain"
)

// AuditRepositoryFacade persists and reads the append-only audit trail.
type AuditRepositoryFacade interface {
	// SaveAuditRecord appends one audit record and populates its
	// server-assigned id. Called inside the same transaction as the
	// mutation it describes.
	SaveAuditRecord(ctx context.Context, record *domain.AuditRecord) error

	// ListByEntity retrieves the most recent audit records for one entity,
	// newest first.
	ListByEntity(ctx context.Context, entityType string, entityID int64, limit int) ([]domain.AuditRecord, error)
}

// SessionRepositoryFacade reads accounting sessions. Session management
// itself is outside this core; writes only need existence checks.
type SessionRepositoryFacade interface {
	// FindSessionByID retrieves a single session.
	FindSessionByID(ctx context.Context, sessionID int64) (*domain.Session, error)

	// ListSessions retrieves all sessions ordered by start date descending.
	ListSessions(ctx context.Context) ([]domain.Session, error)
}
