package services

import (
	"context"
	"time"

	"github.com/agritrack/plot_capacity_app/internal/apperrors"
	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	portsrepo "github.com/agritrack/plot_capacity_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"log/slog"
)

// WriteCoordinator funnels every mutation through one transaction. It checks
// the default-session precondition before a transaction opens, runs the
// mutation, and writes one audit record per affected entity in the same
// transaction. Failure anywhere inside the callback rolls the whole unit
// back; the transaction is always released.
type WriteCoordinator struct {
	BaseService
	txManager        portsrepo.TransactionManager
	sessionRepo      portsrepo.SessionRepositoryFacade
	auditRepo        portsrepo.AuditRepositoryFacade
	defaultSessionID int64
}

// NewWriteCoordinator creates a coordinator. defaultSessionID comes from
// configuration; zero means unset.
func NewWriteCoordinator(txManager portsrepo.TransactionManager, sessionRepo portsrepo.SessionRepositoryFacade, auditRepo portsrepo.AuditRepositoryFacade, defaultSessionID int64) *WriteCoordinator {
	return &WriteCoordinator{
		txManager:        txManager,
		sessionRepo:      sessionRepo,
		auditRepo:        auditRepo,
		defaultSessionID: defaultSessionID,
	}
}

// auditEntry is one pending audit record produced by a mutation callback.
type auditEntry struct {
	Action     domain.AuditAction
	EntityType string
	EntityID   int64
	Details    map[string]any
}

// mutationFn performs the writes of one unit of work. It receives the
// transactional context and the resolved session id, and returns the audit
// entries describing what it changed.
type mutationFn func(ctx context.Context, sessionID int64) ([]auditEntry, error)

// Execute resolves the default session, opens a transaction, runs fn inside
// it, writes fn's audit entries in the same transaction and commits. Any
// error from fn rolls everything back unchanged.
func (c *WriteCoordinator) Execute(ctx context.Context, actorID string, fn mutationFn) error {
	sessionID, err := c.resolveSession(ctx)
	if err != nil {
		return err
	}

	return c.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		entries, err := fn(txCtx, sessionID)
		if err != nil {
			return err
		}
		c.writeAudits(txCtx, actorID, sessionID, entries)
		return nil
	})
}

// resolveSession enforces the write precondition: a configured, existing
// default session. Runs before any transaction opens.
func (c *WriteCoordinator) resolveSession(ctx context.Context) (int64, error) {
	if c.defaultSessionID == 0 {
		return 0, apperrors.NewAppError(412, "no default session configured", apperrors.ErrPreconditionFailed)
	}
	if _, err := c.sessionRepo.FindSessionByID(ctx, c.defaultSessionID); err != nil {
		c.LogError(ctx, err, "Default session lookup failed", slog.Int64("session_id", c.defaultSessionID))
		return 0, apperrors.NewAppError(412, "configured default session does not exist", apperrors.ErrPreconditionFailed)
	}
	return c.defaultSessionID, nil
}

// writeAudits appends one record per entry. A failed audit write is logged
// and does not fail the mutation.
func (c *WriteCoordinator) writeAudits(ctx context.Context, actorID string, sessionID int64, entries []auditEntry) {
	now := time.Now()
	for _, e := range entries {
		record := domain.AuditRecord{
			ActorID:    actorID,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Details:    e.Details,
			SessionID:  sessionID,
			Timestamp:  now,
		}
		if err := c.auditRepo.SaveAuditRecord(ctx, &record); err != nil {
			c.LogError(ctx, err, "Failed to write audit record",
				slog.String("entity_type", e.EntityType),
				slog.Int64("entity_id", e.EntityID),
				slog.String("action", string(e.Action)))
		}
	}
}

// decimalString renders a decimal for audit details with boundary rounding.
func decimalString(d decimal.Decimal) string {
	return d.Round(2).String()
}
