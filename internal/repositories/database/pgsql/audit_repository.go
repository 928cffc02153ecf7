package pgsql

import (
	"context"
	"errors"

	"github.com/agritrack/plot_capacity_app/internal/apperrors"
	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	portsrepo "github.com/agritrack/plot_capacity_app/internal/core/ports/repositories"
	"github.com/agritrack/plot_capacity_app/internal/models"
	"github.com/agritrack/plot_capacity_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the audit trail.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// SaveAuditRecord appends one audit record. Runs inside the mutation's
// transaction when one is bound to ctx.
func (r *PgxAuditRepository) SaveAuditRecord(ctx context.Context, record *domain.AuditRecord) error {
	m, err := mapping.ToModelAuditRecord(*record)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode audit details", err)
	}
	query := `
		INSERT INTO audit_records (actor_id, action, entity_type, entity_id, details, session_id, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING audit_id;
	`
	err = r.conn(ctx).QueryRow(ctx, query,
		m.ActorID,
		m.Action,
		m.EntityType,
		m.EntityID,
		m.Details,
		m.SessionID,
		m.Timestamp,
	).Scan(&record.AuditID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit record", err)
	}
	return nil
}

// ListByEntity retrieves the most recent audit records for one entity.
func (r *PgxAuditRepository) ListByEntity(ctx context.Context, entityType string, entityID int64, limit int) ([]domain.AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT audit_id, actor_id, action, entity_type, entity_id, details, session_id, timestamp
		FROM audit_records
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY timestamp DESC, audit_id DESC
		LIMIT $3;
	`
	rows, err := r.conn(ctx).Query(ctx, query, entityType, entityID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit records", err)
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		var m models.AuditRecord
		if err := rows.Scan(
			&m.AuditID,
			&m.ActorID,
			&m.Action,
			&m.EntityType,
			&m.EntityID,
			&m.Details,
			&m.SessionID,
			&m.Timestamp,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit record row", err)
		}
		records = append(records, mapping.ToDomainAuditRecord(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit record rows", err)
	}
	return records, nil
}

// PgxSessionRepository reads accounting sessions.
type PgxSessionRepository struct {
	BaseRepository
}

func newPgxSessionRepository(pool *pgxpool.Pool) portsrepo.SessionRepositoryFacade {
	return &PgxSessionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SessionRepositoryFacade = (*PgxSessionRepository)(nil)

const sessionColumns = `session_id, name, starts_on, ends_on, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSession(row pgx.Row) (models.Session, error) {
	var m models.Session
	err := row.Scan(
		&m.SessionID,
		&m.Name,
		&m.StartsOn,
		&m.EndsOn,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindSessionByID retrieves a session by its ID.
func (r *PgxSessionRepository) FindSessionByID(ctx context.Context, sessionID int64) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE session_id = $1;`
	m, err := scanSession(r.conn(ctx).QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find session", err)
	}
	s := mapping.ToDomainSession(m)
	return &s, nil
}

// ListSessions retrieves all sessions, newest period first.
func (r *PgxSessionRepository) ListSessions(ctx context.Context) ([]domain.Session, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+sessionColumns+` FROM sessions ORDER BY starts_on DESC;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sessions", err)
	}
	defer rows.Close()

	sessions := []domain.Session{}
	for rows.Next() {
		m, err := scanSession(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan session row", err)
		}
		sessions = append(sessions, mapping.ToDomainSession(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating session rows", err)
	}
	return sessions, nil
}
