package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/agritrack/plot_capacity_app/internal/apperrors"
	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	portsrepo "github.com/agritrack/plot_capacity_app/internal/core/ports/repositories"
	"github.com/agritrack/plot_capacity_app/internal/models"
	"github.com/agritrack/plot_capacity_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFieldRepository struct {
	BaseRepository
}

// newPgxFieldRepository creates a new repository for field data.
func newPgxFieldRepository(pool *pgxpool.Pool) portsrepo.FieldRepositoryFacade {
	return &PgxFieldRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FieldRepositoryFacade = (*PgxFieldRepository)(nil)

const fieldColumns = `field_id, name, location, created_at, created_by, last_updated_at, last_updated_by`

func scanField(row pgx.Row) (models.Field, error) {
	var m models.Field
	err := row.Scan(
		&m.FieldID,
		&m.Name,
		&m.Location,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveField inserts a field and populates the server-assigned id.
func (r *PgxFieldRepository) SaveField(ctx context.Context, field *domain.Field) error {
	m := mapping.ToModelField(*field)
	query := `
		INSERT INTO fields (name, location, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING field_id;
	`
	err := r.conn(ctx).QueryRow(ctx, query,
		m.Name,
		m.Location,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&field.FieldID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert field", err)
	}
	return nil
}

// FindFieldByID retrieves a field by its ID.
func (r *PgxFieldRepository) FindFieldByID(ctx context.Context, fieldID int64) (*domain.Field, error) {
	query := `SELECT ` + fieldColumns + ` FROM fields WHERE field_id = $1;`
	m, err := scanField(r.conn(ctx).QueryRow(ctx, query, fieldID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find field by ID "+strconv.FormatInt(fieldID, 10), err)
	}
	f := mapping.ToDomainField(m)
	return &f, nil
}

// ListFields retrieves all fields ordered by id.
func (r *PgxFieldRepository) ListFields(ctx context.Context) ([]domain.Field, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+fieldColumns+` FROM fields ORDER BY field_id;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fields", err)
	}
	defer rows.Close()

	fields := []domain.Field{}
	for rows.Next() {
		m, err := scanField(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan field row", err)
		}
		fields = append(fields, mapping.ToDomainField(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating field rows", err)
	}
	return fields, nil
}

// UpdateField persists name/location changes.
func (r *PgxFieldRepository) UpdateField(ctx context.Context, field domain.Field) error {
	m := mapping.ToModelField(field)
	query := `
		UPDATE fields
		SET name = $2,
		    location = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE field_id = $1;
	`
	cmdTag, err := r.conn(ctx).Exec(ctx, query, m.FieldID, m.Name, m.Location, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update field", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("field " + strconv.FormatInt(field.FieldID, 10) + " not found for update")
	}
	return nil
}
