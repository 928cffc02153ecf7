package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/agritrack/plot_capacity_app/internal/apperrors"
	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	portsrepo "github.com/agritrack/plot_capacity_app/internal/core/ports/repositories"
	"github.com/agritrack/plot_capacity_app/internal/models"
	"github.com/agritrack/plot_capacity_app/internal/utils/mapping"
	"github.com/agritrack/plot_capacity_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxPlotRepository struct {
	BaseRepository
}

// newPgxPlotRepository creates a new repository for plot data.
func newPgxPlotRepository(pool *pgxpool.Pool) portsrepo.PlotRepositoryFacade {
	return &PgxPlotRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PlotRepositoryFacade = (*PgxPlotRepository)(nil)

const plotColumns = `plot_id, field_id, location, total_capacity, status, session_id, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPlot(row pgx.Row) (models.Plot, error) {
	var m models.Plot
	err := row.Scan(
		&m.PlotID,
		&m.FieldID,
		&m.Location,
		&m.TotalCapacity,
		&m.Status,
		&m.SessionID,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePlot inserts a plot and populates the server-assigned id.
func (r *PgxPlotRepository) SavePlot(ctx context.Context, plot *domain.Plot) error {
	m := mapping.ToModelPlot(*plot)
	query := `
		INSERT INTO plots (field_id, location, total_capacity, status, session_id, notes,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING plot_id;
	`
	err := r.conn(ctx).QueryRow(ctx, query,
		m.FieldID,
		m.Location,
		m.TotalCapacity,
		m.Status,
		m.SessionID,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&plot.PlotID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert plot", err)
	}
	return nil
}

// FindPlotByID retrieves a plot by its ID.
func (r *PgxPlotRepository) FindPlotByID(ctx context.Context, plotID int64) (*domain.Plot, error) {
	query := `SELECT ` + plotColumns + ` FROM plots WHERE plot_id = $1;`
	m, err := scanPlot(r.conn(ctx).QueryRow(ctx, query, plotID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find plot by ID "+strconv.FormatInt(plotID, 10), err)
	}
	p := mapping.ToDomainPlot(m)
	return &p, nil
}

// FindPlotsByFieldID retrieves all plots of a field ordered by ascending id.
// The ordering is load-bearing for deterministic duplicate detection.
func (r *PgxPlotRepository) FindPlotsByFieldID(ctx context.Context, fieldID int64) ([]domain.Plot, error) {
	query := `SELECT ` + plotColumns + ` FROM plots WHERE field_id = $1 ORDER BY plot_id;`
	rows, err := r.conn(ctx).Query(ctx, query, fieldID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query plots for field", err)
	}
	defer rows.Close()

	plots := []domain.Plot{}
	for rows.Next() {
		m, err := scanPlot(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan plot row", err)
		}
		plots = append(plots, mapping.ToDomainPlot(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating plot rows", err)
	}
	return plots, nil
}

// FindPlotByFieldAndLocation retrieves the plot at an exact, case-sensitive
// location within a field.
func (r *PgxPlotRepository) FindPlotByFieldAndLocation(ctx context.Context, fieldID int64, location string) (*domain.Plot, error) {
	query := `SELECT ` + plotColumns + ` FROM plots WHERE field_id = $1 AND location = $2;`
	m, err := scanPlot(r.conn(ctx).QueryRow(ctx, query, fieldID, location))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find plot by location", err)
	}
	p := mapping.ToDomainPlot(m)
	return &p, nil
}

// ListPlots retrieves a paginated list of plots ordered by ascending id,
// using an id cursor token.
func (r *PgxPlotRepository) ListPlots(ctx context.Context, limit int, nextToken *string) ([]domain.Plot, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + plotColumns + ` FROM plots`
	args := []any{}
	if nextToken != nil && *nextToken != "" {
		lastID, err := pagination.DecodeIDToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		query += ` WHERE plot_id > $1`
		args = append(args, lastID)
	}
	query += ` ORDER BY plot_id LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query plots", err)
	}
	defer rows.Close()

	modelPlots := make([]models.Plot, 0, fetchLimit)
	for rows.Next() {
		m, err := scanPlot(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan plot row", err)
		}
		modelPlots = append(modelPlots, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating plot rows", err)
	}

	var nextTokenVal *string
	results := modelPlots
	if len(modelPlots) > limit {
		last := modelPlots[limit-1]
		token := pagination.EncodeIDToken(last.PlotID)
		nextTokenVal = &token
		results = modelPlots[:limit]
	}

	plots := make([]domain.Plot, len(results))
	for i, m := range results {
		plots[i] = mapping.ToDomainPlot(m)
	}
	return plots, nextTokenVal, nil
}

// UpdatePlot persists location/notes changes.
func (r *PgxPlotRepository) UpdatePlot(ctx context.Context, plot domain.Plot) error {
	m := mapping.ToModelPlot(plot)
	query := `
		UPDATE plots
		SET location = $2,
		    notes = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE plot_id = $1;
	`
	cmdTag, err := r.conn(ctx).Exec(ctx, query, m.PlotID, m.Location, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update plot", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("plot " + strconv.FormatInt(plot.PlotID, 10) + " not found for update")
	}
	return nil
}

// UpdatePlotCapacity sets the declared budget.
func (r *PgxPlotRepository) UpdatePlotCapacity(ctx context.Context, plotID int64, capacity decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE plots
		SET total_capacity = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE plot_id = $1;
	`
	cmdTag, err := r.conn(ctx).Exec(ctx, query, plotID, capacity, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update plot capacity", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("plot " + strconv.FormatInt(plotID, 10) + " not found for capacity update")
	}
	return nil
}

// UpdatePlotStatus sets the lifecycle status.
func (r *PgxPlotRepository) UpdatePlotStatus(ctx context.Context, plotID int64, status domain.PlotStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE plots
		SET status = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE plot_id = $1;
	`
	cmdTag, err := r.conn(ctx).Exec(ctx, query, plotID, string(status), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update plot status", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("plot " + strconv.FormatInt(plotID, 10) + " not found for status update")
	}
	return nil
}

// DeletePlot removes a plot row.
func (r *PgxPlotRepository) DeletePlot(ctx context.Context, plotID int64) error {
	cmdTag, err := r.conn(ctx).Exec(ctx, `DELETE FROM plots WHERE plot_id = $1;`, plotID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete plot", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("plot " + strconv.FormatInt(plotID, 10) + " not found for delete")
	}
	return nil
}
