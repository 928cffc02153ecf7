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

type PgxAssignmentRepository struct {
	BaseRepository
}

// newPgxAssignmentRepository creates a new repository for assignment data.
func newPgxAssignmentRepository(pool *pgxpool.Pool) portsrepo.AssignmentRepositoryFacade {
	return &PgxAssignmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AssignmentRepositoryFacade = (*PgxAssignmentRepository)(nil)

const assignmentColumns = `assignment_id, plot_id, worker_id, assignment_date, capacity_count, status, session_id,
	created_at, created_by, last_updated_at, last_updated_by`

// consumingStatuses filters capacity-consuming assignments in SQL.
const consumingStatuses = `('ACTIVE', 'COMPLETED')`

func scanAssignment(row pgx.Row) (models.Assignment, error) {
	var m models.Assignment
	err := row.Scan(
		&m.AssignmentID,
		&m.PlotID,
		&m.WorkerID,
		&m.AssignmentDate,
		&m.CapacityCount,
		&m.Status,
		&m.SessionID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAssignment inserts an assignment and populates the server-assigned id.
func (r *PgxAssignmentRepository) SaveAssignment(ctx context.Context, assignment *domain.Assignment) error {
	m := mapping.ToModelAssignment(*assignment)
	query := `
		INSERT INTO assignments (plot_id, worker_id, assignment_date, capacity_count, status, session_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING assignment_id;
	`
	err := r.conn(ctx).QueryRow(ctx, query,
		m.PlotID,
		m.WorkerID,
		m.AssignmentDate,
		m.CapacityCount,
		m.Status,
		m.SessionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&assignment.AssignmentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert assignment", err)
	}
	return nil
}

// FindAssignmentByID retrieves an assignment by its ID.
func (r *PgxAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID int64) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE assignment_id = $1;`
	m, err := scanAssignment(r.conn(ctx).QueryRow(ctx, query, assignmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find assignment by ID "+strconv.FormatInt(assignmentID, 10), err)
	}
	a := mapping.ToDomainAssignment(m)
	return &a, nil
}

// SumCapacity returns the consumed capacity of a plot: the sum of
// capacity_count over active and completed assignments, optionally
// restricted to one assignment date. NULL sums read as zero.
func (r *PgxAssignmentRepository) SumCapacity(ctx context.Context, plotID int64, onDate *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(capacity_count), 0)
		FROM assignments
		WHERE plot_id = $1 AND status IN ` + consumingStatuses
	args := []any{plotID}
	if onDate != nil {
		query += ` AND assignment_date = $2`
		args = append(args, *onDate)
	}
	query += `;`

	var sum decimal.Decimal
	if err := r.conn(ctx).QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum consumed capacity", err)
	}
	return sum, nil
}

// SumCapacityByWorker returns per-worker consumption totals, largest first.
func (r *PgxAssignmentRepository) SumCapacityByWorker(ctx context.Context, plotID int64) ([]domain.WorkerConsumption, error) {
	query := `
		SELECT worker_id, COALESCE(SUM(capacity_count), 0) AS total
		FROM assignments
		WHERE plot_id = $1 AND status IN ` + consumingStatuses + `
		GROUP BY worker_id
		ORDER BY total DESC, worker_id;
	`
	rows, err := r.conn(ctx).Query(ctx, query, plotID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query worker consumption", err)
	}
	defer rows.Close()

	out := []domain.WorkerConsumption{}
	for rows.Next() {
		var wc domain.WorkerConsumption
		if err := rows.Scan(&wc.WorkerID, &wc.Total); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan worker consumption row", err)
		}
		out = append(out, wc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating worker consumption rows", err)
	}
	return out, nil
}

// SumCapacityByDay returns per-day consumption totals within [from, to].
func (r *PgxAssignmentRepository) SumCapacityByDay(ctx context.Context, plotID int64, from, to time.Time) ([]domain.DayConsumption, error) {
	query := `
		SELECT assignment_date, COALESCE(SUM(capacity_count), 0) AS total
		FROM assignments
		WHERE plot_id = $1 AND status IN ` + consumingStatuses + `
			AND assignment_date BETWEEN $2 AND $3
		GROUP BY assignment_date
		ORDER BY assignment_date;
	`
	rows, err := r.conn(ctx).Query(ctx, query, plotID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query daily consumption", err)
	}
	defer rows.Close()

	out := []domain.DayConsumption{}
	for rows.Next() {
		var dc domain.DayConsumption
		if err := rows.Scan(&dc.Date, &dc.Total); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan daily consumption row", err)
		}
		out = append(out, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating daily consumption rows", err)
	}
	return out, nil
}

// ForEachAssignmentInPeriod streams a plot's assignments (any status)
// within [from, to] to fn in (date, id) order. Analytics accumulators
// apply their own status filters.
func (r *PgxAssignmentRepository) ForEachAssignmentInPeriod(ctx context.Context, plotID int64, from, to time.Time, fn func(domain.Assignment) error) error {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments
		WHERE plot_id = $1 AND assignment_date BETWEEN $2 AND $3
		ORDER BY assignment_date, assignment_id;
	`
	rows, err := r.conn(ctx).Query(ctx, query, plotID, from, to)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query assignments for period", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanAssignment(rows)
		if err != nil {
			return apperrors.NewAppError(500, "failed to scan assignment row", err)
		}
		if err := fn(mapping.ToDomainAssignment(m)); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating assignment rows", err)
	}
	return nil
}

func (r *PgxAssignmentRepository) listPaginated(ctx context.Context, filterColumn string, filterValue int64, limit int, nextToken *string) ([]domain.Assignment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE ` + filterColumn + ` = $1`
	args := []any{filterValue}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, err := pagination.DecodeDateIDToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		query += ` AND (assignment_date, assignment_id) < ($2, $3)`
		args = append(args, lastDate, lastID)
	}
	query += ` ORDER BY assignment_date DESC, assignment_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query assignments", err)
	}
	defer rows.Close()

	modelAssignments := make([]models.Assignment, 0, fetchLimit)
	for rows.Next() {
		m, err := scanAssignment(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan assignment row", err)
		}
		modelAssignments = append(modelAssignments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating assignment rows", err)
	}

	var nextTokenVal *string
	results := modelAssignments
	if len(modelAssignments) > limit {
		last := modelAssignments[limit-1]
		token := pagination.EncodeDateIDToken(last.AssignmentDate, last.AssignmentID)
		nextTokenVal = &token
		results = modelAssignments[:limit]
	}
	return mapping.ToDomainAssignmentSlice(results), nextTokenVal, nil
}

// ListAssignmentsByPlot retrieves a paginated list of a plot's assignments.
func (r *PgxAssignmentRepository) ListAssignmentsByPlot(ctx context.Context, plotID int64, limit int, nextToken *string) ([]domain.Assignment, *string, error) {
	return r.listPaginated(ctx, "plot_id", plotID, limit, nextToken)
}

// ListAssignmentsByWorker retrieves a paginated list of a worker's assignments.
func (r *PgxAssignmentRepository) ListAssignmentsByWorker(ctx context.Context, workerID int64, limit int, nextToken *string) ([]domain.Assignment, *string, error) {
	return r.listPaginated(ctx, "worker_id", workerID, limit, nextToken)
}

// CountByPlot counts all assignments referencing a plot, any status.
func (r *PgxAssignmentRepository) CountByPlot(ctx context.Context, plotID int64) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM assignments WHERE plot_id = $1;`, plotID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count assignments for plot", err)
	}
	return count, nil
}

// UpdateAssignmentStatus sets one assignment's lifecycle status.
func (r *PgxAssignmentRepository) UpdateAssignmentStatus(ctx context.Context, assignmentID int64, status domain.AssignmentStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE assignments
		SET status = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE assignment_id = $1;
	`
	cmdTag, err := r.conn(ctx).Exec(ctx, query, assignmentID, string(status), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update assignment status", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("assignment " + strconv.FormatInt(assignmentID, 10) + " not found for status update")
	}
	return nil
}

// CompleteActiveByPlot transitions all of a plot's active assignments to
// completed, returning the affected ids for the audit diff.
func (r *PgxAssignmentRepository) CompleteActiveByPlot(ctx context.Context, plotID int64, updatedBy string, updatedAt time.Time) ([]int64, error) {
	query := `
		UPDATE assignments
		SET status = 'COMPLETED',
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE plot_id = $1 AND status = 'ACTIVE'
		RETURNING assignment_id;
	`
	rows, err := r.conn(ctx).Query(ctx, query, plotID, updatedAt, updatedBy)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to complete active assignments for plot", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan completed assignment id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating completed assignment ids", err)
	}
	return ids, nil
}

// DeleteByPlot removes all assignments referencing a plot.
func (r *PgxAssignmentRepository) DeleteByPlot(ctx context.Context, plotID int64) (int64, error) {
	cmdTag, err := r.conn(ctx).Exec(ctx, `DELETE FROM assignments WHERE plot_id = $1;`, plotID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete assignments for plot", err)
	}
	return cmdTag.RowsAffected(), nil
}
