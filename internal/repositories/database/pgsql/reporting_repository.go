package pgsql

import (
	"context"

	"github.com/agritrack/plot_capacity_app/internal/apperrors"
	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	portsrepo "github.com/agritrack/plot_capacity_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a repository for cross-plot aggregations.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetFieldComparisonData aggregates consumption per plot in SQL so a field
// with many plots costs one round trip. Plots with no assignments still
// produce a row via the LEFT JOIN.
func (r *PgxReportingRepository) GetFieldComparisonData(ctx context.Context, fieldID int64) ([]domain.PlotComparison, error) {
	query := `
		SELECT
			p.plot_id,
			p.location,
			p.total_capacity,
			COALESCE(SUM(a.capacity_count) FILTER (WHERE a.status IN ` + consumingStatuses + `), 0) AS consumed,
			COUNT(a.assignment_id) AS assignment_count
		FROM plots p
		LEFT JOIN assignments a ON a.plot_id = p.plot_id
		WHERE p.field_id = $1
		GROUP BY p.plot_id, p.location, p.total_capacity
		ORDER BY p.plot_id;
	`
	rows, err := r.conn(ctx).Query(ctx, query, fieldID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query field comparison data", err)
	}
	defer rows.Close()

	comparisons := []domain.PlotComparison{}
	for rows.Next() {
		var c domain.PlotComparison
		if err := rows.Scan(&c.PlotID, &c.Location, &c.TotalCapacity, &c.Consumed, &c.AssignmentCount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan field comparison row", err)
		}
		if c.TotalCapacity.IsPositive() {
			c.UtilizationRate = c.Consumed.Div(c.TotalCapacity).Mul(decimal.NewFromInt(100))
		} else {
			c.UtilizationRate = decimal.Zero
		}
		comparisons = append(comparisons, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating field comparison rows", err)
	}
	return comparisons, nil
}
