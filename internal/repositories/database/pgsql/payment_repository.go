package pgsql

import (
	"context"
	"time"

	"github.com/agritrack/plot_capacity_app/internal/apperrors"
	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	portsrepo "github.com/agritrack/plot_capacity_app/internal/core/ports/repositories"
	"github.com/agritrack/plot_capacity_app/internal/models"
	"github.com/agritrack/plot_capacity_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// ListPaymentsByPlot retrieves a plot's payments within [from, to].
func (r *PgxPaymentRepository) ListPaymentsByPlot(ctx context.Context, plotID int64, from, to time.Time) ([]domain.Payment, error) {
	query := `
		SELECT payment_id, plot_id, worker_id, gross_pay, net_pay, deductions, payment_date, status,
			created_at, created_by, last_updated_at, last_updated_by
		FROM payments
		WHERE plot_id = $1 AND payment_date BETWEEN $2 AND $3
		ORDER BY payment_date, payment_id;
	`
	rows, err := r.conn(ctx).Query(ctx, query, plotID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for plot", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var m models.Payment
		if err := rows.Scan(
			&m.PaymentID,
			&m.PlotID,
			&m.WorkerID,
			&m.GrossPay,
			&m.NetPay,
			&m.Deductions,
			&m.PaymentDate,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, mapping.ToDomainPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}
	return payments, nil
}

// SummarizeByPlot aggregates gross/net/deduction totals in SQL, excluding
// voided payments. NULL sums read as zero so an empty period yields a
// zero-filled summary.
func (r *PgxPaymentRepository) SummarizeByPlot(ctx context.Context, plotID int64, from, to time.Time) (domain.PaymentSummary, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(gross_pay), 0),
			COALESCE(SUM(net_pay), 0),
			COALESCE(SUM(deductions), 0)
		FROM payments
		WHERE plot_id = $1 AND payment_date BETWEEN $2 AND $3 AND status != 'VOIDED';
	`
	summary := domain.PaymentSummary{PlotID: plotID}
	err := r.conn(ctx).QueryRow(ctx, query, plotID, from, to).Scan(
		&summary.PaymentCount,
		&summary.TotalGross,
		&summary.TotalNet,
		&summary.TotalDeductions,
	)
	if err != nil {
		return domain.PaymentSummary{}, apperrors.NewAppError(500, "failed to summarize payments for plot", err)
	}
	return summary, nil
}

// CountByPlot counts all payments referencing a plot.
func (r *PgxPaymentRepository) CountByPlot(ctx context.Context, plotID int64) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE plot_id = $1;`, plotID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count payments for plot", err)
	}
	return count, nil
}

// DeleteByPlot removes all payments referencing a plot.
func (r *PgxPaymentRepository) DeleteByPlot(ctx context.Context, plotID int64) (int64, error) {
	cmdTag, err := r.conn(ctx).Exec(ctx, `DELETE FROM payments WHERE plot_id = $1;`, plotID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete payments for plot", err)
	}
	return cmdTag.RowsAffected(), nil
}

// PgxWorkerRepository resolves external worker references.
type PgxWorkerRepository struct {
	BaseRepository
}

func newPgxWorkerRepository(pool *pgxpool.Pool) portsrepo.WorkerReader {
	return &PgxWorkerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WorkerReader = (*PgxWorkerRepository)(nil)

// FindWorkersByIDs retrieves workers keyed by id; unknown ids are absent.
func (r *PgxWorkerRepository) FindWorkersByIDs(ctx context.Context, workerIDs []int64) (map[int64]domain.Worker, error) {
	if len(workerIDs) == 0 {
		return map[int64]domain.Worker{}, nil
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT worker_id, name FROM workers WHERE worker_id = ANY($1);`, workerIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workers", err)
	}
	defer rows.Close()

	out := make(map[int64]domain.Worker, len(workerIDs))
	for rows.Next() {
		var w domain.Worker
		if err := rows.Scan(&w.WorkerID, &w.Name); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan worker row", err)
		}
		out[w.WorkerID] = w
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating worker rows", err)
	}
	return out, nil
}
