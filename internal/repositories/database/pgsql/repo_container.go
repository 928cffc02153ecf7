package pgsql

import (
	portsrepo "github.com/agritrack/plot_capacity_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository over one shared pool.
// All repositories route through the same transaction context, so writes
// issued inside a coordinator callback land in the same transaction.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		TxManager:      NewTxManager(pool),
		FieldRepo:      newPgxFieldRepository(pool),
		PlotRepo:       newPgxPlotRepository(pool),
		AssignmentRepo: newPgxAssignmentRepository(pool),
		PaymentRepo:    newPgxPaymentRepository(pool),
		WorkerRepo:     newPgxWorkerRepository(pool),
		AuditRepo:      newPgxAuditRepository(pool),
		SessionRepo:    newPgxSessionRepository(pool),
		ReportingRepo:  newPgxReportingRepository(pool),
	}
}
