package repositories

import (
	"context"
	"time"

	"github.com/agritrack/plot_capacity_app/internal/core/domain"
)

// PaymentReader defines read operations for payment data. Payments are
// consulted by analytics only; this core never mutates capacity through
// them.
type PaymentReader interface {
	// ListPaymentsByPlot retrieves a plot's payments within [from, to],
	// ordered by payment date.
	ListPaymentsByPlot(ctx context.Context, plotID int64, from, to time.Time) ([]domain.Payment, error)

	// SummarizeByPlot aggregates gross, net and deduction totals for a
	// plot within [from, to]. Voided payments are excluded; an empty
	// period yields a zero-filled summary.
	SummarizeByPlot(ctx context.Context, plotID int64, from, to time.Time) (domain.PaymentSummary, error)

	// CountByPlot counts all payments referencing a plot.
	CountByPlot(ctx context.Context, plotID int64) (int, error)
}

// PaymentWriter defines the single write this core performs on payments:
// cascade deletion when a plot is force-deleted.
type PaymentWriter interface {
	// DeleteByPlot removes all payments referencing a plot and returns the
	// number deleted.
	DeleteByPlot(ctx context.Context, plotID int64) (int64, error)
}

// PaymentRepositoryFacade combines the payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}

// WorkerReader resolves external worker references to display names.
type WorkerReader interface {
	// FindWorkersByIDs retrieves workers keyed by id; unknown ids are
	// simply absent from the result.
	FindWorkersByIDs(ctx context.Context, workerIDs []int64) (map[int64]domain.Worker, error)
}
