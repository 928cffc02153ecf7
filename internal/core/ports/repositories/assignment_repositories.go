package repositories

import (
	"context"
	"time"

	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AssignmentReader defines read operations for assignment data.
type AssignmentReader interface {
	// FindAssignmentByID retrieves a single assignment.
	FindAssignmentByID(ctx context.Context, assignmentID int64) (*domain.Assignment, error)

	// ListAssignmentsByPlot retrieves a paginated list of a plot's
	// assignments using token-based pagination.
	ListAssignmentsByPlot(ctx context.Context, plotID int64, limit int, nextToken *string) ([]domain.Assignment, *string, error)

	// ListAssignmentsByWorker retrieves a paginated list of a worker's
	// assignments using token-based pagination.
	ListAssignmentsByWorker(ctx context.Context, workerID int64, limit int, nextToken *string) ([]domain.Assignment, *string, error)

	// CountByPlot counts all assignments referencing a plot, any status.
	CountByPlot(ctx context.Context, plotID int64) (int, error)
}

// CapacityAggregator defines the ledger's aggregation primitives. Sums
// consider only capacity-consuming statuses (active, completed) and read
// NULL as zero.
type CapacityAggregator interface {
	// SumCapacity returns the consumed capacity of a plot, optionally
	// restricted to a single assignment date.
	SumCapacity(ctx context.Context, plotID int64, onDate *time.Time) (decimal.Decimal, error)

	// SumCapacityByWorker returns per-worker consumption totals for a
	// plot, ordered by descending total.
	SumCapacityByWorker(ctx context.Context, plotID int64) ([]domain.WorkerConsumption, error)

	// SumCapacityByDay returns per-day consumption totals for a plot
	// within [from, to], ordered by ascending date.
	SumCapacityByDay(ctx context.Context, plotID int64, from, to time.Time) ([]domain.DayConsumption, error)

	// ForEachAssignmentInPeriod streams a plot's assignments (any status)
	// within [from, to] to fn, ordered by assignment date then id. Callers
	// apply their own status filters. Iteration stops at the first error
	// from fn.
	ForEachAssignmentInPeriod(ctx context.Context, plotID int64, from, to time.Time, fn func(domain.Assignment) error) error
}

// AssignmentWriter defines write operations for assignment data.
type AssignmentWriter interface {
	// SaveAssignment inserts a new assignment and populates its
	// server-assigned id.
	SaveAssignment(ctx context.Context, assignment *domain.Assignment) error

	// UpdateAssignmentStatus sets one assignment's lifecycle status.
	UpdateAssignmentStatus(ctx context.Context, assignmentID int64, status domain.AssignmentStatus, updatedBy string, updatedAt time.Time) error

	// CompleteActiveByPlot transitions all of a plot's active assignments
	// to completed, returning the affected assignment ids.
	CompleteActiveByPlot(ctx context.Context, plotID int64, updatedBy string, updatedAt time.Time) ([]int64, error)

	// DeleteByPlot removes all assignments referencing a plot and returns
	// the number deleted.
	DeleteByPlot(ctx context.Context, plotID int64) (int64, error)
}

// AssignmentRepositoryFacade combines all assignment repository interfaces.
type AssignmentRepositoryFacade interface {
	AssignmentReader
	AssignmentWriter
	CapacityAggregator
}
