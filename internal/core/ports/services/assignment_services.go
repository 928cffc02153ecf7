package services

import (
	"context"

	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	"github.com/agritrack/plot_capacity_app/internal/dto"
)

// AssignmentReaderSvc defines read operations over assignments.
type AssignmentReaderSvc interface {
	GetAssignmentByID(ctx context.Context, assignmentID int64) (*domain.Assignment, error)
	ListByPlot(ctx context.Context, plotID int64, params dto.ListAssignmentsParams) ([]domain.Assignment, *string, error)
	ListByWorker(ctx context.Context, workerID int64, params dto.ListAssignmentsParams) ([]domain.Assignment, *string, error)
}

// AssignmentWriterSvc defines the mutating assignment operations.
// Creation validates against the plot's remaining budget and persists the
// assignment inside the same transaction, so concurrent writers cannot
// both pass validation against the same remaining capacity.
type AssignmentWriterSvc interface {
	CreateAssignment(ctx context.Context, req dto.CreateAssignmentRequest, actorID string) (*domain.Assignment, error)

	// BulkCreateAssignments books several claims in one transaction.
	// Item-level validation failures land in Failed; a persistence error
	// rolls back the entire batch.
	BulkCreateAssignments(ctx context.Context, req dto.BulkCreateAssignmentsRequest, actorID string) (*dto.BulkAssignmentResult, error)

	CompleteAssignment(ctx context.Context, assignmentID int64, actorID string) (*domain.Assignment, error)
	CancelAssignment(ctx context.Context, assignmentID int64, actorID string) (*domain.Assignment, error)
}

// AssignmentSvcFacade combines all assignment service interfaces.
type AssignmentSvcFacade interface {
	AssignmentReaderSvc
	AssignmentWriterSvc
}
