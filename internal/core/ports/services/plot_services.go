package services

import (
	"context"

	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	"github.com/agritrack/plot_capacity_app/internal/dto"
)

// PlotReaderSvc defines read operations over plots.
type PlotReaderSvc interface {
	GetPlotByID(ctx context.Context, plotID int64) (*domain.Plot, error)
	ListPlots(ctx context.Context, params dto.ListPlotsParams) ([]domain.Plot, *string, error)
	ListPlotsByField(ctx context.Context, fieldID int64) ([]domain.Plot, error)
}

// PlotWriterSvc defines the mutating plot operations. Every mutation runs
// through the write coordinator: one transaction, one audit record per
// affected entity, full rollback on failure.
type PlotWriterSvc interface {
	// CreatePlot registers a plot. An exact-location clash within the
	// field is a conflict; fuzzy similarity is advisory only.
	CreatePlot(ctx context.Context, req dto.CreatePlotRequest, actorID string) (*domain.Plot, *domain.DuplicateReport, error)

	// UpdatePlot applies a typed patch of allow-listed fields.
	UpdatePlot(ctx context.Context, plotID int64, req dto.UpdatePlotRequest, actorID string) (*domain.Plot, error)

	// AdjustCapacity changes the declared budget via set/add/subtract.
	// The budget never goes negative.
	AdjustCapacity(ctx context.Context, plotID int64, req dto.AdjustCapacityRequest, actorID string) (*domain.Plot, error)

	// ChangeStatus transitions the plot's lifecycle status. Marking a plot
	// completed cascades its active assignments to completed in the same
	// transaction.
	ChangeStatus(ctx context.Context, plotID int64, status domain.PlotStatus, actorID string) (*domain.Plot, error)

	// DeletePlot removes a plot. With dependents it is refused unless
	// force is set, in which case dependents are deleted first, inside the
	// same transaction.
	DeletePlot(ctx context.Context, plotID int64, force bool, actorID string) error

	// BulkCreatePlots registers several plots in one transaction.
	// Per-item validation failures are isolated into the result's Failed
	// list; a persistence error rolls back the whole batch.
	BulkCreatePlots(ctx context.Context, req dto.BulkCreatePlotsRequest, actorID string) (*dto.BulkPlotResult, error)

	// BulkChangeStatus transitions several plots to the same status in one
	// transaction, with the same per-item isolation as BulkCreatePlots.
	BulkChangeStatus(ctx context.Context, req dto.BulkChangePlotStatusRequest, actorID string) (*dto.BulkStatusResult, error)
}

// PlotSvcFacade combines all plot service interfaces.
type PlotSvcFacade interface {
	PlotReaderSvc
	PlotWriterSvc
}

// FieldSvcFacade defines the thin field collaborator operations.
type FieldSvcFacade interface {
	CreateField(ctx context.Context, req dto.CreateFieldRequest, actorID string) (*domain.Field, error)
	GetFieldByID(ctx context.Context, fieldID int64) (*domain.Field, error)
	ListFields(ctx context.Context) ([]domain.Field, error)
	UpdateField(ctx context.Context, fieldID int64, req dto.UpdateFieldRequest, actorID string) (*domain.Field, error)
}

// SessionSvcFacade reads accounting sessions.
type SessionSvcFacade interface {
	GetSessionByID(ctx context.Context, sessionID int64) (*domain.Session, error)
	ListSessions(ctx context.Context) ([]domain.Session, error)
}

// AuditTrailSvc lists the audit history of one entity.
type AuditTrailSvc interface {
	ListByEntity(ctx context.Context, entityType string, entityID int64, limit int) ([]domain.AuditRecord, error)
}
