package repositories

import (
	"context"
	"time"

	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PlotReader defines read operations for plot data.
type PlotReader interface {
	// FindPlotByID retrieves a single plot by its identifier.
	FindPlotByID(ctx context.Context, plotID int64) (*domain.Plot, error)

	// FindPlotsByFieldID retrieves all plots belonging to a field, ordered
	// by ascending plot id.
	FindPlotsByFieldID(ctx context.Context, fieldID int64) ([]domain.Plot, error)

	// FindPlotByFieldAndLocation retrieves the plot at an exact
	// (case-sensitive) location within a field, or ErrNotFound.
	FindPlotByFieldAndLocation(ctx context.Context, fieldID int64, location string) (*domain.Plot, error)

	// ListPlots retrieves a paginated list of plots using token-based
	// pagination. Returns the plots and a token for the next page.
	ListPlots(ctx context.Context, limit int, nextToken *string) ([]domain.Plot, *string, error)
}

// PlotWriter defines write operations for plot data.
type PlotWriter interface {
	// SavePlot inserts a new plot and populates its server-assigned id.
	SavePlot(ctx context.Context, plot *domain.Plot) error

	// UpdatePlot persists mutable plot fields (location, notes, audit).
	UpdatePlot(ctx context.Context, plot domain.Plot) error

	// UpdatePlotCapacity sets the plot's total capacity.
	UpdatePlotCapacity(ctx context.Context, plotID int64, capacity decimal.Decimal, updatedBy string, updatedAt time.Time) error

	// UpdatePlotStatus sets the plot's lifecycle status.
	UpdatePlotStatus(ctx context.Context, plotID int64, status domain.PlotStatus, updatedBy string, updatedAt time.Time) error

	// DeletePlot removes a plot row.
	DeletePlot(ctx context.Context, plotID int64) error
}

// PlotRepositoryFacade combines all plot repository interfaces.
type PlotRepositoryFacade interface {
	PlotReader
	PlotWriter
}
