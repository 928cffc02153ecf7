package repositories

import (
	"context"

	"github.com/agritrack/plot_capacity_app/internal/core/domain"
)

// FieldReader defines read operations for field data.
type FieldReader interface {
	// FindFieldByID retrieves a single field.
	FindFieldByID(ctx context.Context, fieldID int64) (*domain.Field, error)

	// ListFields retrieves all fields ordered by id.
	ListFields(ctx context.Context) ([]domain.Field, error)
}

// FieldWriter defines write operations for field data.
type FieldWriter interface {
	// SaveField inserts a new field and populates its server-assigned id.
	SaveField(ctx context.Context, field *domain.Field) error

	// UpdateField persists field name/location changes.
	UpdateField(ctx context.Context, field domain.Field) error
}

// FieldRepositoryFacade combines the field repository interfaces.
type FieldRepositoryFacade interface {
	FieldReader
	FieldWriter
}
