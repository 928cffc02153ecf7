package dto

import (
	"time"

	"github.com/agritrack/plot_capacity_app/internal/core/domain"
)

// CreateFieldRequest creates a new top-level field.
type CreateFieldRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
}

// UpdateFieldRequest is a typed patch; only non-nil fields are applied.
type UpdateFieldRequest struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
}

// FieldResponse is the presentation shape of a field.
type FieldResponse struct {
	FieldID   int64     `json:"fieldID"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToFieldResponse converts a domain field to its response shape.
func ToFieldResponse(f *domain.Field) FieldResponse {
	return FieldResponse{
		FieldID:   f.FieldID,
		Name:      f.Name,
		Location:  f.Location,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.LastUpdatedAt,
	}
}
