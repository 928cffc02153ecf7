package dto

import (
	"time"

	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAssignmentRequest books a worker's capacity claim against a plot.
type CreateAssignmentRequest struct {
	PlotID         int64           `json:"plotID" binding:"required"`
	WorkerID       int64           `json:"workerID" binding:"required"`
	AssignmentDate time.Time       `json:"assignmentDate" binding:"required"`
	CapacityCount  decimal.Decimal `json:"capacityCount"`
}

// BulkCreateAssignmentsRequest books several claims in one unit of work.
type BulkCreateAssignmentsRequest struct {
	Assignments []CreateAssignmentRequest `json:"assignments" binding:"required,min=1"`
}

// BulkAssignmentResult reports the outcome of a bulk assignment creation.
// Failed holds per-item validation rejections; a persistence error rolls
// back the whole batch instead.
type BulkAssignmentResult struct {
	Created []AssignmentResponse `json:"created"`
	Failed  []BulkFailure        `json:"failed"`
}

// ValidateAllocationRequest asks whether a requested amount still fits a
// plot's budget. Date optionally scopes consumption to one day.
type ValidateAllocationRequest struct {
	PlotID int64           `json:"plotID" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
	Date   *time.Time      `json:"date,omitempty"`
}

// ListAssignmentsParams carries paging inputs for assignment listings.
type ListAssignmentsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// AssignmentResponse is the presentation shape of an assignment.
type AssignmentResponse struct {
	AssignmentID   int64           `json:"assignmentID"`
	PlotID         int64           `json:"plotID"`
	WorkerID       int64           `json:"workerID"`
	AssignmentDate string          `json:"assignmentDate"` // YYYY-MM-DD
	CapacityCount  decimal.Decimal `json:"capacityCount"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToAssignmentResponse converts a domain assignment to its response shape.
func ToAssignmentResponse(a *domain.Assignment) AssignmentResponse {
	return AssignmentResponse{
		AssignmentID:   a.AssignmentID,
		PlotID:         a.PlotID,
		WorkerID:       a.WorkerID,
		AssignmentDate: a.AssignmentDate.Format("2006-01-02"),
		CapacityCount:  a.CapacityCount.Round(2),
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
	}
}

// ToAssignmentResponses converts a slice of domain assignments.
func ToAssignmentResponses(assignments []domain.Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, len(assignments))
	for i := range assignments {
		out[i] = ToAssignmentResponse(&assignments[i])
	}
	return out
}
