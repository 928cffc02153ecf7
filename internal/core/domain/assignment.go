package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssignmentStatus indicates the lifecycle state of an assignment.
type AssignmentStatus string

const (
	AssignmentActive    AssignmentStatus = "ACTIVE"
	AssignmentCompleted AssignmentStatus = "COMPLETED"
	AssignmentCancelled AssignmentStatus = "CANCELLED"
)

// ValidAssignmentStatus reports whether s is one of the known assignment states.
func ValidAssignmentStatus(s AssignmentStatus) bool {
	switch s {
	case AssignmentActive, AssignmentCompleted, AssignmentCancelled:
		return true
	}
	return false
}

// CountsTowardCapacity reports whether an assignment in state s consumes
// plot capacity. Cancelled assignments release their claim.
func (s AssignmentStatus) CountsTowardCapacity() bool {
	return s == AssignmentActive || s == AssignmentCompleted
}

// Assignment is a worker's claim against a plot's capacity budget for a
// given date. CapacityCount is always strictly positive.
type Assignment struct {
	AssignmentID   int64            `json:"assignmentID"`
	PlotID         int64            `json:"plotID"`
	WorkerID       int64            `json:"workerID"`
	AssignmentDate time.Time        `json:"assignmentDate"` // Calendar date, engine-local
	CapacityCount  decimal.Decimal  `json:"capacityCount"`
	Status         AssignmentStatus `json:"status"`
	SessionID      int64            `json:"sessionID"`
	AuditFields
}
