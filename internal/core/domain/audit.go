package domain

import "time"

// AuditAction names the mutation recorded by an audit record.
type AuditAction string

const (
	ActionCreate         AuditAction = "CREATE"
	ActionUpdate         AuditAction = "UPDATE"
	ActionDelete         AuditAction = "DELETE"
	ActionStatusChange   AuditAction = "STATUS_CHANGE"
	ActionCapacityAdjust AuditAction = "CAPACITY_ADJUST"
	ActionBulkCreate     AuditAction = "BULK_CREATE"
)

// AuditRecord is an append-only record of one successful mutation,
// written inside the same transaction as the mutation itself.
type AuditRecord struct {
	AuditID    int64          `json:"auditID"`
	ActorID    string         `json:"actorID"`
	Action     AuditAction    `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   int64          `json:"entityID"`
	Details    map[string]any `json:"details"` // Structured before/after diff or snapshot
	SessionID  int64          `json:"sessionID"`
	Timestamp  time.Time      `json:"timestamp"`
}
