// Package models holds the persistence-layer row shapes. They mirror the
// database schema; mapping to and from the core domain happens in
// internal/utils/mapping.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds standard audit columns shared by all tables.
type AuditFields struct {
	CreatedAt     time.Time
	CreatedBy     string
	LastUpdatedAt time.Time
	LastUpdatedBy string
}

// Field row (fields table).
type Field struct {
	FieldID  int64
	Name     string
	Location string
	AuditFields
}

// Plot row (plots table).
type Plot struct {
	PlotID        int64
	FieldID       int64
	Location      *string
	TotalCapacity decimal.Decimal
	Status        string
	SessionID     int64
	Notes         string
	AuditFields
}

// Assignment row (assignments table).
type Assignment struct {
	AssignmentID   int64
	PlotID         int64
	WorkerID       int64
	AssignmentDate time.Time
	CapacityCount  decimal.Decimal
	Status         string
	SessionID      int64
	AuditFields
}

// Payment row (payments table).
type Payment struct {
	PaymentID   int64
	PlotID      int64
	WorkerID    int64
	GrossPay    decimal.Decimal
	NetPay      decimal.Decimal
	Deductions  decimal.Decimal
	PaymentDate time.Time
	Status      string
	AuditFields
}

// AuditRecord row (audit_records table). Details is stored as JSONB.
type AuditRecord struct {
	AuditID    int64
	ActorID    string
	Action     string
	EntityType string
	EntityID   int64
	Details    []byte
	SessionID  int64
	Timestamp  time.Time
}

// Session row (sessions table).
type Session struct {
	SessionID int64
	Name      string
	StartsOn  time.Time
	EndsOn    time.Time
	IsActive  bool
	AuditFields
}

// Worker row (workers table, external reference data).
type Worker struct {
	WorkerID int64
	Name     string
}
