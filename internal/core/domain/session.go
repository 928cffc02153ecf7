package domain

import "time"

// Session is an accounting period that plots and assignments are booked
// under. Writes fail fast with a precondition error when no default
// session is configured.
type Session struct {
	SessionID int64     `json:"sessionID"`
	Name      string    `json:"name"`
	StartsOn  time.Time `json:"startsOn"`
	EndsOn    time.Time `json:"endsOn"`
	IsActive  bool      `json:"isActive"`
	AuditFields
}
