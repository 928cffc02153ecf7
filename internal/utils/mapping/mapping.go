// Package mapping converts between persistence models and core domain types.
package mapping

import (
	"encoding/json"

	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	"github.com/agritrack/plot_capacity_app/internal/models"
)

func toDomainAudit(a models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func toModelAudit(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

// ToDomainField converts a field row to the domain type.
func ToDomainField(m models.Field) domain.Field {
	return domain.Field{
		FieldID:     m.FieldID,
		Name:        m.Name,
		Location:    m.Location,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

// ToModelField converts a domain field to its row shape.
func ToModelField(f domain.Field) models.Field {
	return models.Field{
		FieldID:     f.FieldID,
		Name:        f.Name,
		Location:    f.Location,
		AuditFields: toModelAudit(f.AuditFields),
	}
}

// ToDomainPlot converts a plot row to the domain type.
func ToDomainPlot(m models.Plot) domain.Plot {
	return domain.Plot{
		PlotID:        m.PlotID,
		FieldID:       m.FieldID,
		Location:      m.Location,
		TotalCapacity: m.TotalCapacity,
		Status:        domain.PlotStatus(m.Status),
		SessionID:     m.SessionID,
		Notes:         m.Notes,
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}

// ToModelPlot converts a domain plot to its row shape.
func ToModelPlot(p domain.Plot) models.Plot {
	return models.Plot{
		PlotID:        p.PlotID,
		FieldID:       p.FieldID,
		Location:      p.Location,
		TotalCapacity: p.TotalCapacity,
		Status:        string(p.Status),
		SessionID:     p.SessionID,
		Notes:         p.Notes,
		AuditFields:   toModelAudit(p.AuditFields),
	}
}

// ToDomainAssignment converts an assignment row to the domain type.
func ToDomainAssignment(m models.Assignment) domain.Assignment {
	return domain.Assignment{
		AssignmentID:   m.AssignmentID,
		PlotID:         m.PlotID,
		WorkerID:       m.WorkerID,
		AssignmentDate: m.AssignmentDate,
		CapacityCount:  m.CapacityCount,
		Status:         domain.AssignmentStatus(m.Status),
		SessionID:      m.SessionID,
		AuditFields:    toDomainAudit(m.AuditFields),
	}
}

// ToDomainAssignmentSlice converts assignment rows in order.
func ToDomainAssignmentSlice(ms []models.Assignment) []domain.Assignment {
	out := make([]domain.Assignment, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAssignment(m)
	}
	return out
}

// ToModelAssignment converts a domain assignment to its row shape.
func ToModelAssignment(a domain.Assignment) models.Assignment {
	return models.Assignment{
		AssignmentID:   a.AssignmentID,
		PlotID:         a.PlotID,
		WorkerID:       a.WorkerID,
		AssignmentDate: a.AssignmentDate,
		CapacityCount:  a.CapacityCount,
		Status:         string(a.Status),
		SessionID:      a.SessionID,
		AuditFields:    toModelAudit(a.AuditFields),
	}
}

// ToDomainPayment converts a payment row to the domain type.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		PlotID:      m.PlotID,
		WorkerID:    m.WorkerID,
		GrossPay:    m.GrossPay,
		NetPay:      m.NetPay,
		Deductions:  m.Deductions,
		PaymentDate: m.PaymentDate,
		Status:      domain.PaymentStatus(m.Status),
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

// ToDomainAuditRecord converts an audit row, decoding the JSONB details.
func ToDomainAuditRecord(m models.AuditRecord) domain.AuditRecord {
	details := map[string]any{}
	if len(m.Details) > 0 {
		// Corrupt details are surfaced as an empty diff rather than an
		// error; the record itself is append-only history.
		_ = json.Unmarshal(m.Details, &details)
	}
	return domain.AuditRecord{
		AuditID:    m.AuditID,
		ActorID:    m.ActorID,
		Action:     domain.AuditAction(m.Action),
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Details:    details,
		SessionID:  m.SessionID,
		Timestamp:  m.Timestamp,
	}
}

// ToModelAuditRecord converts a domain audit record, encoding details to JSON.
func ToModelAuditRecord(r domain.AuditRecord) (models.AuditRecord, error) {
	details, err := json.Marshal(r.Details)
	if err != nil {
		return models.AuditRecord{}, err
	}
	return models.AuditRecord{
		AuditID:    r.AuditID,
		ActorID:    r.ActorID,
		Action:     string(r.Action),
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Details:    details,
		SessionID:  r.SessionID,
		Timestamp:  r.Timestamp,
	}, nil
}

// ToDomainSession converts a session row to the domain type.
func ToDomainSession(m models.Session) domain.Session {
	return domain.Session{
		SessionID:   m.SessionID,
		Name:        m.Name,
		StartsOn:    m.StartsOn,
		EndsOn:      m.EndsOn,
		IsActive:    m.IsActive,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}
