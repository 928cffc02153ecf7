package services

import (
	portsrepo "github.com/agritrack/plot_capacity_app/internal/core/ports/repositories"
	portssvc "github.com/agritrack/plot_capacity_app/internal/core/ports/services"
	"github.com/agritrack/plot_capacity_app/internal/utils/similarity"
	"github.com/agritrack/plot_capacity_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. Every mutating service shares one write
// coordinator so all mutations follow the same transaction and audit rules.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	coordinator := NewWriteCoordinator(repos.TxManager, repos.SessionRepo, repos.AuditRepo, cfg.DefaultSessionID)

	container := &portssvc.ServiceContainer{}
	container.Ledger = NewLedgerService(repos.PlotRepo, repos.AssignmentRepo)
	container.Validator = NewCapacityValidator(repos.PlotRepo, repos.AssignmentRepo)
	container.Detector = NewDuplicateDetector(repos.PlotRepo, similarity.CharacterOverlap{})

	container.Field = NewFieldService(coordinator, repos.FieldRepo)
	container.Plot = NewPlotService(coordinator, repos.PlotRepo, repos.FieldRepo, repos.AssignmentRepo, repos.PaymentRepo, container.Detector)
	container.Assignment = NewAssignmentService(coordinator, repos.AssignmentRepo, repos.PlotRepo, container.Validator)

	container.Analytics = NewAnalyticsService(repos.PlotRepo, repos.AssignmentRepo, repos.PaymentRepo, repos.WorkerRepo, repos.ReportingRepo)
	container.Session = NewSessionService(repos.SessionRepo)
	container.Audit = NewAuditTrailService(repos.AuditRepo)

	return container
}
