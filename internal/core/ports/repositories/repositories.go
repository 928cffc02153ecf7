package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager      TransactionManager
	FieldRepo      FieldRepositoryFacade
	PlotRepo       PlotRepositoryFacade
	AssignmentRepo AssignmentRepositoryFacade
	PaymentRepo    PaymentRepositoryFacade
	WorkerRepo     WorkerReader
	AuditRepo      AuditRepositoryFacade
	SessionRepo    SessionRepositoryFacade
	ReportingRepo  ReportingRepository
}
