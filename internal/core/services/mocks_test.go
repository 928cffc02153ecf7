package services_test

import (
	"context"
	"time"

	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	"github.com/agritrack/plot_capacity_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeTxManager runs the callback directly; the tests exercise service
// semantics, not transaction plumbing.
type fakeTxManager struct{}

func (fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- Repository mocks ---

type MockPlotRepository struct {
	mock.Mock
}

func (m *MockPlotRepository) FindPlotByID(ctx context.Context, plotID int64) (*domain.Plot, error) {
	args := m.Called(ctx, plotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plot), args.Error(1)
}

func (m *MockPlotRepository) FindPlotsByFieldID(ctx context.Context, fieldID int64) ([]domain.Plot, error) {
	args := m.Called(ctx, fieldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plot), args.Error(1)
}

func (m *MockPlotRepository) FindPlotByFieldAndLocation(ctx context.Context, fieldID int64, location string) (*domain.Plot, error) {
	args := m.Called(ctx, fieldID, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plot), args.Error(1)
}

func (m *MockPlotRepository) ListPlots(ctx context.Context, limit int, nextToken *string) ([]domain.Plot, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var plots []domain.Plot
	if args.Get(0) != nil {
		plots = args.Get(0).([]domain.Plot)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return plots, token, args.Error(2)
}

func (m *MockPlotRepository) SavePlot(ctx context.Context, plot *domain.Plot) error {
	args := m.Called(ctx, plot)
	return args.Error(0)
}

func (m *MockPlotRepository) UpdatePlot(ctx context.Context, plot domain.Plot) error {
	args := m.Called(ctx, plot)
	return args.Error(0)
}

func (m *MockPlotRepository) UpdatePlotCapacity(ctx context.Context, plotID int64, capacity decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, plotID, capacity, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockPlotRepository) UpdatePlotStatus(ctx context.Context, plotID int64, status domain.PlotStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, plotID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockPlotRepository) DeletePlot(ctx context.Context, plotID int64) error {
	args := m.Called(ctx, plotID)
	return args.Error(0)
}

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID int64) (*domain.Assignment, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListAssignmentsByPlot(ctx context.Context, plotID int64, limit int, nextToken *string) ([]domain.Assignment, *string, error) {
	args := m.Called(ctx, plotID, limit, nextToken)
	var assignments []domain.Assignment
	if args.Get(0) != nil {
		assignments = args.Get(0).([]domain.Assignment)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return assignments, token, args.Error(2)
}

func (m *MockAssignmentRepository) ListAssignmentsByWorker(ctx context.Context, workerID int64, limit int, nextToken *string) ([]domain.Assignment, *string, error) {
	args := m.Called(ctx, workerID, limit, nextToken)
	var assignments []domain.Assignment
	if args.Get(0) != nil {
		assignments = args.Get(0).([]domain.Assignment)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return assignments, token, args.Error(2)
}

func (m *MockAssignmentRepository) CountByPlot(ctx context.Context, plotID int64) (int, error) {
	args := m.Called(ctx, plotID)
	return args.Int(0), args.Error(1)
}

func (m *MockAssignmentRepository) SumCapacity(ctx context.Context, plotID int64, onDate *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, plotID, onDate)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAssignmentRepository) SumCapacityByWorker(ctx context.Context, plotID int64) ([]domain.WorkerConsumption, error) {
	args := m.Called(ctx, plotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkerConsumption), args.Error(1)
}

func (m *MockAssignmentRepository) SumCapacityByDay(ctx context.Context, plotID int64, from, to time.Time) ([]domain.DayConsumption, error) {
	args := m.Called(ctx, plotID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DayConsumption), args.Error(1)
}

func (m *MockAssignmentRepository) ForEachAssignmentInPeriod(ctx context.Context, plotID int64, from, to time.Time, fn func(domain.Assignment) error) error {
	args := m.Called(ctx, plotID, from, to, fn)
	if assignments, ok := args.Get(0).([]domain.Assignment); ok {
		for _, a := range assignments {
			if err := fn(a); err != nil {
				return err
			}
		}
	}
	return args.Error(1)
}

func (m *MockAssignmentRepository) SaveAssignment(ctx context.Context, assignment *domain.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) UpdateAssignmentStatus(ctx context.Context, assignmentID int64, status domain.AssignmentStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, assignmentID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockAssignmentRepository) CompleteActiveByPlot(ctx context.Context, plotID int64, updatedBy string, updatedAt time.Time) ([]int64, error) {
	args := m.Called(ctx, plotID, updatedBy, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockAssignmentRepository) DeleteByPlot(ctx context.Context, plotID int64) (int64, error) {
	args := m.Called(ctx, plotID)
	return args.Get(0).(int64), args.Error(1)
}

type MockFieldRepository struct {
	mock.Mock
}

func (m *MockFieldRepository) FindFieldByID(ctx context.Context, fieldID int64) (*domain.Field, error) {
	args := m.Called(ctx, fieldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Field), args.Error(1)
}

func (m *MockFieldRepository) ListFields(ctx context.Context) ([]domain.Field, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Field), args.Error(1)
}

func (m *MockFieldRepository) SaveField(ctx context.Context, field *domain.Field) error {
	args := m.Called(ctx, field)
	return args.Error(0)
}

func (m *MockFieldRepository) UpdateField(ctx context.Context, field domain.Field) error {
	args := m.Called(ctx, field)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) ListPaymentsByPlot(ctx context.Context, plotID int64, from, to time.Time) ([]domain.Payment, error) {
	args := m.Called(ctx, plotID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SummarizeByPlot(ctx context.Context, plotID int64, from, to time.Time) (domain.PaymentSummary, error) {
	args := m.Called(ctx, plotID, from, to)
	return args.Get(0).(domain.PaymentSummary), args.Error(1)
}

func (m *MockPaymentRepository) CountByPlot(ctx context.Context, plotID int64) (int, error) {
	args := m.Called(ctx, plotID)
	return args.Int(0), args.Error(1)
}

func (m *MockPaymentRepository) DeleteByPlot(ctx context.Context, plotID int64) (int64, error) {
	args := m.Called(ctx, plotID)
	return args.Get(0).(int64), args.Error(1)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) FindSessionByID(ctx context.Context, sessionID int64) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) ListSessions(ctx context.Context) ([]domain.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Session), args.Error(1)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveAuditRecord(ctx context.Context, record *domain.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAuditRepository) ListByEntity(ctx context.Context, entityType string, entityID int64, limit int) ([]domain.AuditRecord, error) {
	args := m.Called(ctx, entityType, entityID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditRecord), args.Error(1)
}

type MockWorkerRepository struct {
	mock.Mock
}

func (m *MockWorkerRepository) FindWorkersByIDs(ctx context.Context, workerIDs []int64) (map[int64]domain.Worker, error) {
	args := m.Called(ctx, workerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Worker), args.Error(1)
}

type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetFieldComparisonData(ctx context.Context, fieldID int64) ([]domain.PlotComparison, error) {
	args := m.Called(ctx, fieldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlotComparison), args.Error(1)
}

// --- Service mocks ---

type MockDuplicateDetector struct {
	mock.Mock
}

func (m *MockDuplicateDetector) DetectDuplicates(ctx context.Context, fieldID int64, location string, excludePlotID *int64, radius *float64) (*domain.DuplicateReport, error) {
	args := m.Called(ctx, fieldID, location, excludePlotID, radius)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DuplicateReport), args.Error(1)
}

// newTestCoordinator wires a coordinator over the fake transaction manager
// with a session that exists unless sessionID is zero.
func newTestCoordinator(sessionRepo *MockSessionRepository, auditRepo *MockAuditRepository, sessionID int64) *services.WriteCoordinator {
	return services.NewWriteCoordinator(fakeTxManager{}, sessionRepo, auditRepo, sessionID)
}
