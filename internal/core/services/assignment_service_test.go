package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/agritrack/plot_capacity_app/internal/apperrors"
	"github.com/agritrack/plot_capacity_app/internal/core/domain"
	"github.com/agritrack/plot_capacity_app/internal/core/services"
	portssvc "github.com/agritrack/plot_capacity_app/internal/core/ports/services"
	"github.com/agritrack/plot_capacity_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AssignmentServiceTestSuite struct {
	suite.Suite
	mockPlotRepo       *MockPlotRepository
	mockAssignmentRepo *MockAssignmentRepository
	mockSessionRepo    *MockSessionRepository
	mockAuditRepo      *MockAuditRepository
	service            portssvc.AssignmentSvcFacade
	savedAudits        []domain.AuditRecord
}

func (suite *AssignmentServiceTestSuite) SetupTest() {
	suite.mockPlotRepo = new(MockPlotRepository)
	suite.mockAssignmentRepo = new(MockAssignmentRepository)
	suite.mockSessionRepo = new(MockSessionRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.savedAudits = nil

	suite.mockSessionRepo.On("FindSessionByID", mock.Anything, testSessionID).
		Return(&domain.Session{SessionID: testSessionID, IsActive: true}, nil).Maybe()
	suite.mockAuditRepo.On("SaveAuditRecord", mock.Anything, mock.AnythingOfType("*domain.AuditRecord")).
		Run(func(args mock.Arguments) {
			suite.savedAudits = append(suite.savedAudits, *args.Get(1).(*domain.AuditRecord))
		}).Return(nil).Maybe()

	coordinator := newTestCoordinator(suite.mockSessionRepo, suite.mockAuditRepo, testSessionID)
	// The real validator runs against the same repos, so creation tests
	// exercise the validate-then-book path end to end.
	validator := services.NewCapacityValidator(suite.mockPlotRepo, suite.mockAssignmentRepo)
	suite.service = services.NewAssignmentService(coordinator, suite.mockAssignmentRepo, suite.mockPlotRepo, validator)
}

func (suite *AssignmentServiceTestSuite) activePlot(plotID int64, capacity string) *domain.Plot {
	return &domain.Plot{
		PlotID:        plotID,
		FieldID:       1,
		TotalCapacity: decimal.RequireFromString(capacity),
		Status:        domain.PlotActive,
	}
}

func (suite *AssignmentServiceTestSuite) createRequest(plotID int64, count string) dto.CreateAssignmentRequest {
	return dto.CreateAssignmentRequest{
		PlotID:         plotID,
		WorkerID:       33,
		AssignmentDate: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		CapacityCount:  decimal.RequireFromString(count),
	}
}

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_Success() {
	ctx := context.Background()
	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(7)).Return(suite.activePlot(7, "10"), nil)
	suite.mockAssignmentRepo.On("SumCapacity", mock.Anything, int64(7), (*time.Time)(nil)).
		Return(decimal.RequireFromString("6"), nil).Once()
	suite.mockAssignmentRepo.On("SaveAssignment", mock.Anything, mock.AnythingOfType("*domain.Assignment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Assignment).AssignmentID = 301
		}).Return(nil).Once()

	assignment, err := suite.service.CreateAssignment(ctx, suite.createRequest(7, "4"), "actor-1")

	suite.Require().NoError(err)
	suite.Equal(int64(301), assignment.AssignmentID)
	suite.Equal(domain.AssignmentActive, assignment.Status)
	suite.Equal(testSessionID, assignment.SessionID)
	suite.Equal("actor-1", assignment.CreatedBy)

	suite.Require().Len(suite.savedAudits, 1)
	suite.Equal(domain.ActionCreate, suite.savedAudits[0].Action)
	suite.Equal("assignment", suite.savedAudits[0].EntityType)
	suite.mockAssignmentRepo.AssertExpectations(suite.T())
}

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_ExceedsRemainingCapacity() {
	ctx := context.Background()
	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(7)).Return(suite.activePlot(7, "10"), nil)
	suite.mockAssignmentRepo.On("SumCapacity", mock.Anything, int64(7), (*time.Time)(nil)).
		Return(decimal.RequireFromString("6"), nil).Once()

	assignment, err := suite.service.CreateAssignment(ctx, suite.createRequest(7, "5"), "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), "exceeds remaining capacity 4")
	suite.Nil(assignment)
	suite.Empty(suite.savedAudits)
	suite.mockAssignmentRepo.AssertNotCalled(suite.T(), "SaveAssignment", mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_InactivePlotRejected() {
	ctx := context.Background()
	plot := suite.activePlot(7, "10")
	plot.Status = domain.PlotCompleted
	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(7)).Return(plot, nil)

	_, err := suite.service.CreateAssignment(ctx, suite.createRequest(7, "4"), "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAssignmentRepo.AssertNotCalled(suite.T(), "SumCapacity", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestCreateAssignment_NonPositiveCountRejected() {
	ctx := context.Background()

	_, err := suite.service.CreateAssignment(ctx, suite.createRequest(7, "0"), "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPlotRepo.AssertNotCalled(suite.T(), "FindPlotByID", mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestBulkCreateAssignments_LaterItemsSeeEarlierBookings() {
	// Claims of 4 and 5 against a 10-capacity plot with 2 already
	// consumed: the first fits, the second validates against the state
	// including the first's booking and lands in Failed with the batch
	// still committing.
	ctx := context.Background()
	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(7)).Return(suite.activePlot(7, "10"), nil)
	suite.mockAssignmentRepo.On("SumCapacity", mock.Anything, int64(7), (*time.Time)(nil)).
		Return(decimal.RequireFromString("2"), nil).Once()
	suite.mockAssignmentRepo.On("SumCapacity", mock.Anything, int64(7), (*time.Time)(nil)).
		Return(decimal.RequireFromString("6"), nil).Once()
	suite.mockAssignmentRepo.On("SaveAssignment", mock.Anything, mock.AnythingOfType("*domain.Assignment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Assignment).AssignmentID = 301
		}).Return(nil).Once()

	req := dto.BulkCreateAssignmentsRequest{Assignments: []dto.CreateAssignmentRequest{
		suite.createRequest(7, "4"),
		suite.createRequest(7, "5"),
	}}
	result, err := suite.service.BulkCreateAssignments(ctx, req, "actor-1")

	suite.Require().NoError(err)
	suite.Require().Len(result.Created, 1)
	suite.Equal(int64(301), result.Created[0].AssignmentID)
	suite.Require().Len(result.Failed, 1)
	suite.Equal(1, result.Failed[0].Index)
	suite.Contains(result.Failed[0].Reason, "exceeds remaining capacity")

	suite.Require().Len(suite.savedAudits, 1)
	suite.Equal(domain.ActionBulkCreate, suite.savedAudits[0].Action)
}

func (suite *AssignmentServiceTestSuite) TestBulkCreateAssignments_NonPositiveItemIsolated() {
	ctx := context.Background()
	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(7)).Return(suite.activePlot(7, "10"), nil)
	suite.mockAssignmentRepo.On("SumCapacity", mock.Anything, int64(7), (*time.Time)(nil)).
		Return(decimal.Zero, nil).Once()
	suite.mockAssignmentRepo.On("SaveAssignment", mock.Anything, mock.AnythingOfType("*domain.Assignment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Assignment).AssignmentID = 302
		}).Return(nil).Once()

	req := dto.BulkCreateAssignmentsRequest{Assignments: []dto.CreateAssignmentRequest{
		suite.createRequest(7, "0"),
		suite.createRequest(7, "3"),
	}}
	result, err := suite.service.BulkCreateAssignments(ctx, req, "actor-1")

	suite.Require().NoError(err)
	suite.Require().Len(result.Failed, 1)
	suite.Equal(0, result.Failed[0].Index)
	suite.Require().Len(result.Created, 1)
}

func (suite *AssignmentServiceTestSuite) TestBulkCreateAssignments_PersistenceErrorFailsBatch() {
	ctx := context.Background()
	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(7)).Return(suite.activePlot(7, "10"), nil)
	suite.mockAssignmentRepo.On("SumCapacity", mock.Anything, int64(7), (*time.Time)(nil)).
		Return(decimal.Zero, nil).Once()
	suite.mockAssignmentRepo.On("SaveAssignment", mock.Anything, mock.AnythingOfType("*domain.Assignment")).
		Return(assert.AnError).Once()

	req := dto.BulkCreateAssignmentsRequest{Assignments: []dto.CreateAssignmentRequest{
		suite.createRequest(7, "3"),
	}}
	result, err := suite.service.BulkCreateAssignments(ctx, req, "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Nil(result)
	suite.Empty(suite.savedAudits)
}

func (suite *AssignmentServiceTestSuite) TestCompleteAssignment_Success() {
	ctx := context.Background()
	assignment := &domain.Assignment{
		AssignmentID:  301,
		PlotID:        7,
		WorkerID:      33,
		CapacityCount: decimal.RequireFromString("4"),
		Status:        domain.AssignmentActive,
	}
	suite.mockAssignmentRepo.On("FindAssignmentByID", mock.Anything, int64(301)).Return(assignment, nil).Once()
	suite.mockAssignmentRepo.On("UpdateAssignmentStatus", mock.Anything, int64(301), domain.AssignmentCompleted,
		"actor-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.CompleteAssignment(ctx, 301, "actor-1")

	suite.Require().NoError(err)
	suite.Equal(domain.AssignmentCompleted, updated.Status)
	suite.Require().Len(suite.savedAudits, 1)
	suite.Equal(domain.ActionStatusChange, suite.savedAudits[0].Action)
	suite.Equal("ACTIVE", suite.savedAudits[0].Details["statusBefore"])
	suite.Equal("COMPLETED", suite.savedAudits[0].Details["statusAfter"])
}

func (suite *AssignmentServiceTestSuite) TestCompleteAssignment_AlreadyCompletedIsNoOp() {
	ctx := context.Background()
	assignment := &domain.Assignment{AssignmentID: 301, Status: domain.AssignmentCompleted}
	suite.mockAssignmentRepo.On("FindAssignmentByID", mock.Anything, int64(301)).Return(assignment, nil).Once()

	updated, err := suite.service.CompleteAssignment(ctx, 301, "actor-1")

	suite.Require().NoError(err)
	suite.Equal(domain.AssignmentCompleted, updated.Status)
	suite.Empty(suite.savedAudits)
	suite.mockAssignmentRepo.AssertNotCalled(suite.T(), "UpdateAssignmentStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AssignmentServiceTestSuite) TestCancelAssignment_CompletedCannotCancel() {
	ctx := context.Background()
	assignment := &domain.Assignment{AssignmentID: 301, Status: domain.AssignmentCompleted}
	suite.mockAssignmentRepo.On("FindAssignmentByID", mock.Anything, int64(301)).Return(assignment, nil).Once()

	_, err := suite.service.CancelAssignment(ctx, 301, "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *AssignmentServiceTestSuite) TestCancelAssignment_Success() {
	ctx := context.Background()
	assignment := &domain.Assignment{AssignmentID: 301, Status: domain.AssignmentActive, CapacityCount: decimal.RequireFromString("4")}
	suite.mockAssignmentRepo.On("FindAssignmentByID", mock.Anything, int64(301)).Return(assignment, nil).Once()
	suite.mockAssignmentRepo.On("UpdateAssignmentStatus", mock.Anything, int64(301), domain.AssignmentCancelled,
		"actor-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.CancelAssignment(ctx, 301, "actor-1")

	suite.Require().NoError(err)
	suite.Equal(domain.AssignmentCancelled, updated.Status)
}

func (suite *AssignmentServiceTestSuite) TestGetAssignmentByID_NotFound() {
	ctx := context.Background()
	suite.mockAssignmentRepo.On("FindAssignmentByID", ctx, int64(404)).
		Return(nil, apperrors.NewNotFoundError("assignment not found")).Once()

	_, err := suite.service.GetAssignmentByID(ctx, 404)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAssignmentService(t *testing.T) {
	suite.Run(t, new(AssignmentServiceTestSuite))
}
