package services_test

import (
	"context"
	"testing"

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

const testSessionID = int64(42)

type PlotServiceTestSuite struct {
	suite.Suite
	mockPlotRepo       *MockPlotRepository
	mockFieldRepo      *MockFieldRepository
	mockAssignmentRepo *MockAssignmentRepository
	mockPaymentRepo    *MockPaymentRepository
	mockSessionRepo    *MockSessionRepository
	mockAuditRepo      *MockAuditRepository
	mockDetector       *MockDuplicateDetector
	service            portssvc.PlotSvcFacade
	savedAudits        []domain.AuditRecord
}

func (suite *PlotServiceTestSuite) SetupTest() {
	suite.mockPlotRepo = new(MockPlotRepository)
	suite.mockFieldRepo = new(MockFieldRepository)
	suite.mockAssignmentRepo = new(MockAssignmentRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockSessionRepo = new(MockSessionRepository)
	suite.mockAuditRepo = new(MockAuditRepository)
	suite.mockDetector = new(MockDuplicateDetector)
	suite.savedAudits = nil

	suite.mockSessionRepo.On("FindSessionByID", mock.Anything, testSessionID).
		Return(&domain.Session{SessionID: testSessionID, IsActive: true}, nil).Maybe()
	suite.mockAuditRepo.On("SaveAuditRecord", mock.Anything, mock.AnythingOfType("*domain.AuditRecord")).
		Run(func(args mock.Arguments) {
			suite.savedAudits = append(suite.savedAudits, *args.Get(1).(*domain.AuditRecord))
		}).Return(nil).Maybe()

	coordinator := newTestCoordinator(suite.mockSessionRepo, suite.mockAuditRepo, testSessionID)
	suite.service = services.NewPlotService(coordinator, suite.mockPlotRepo, suite.mockFieldRepo,
		suite.mockAssignmentRepo, suite.mockPaymentRepo, suite.mockDetector)
}

func (suite *PlotServiceTestSuite) TestCreatePlot_Success() {
	ctx := context.Background()
	location := "North-3"
	req := dto.CreatePlotRequest{
		FieldID:       5,
		Location:      &location,
		TotalCapacity: decimal.RequireFromString("10"),
	}

	suite.mockFieldRepo.On("FindFieldByID", ctx, int64(5)).
		Return(&domain.Field{FieldID: 5, Name: "East Farm"}, nil).Once()
	suite.mockDetector.On("DetectDuplicates", ctx, int64(5), location, (*int64)(nil), (*float64)(nil)).
		Return(&domain.DuplicateReport{FieldID: 5, Location: location, RiskLevel: domain.RiskNone}, nil).Once()
	suite.mockPlotRepo.On("FindPlotByFieldAndLocation", mock.Anything, int64(5), location).
		Return(nil, apperrors.NewNotFoundError("no plot at location")).Once()
	suite.mockPlotRepo.On("SavePlot", mock.Anything, mock.AnythingOfType("*domain.Plot")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Plot).PlotID = 17
		}).Return(nil).Once()

	plot, report, err := suite.service.CreatePlot(ctx, req, "actor-1")

	suite.Require().NoError(err)
	suite.Equal(int64(17), plot.PlotID)
	suite.Equal(domain.PlotActive, plot.Status)
	suite.Equal(testSessionID, plot.SessionID)
	suite.Equal("actor-1", plot.CreatedBy)
	suite.Require().NotNil(report)
	suite.Equal(domain.RiskNone, report.RiskLevel)

	suite.Require().Len(suite.savedAudits, 1)
	suite.Equal(domain.ActionCreate, suite.savedAudits[0].Action)
	suite.Equal("plot", suite.savedAudits[0].EntityType)
	suite.Equal(int64(17), suite.savedAudits[0].EntityID)
	suite.Equal(testSessionID, suite.savedAudits[0].SessionID)
	suite.mockPlotRepo.AssertExpectations(suite.T())
}

func (suite *PlotServiceTestSuite) TestCreatePlot_LocationConflict() {
	ctx := context.Background()
	location := "North-1"
	req := dto.CreatePlotRequest{FieldID: 5, Location: &location, TotalCapacity: decimal.RequireFromString("10")}

	suite.mockFieldRepo.On("FindFieldByID", ctx, int64(5)).
		Return(&domain.Field{FieldID: 5}, nil).Once()
	suite.mockDetector.On("DetectDuplicates", ctx, int64(5), location, (*int64)(nil), (*float64)(nil)).
		Return(&domain.DuplicateReport{FieldID: 5, RiskLevel: domain.RiskHigh}, nil).Once()
	suite.mockPlotRepo.On("FindPlotByFieldAndLocation", mock.Anything, int64(5), location).
		Return(&domain.Plot{PlotID: 1, FieldID: 5, Location: &location}, nil).Once()

	plot, _, err := suite.service.CreatePlot(ctx, req, "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(plot)
	suite.Empty(suite.savedAudits)
	suite.mockPlotRepo.AssertNotCalled(suite.T(), "SavePlot", mock.Anything, mock.Anything)
}

func (suite *PlotServiceTestSuite) TestCreatePlot_NegativeCapacityRejected() {
	ctx := context.Background()
	req := dto.CreatePlotRequest{FieldID: 5, TotalCapacity: decimal.RequireFromString("-1")}

	_, _, err := suite.service.CreatePlot(ctx, req, "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockFieldRepo.AssertNotCalled(suite.T(), "FindFieldByID", mock.Anything, mock.Anything)
}

func (suite *PlotServiceTestSuite) TestCreatePlot_NoDefaultSession() {
	ctx := context.Background()
	req := dto.CreatePlotRequest{FieldID: 5, TotalCapacity: decimal.RequireFromString("10")}

	suite.mockFieldRepo.On("FindFieldByID", ctx, int64(5)).
		Return(&domain.Field{FieldID: 5}, nil).Once()

	coordinator := newTestCoordinator(suite.mockSessionRepo, suite.mockAuditRepo, 0)
	service := services.NewPlotService(coordinator, suite.mockPlotRepo, suite.mockFieldRepo,
		suite.mockAssignmentRepo, suite.mockPaymentRepo, suite.mockDetector)

	_, _, err := service.CreatePlot(ctx, req, "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPreconditionFailed)
	suite.mockPlotRepo.AssertNotCalled(suite.T(), "SavePlot", mock.Anything, mock.Anything)
}

func (suite *PlotServiceTestSuite) TestAdjustCapacity_AddSuccess() {
	ctx := context.Background()
	plot := &domain.Plot{PlotID: 7, FieldID: 5, TotalCapacity: decimal.RequireFromString("10"), Status: domain.PlotActive}
	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(7)).Return(plot, nil).Once()
	suite.mockPlotRepo.On("UpdatePlotCapacity", mock.Anything, int64(7),
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.RequireFromString("15")) }),
		"actor-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	req := dto.AdjustCapacityRequest{Mode: domain.AdjustAdd, Amount: decimal.RequireFromString("5")}
	updated, err := suite.service.AdjustCapacity(ctx, 7, req, "actor-1")

	suite.Require().NoError(err)
	suite.True(updated.TotalCapacity.Equal(decimal.RequireFromString("15")))

	suite.Require().Len(suite.savedAudits, 1)
	suite.Equal(domain.ActionCapacityAdjust, suite.savedAudits[0].Action)
	suite.Equal("10", suite.savedAudits[0].Details["capacityBefore"])
	suite.Equal("15", suite.savedAudits[0].Details["capacityAfter"])
	suite.mockPlotRepo.AssertExpectations(suite.T())
}

func (suite *PlotServiceTestSuite) TestAdjustCapacity_SubtractBelowZeroRejected() {
	ctx := context.Background()
	plot := &domain.Plot{PlotID: 7, TotalCapacity: decimal.RequireFromString("10"), Status: domain.PlotActive}
	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(7)).Return(plot, nil).Once()

	req := dto.AdjustCapacityRequest{Mode: domain.AdjustSubtract, Amount: decimal.RequireFromString("11")}
	_, err := suite.service.AdjustCapacity(ctx, 7, req, "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Empty(suite.savedAudits)
	suite.mockPlotRepo.AssertNotCalled(suite.T(), "UpdatePlotCapacity",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PlotServiceTestSuite) TestAdjustCapacity_NegativeAmountRejected() {
	ctx := context.Background()
	req := dto.AdjustCapacityRequest{Mode: domain.AdjustSet, Amount: decimal.RequireFromString("-5")}

	_, err := suite.service.AdjustCapacity(ctx, 7, req, "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PlotServiceTestSuite) TestChangeStatus_CompleteCascadesAssignments() {
	ctx := context.Background()
	plot := &domain.Plot{PlotID: 7, FieldID: 5, TotalCapacity: decimal.RequireFromString("10"), Status: domain.PlotActive}
	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(7)).Return(plot, nil).Once()
	suite.mockAssignmentRepo.On("CompleteActiveByPlot", mock.Anything, int64(7), "actor-1", mock.AnythingOfType("time.Time")).
		Return([]int64{101, 102}, nil).Once()
	suite.mockPlotRepo.On("UpdatePlotStatus", mock.Anything, int64(7), domain.PlotCompleted, "actor-1", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	updated, err := suite.service.ChangeStatus(ctx, 7, domain.PlotCompleted, "actor-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PlotCompleted, updated.Status)

	// The cascade belongs to the status change's single audit record.
	suite.Require().Len(suite.savedAudits, 1)
	record := suite.savedAudits[0]
	suite.Equal(domain.ActionStatusChange, record.Action)
	suite.Equal("ACTIVE", record.Details["statusBefore"])
	suite.Equal("COMPLETED", record.Details["statusAfter"])
	suite.Equal([]int64{101, 102}, record.Details["cascadedAssignmentIDs"])
	suite.mockAssignmentRepo.AssertExpectations(suite.T())
}

func (suite *PlotServiceTestSuite) TestChangeStatus_SameStatusIsNoOp() {
	ctx := context.Background()
	plot := &domain.Plot{PlotID: 7, Status: domain.PlotActive}
	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(7)).Return(plot, nil).Once()

	updated, err := suite.service.ChangeStatus(ctx, 7, domain.PlotActive, "actor-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PlotActive, updated.Status)
	suite.Empty(suite.savedAudits)
	suite.mockPlotRepo.AssertNotCalled(suite.T(), "UpdatePlotStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PlotServiceTestSuite) TestChangeStatus_UnknownStatusRejected() {
	ctx := context.Background()

	_, err := suite.service.ChangeStatus(ctx, 7, domain.PlotStatus("RETIRED"), "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PlotServiceTestSuite) TestDeletePlot_WithDependentsNeedsForce() {
	ctx := context.Background()
	plot := &domain.Plot{PlotID: 7, Status: domain.PlotActive, TotalCapacity: decimal.RequireFromString("10")}
	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(7)).Return(plot, nil).Once()
	suite.mockAssignmentRepo.On("CountByPlot", mock.Anything, int64(7)).Return(3, nil).Once()
	suite.mockPaymentRepo.On("CountByPlot", mock.Anything, int64(7)).Return(1, nil).Once()

	err := suite.service.DeletePlot(ctx, 7, false, "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPlotRepo.AssertNotCalled(suite.T(), "DeletePlot", mock.Anything, mock.Anything)
}

func (suite *PlotServiceTestSuite) TestDeletePlot_ForceCascades() {
	ctx := context.Background()
	plot := &domain.Plot{PlotID: 7, Status: domain.PlotActive, TotalCapacity: decimal.RequireFromString("10")}
	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(7)).Return(plot, nil).Once()
	suite.mockAssignmentRepo.On("CountByPlot", mock.Anything, int64(7)).Return(3, nil).Once()
	suite.mockPaymentRepo.On("CountByPlot", mock.Anything, int64(7)).Return(1, nil).Once()
	suite.mockAssignmentRepo.On("DeleteByPlot", mock.Anything, int64(7)).Return(int64(3), nil).Once()
	suite.mockPaymentRepo.On("DeleteByPlot", mock.Anything, int64(7)).Return(int64(1), nil).Once()
	suite.mockPlotRepo.On("DeletePlot", mock.Anything, int64(7)).Return(nil).Once()

	err := suite.service.DeletePlot(ctx, 7, true, "actor-1")

	suite.Require().NoError(err)
	suite.Require().Len(suite.savedAudits, 1)
	suite.Equal(domain.ActionDelete, suite.savedAudits[0].Action)
	suite.Equal(int64(3), suite.savedAudits[0].Details["deletedAssignments"])
	suite.Equal(int64(1), suite.savedAudits[0].Details["deletedPayments"])
	suite.mockPlotRepo.AssertExpectations(suite.T())
}

func (suite *PlotServiceTestSuite) TestDeletePlot_NoDependentsDeletesDirectly() {
	ctx := context.Background()
	plot := &domain.Plot{PlotID: 7, Status: domain.PlotActive, TotalCapacity: decimal.RequireFromString("10")}
	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(7)).Return(plot, nil).Once()
	suite.mockAssignmentRepo.On("CountByPlot", mock.Anything, int64(7)).Return(0, nil).Once()
	suite.mockPaymentRepo.On("CountByPlot", mock.Anything, int64(7)).Return(0, nil).Once()
	suite.mockPlotRepo.On("DeletePlot", mock.Anything, int64(7)).Return(nil).Once()

	err := suite.service.DeletePlot(ctx, 7, false, "actor-1")

	suite.Require().NoError(err)
	suite.mockAssignmentRepo.AssertNotCalled(suite.T(), "DeleteByPlot", mock.Anything, mock.Anything)
}

func (suite *PlotServiceTestSuite) TestBulkCreatePlots_IsolatesItemFailures() {
	ctx := context.Background()
	goodLocation := "West-1"
	req := dto.BulkCreatePlotsRequest{Plots: []dto.CreatePlotRequest{
		{FieldID: 5, Location: &goodLocation, TotalCapacity: decimal.RequireFromString("10")},
		{FieldID: 99, TotalCapacity: decimal.RequireFromString("10")},
		{FieldID: 5, TotalCapacity: decimal.RequireFromString("-1")},
	}}

	suite.mockFieldRepo.On("FindFieldByID", mock.Anything, int64(5)).
		Return(&domain.Field{FieldID: 5}, nil)
	suite.mockFieldRepo.On("FindFieldByID", mock.Anything, int64(99)).
		Return(nil, apperrors.NewNotFoundError("field not found"))
	suite.mockPlotRepo.On("FindPlotByFieldAndLocation", mock.Anything, int64(5), goodLocation).
		Return(nil, apperrors.NewNotFoundError("no plot at location")).Once()
	suite.mockPlotRepo.On("SavePlot", mock.Anything, mock.AnythingOfType("*domain.Plot")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Plot).PlotID = 21
		}).Return(nil).Once()

	result, err := suite.service.BulkCreatePlots(ctx, req, "actor-1")

	suite.Require().NoError(err)
	suite.Require().Len(result.Created, 1)
	suite.Equal(int64(21), result.Created[0].PlotID)
	suite.Require().Len(result.Failed, 2)
	suite.Equal(1, result.Failed[0].Index)
	suite.Contains(result.Failed[0].Reason, "does not exist")
	suite.Equal(2, result.Failed[1].Index)
	suite.Contains(result.Failed[1].Reason, "negative")

	suite.Require().Len(suite.savedAudits, 1)
	suite.Equal(domain.ActionBulkCreate, suite.savedAudits[0].Action)
}

func (suite *PlotServiceTestSuite) TestBulkCreatePlots_PersistenceErrorFailsBatch() {
	ctx := context.Background()
	req := dto.BulkCreatePlotsRequest{Plots: []dto.CreatePlotRequest{
		{FieldID: 5, TotalCapacity: decimal.RequireFromString("10")},
	}}

	suite.mockFieldRepo.On("FindFieldByID", mock.Anything, int64(5)).
		Return(&domain.Field{FieldID: 5}, nil)
	suite.mockPlotRepo.On("SavePlot", mock.Anything, mock.AnythingOfType("*domain.Plot")).
		Return(assert.AnError).Once()

	result, err := suite.service.BulkCreatePlots(ctx, req, "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Nil(result)
	suite.Empty(suite.savedAudits)
}

func (suite *PlotServiceTestSuite) TestBulkCreatePlots_FieldLookupErrorFailsBatch() {
	ctx := context.Background()
	req := dto.BulkCreatePlotsRequest{Plots: []dto.CreatePlotRequest{
		{FieldID: 5, TotalCapacity: decimal.RequireFromString("10")},
		{FieldID: 6, TotalCapacity: decimal.RequireFromString("10")},
	}}

	// An infrastructure failure during validation is not a per-item
	// rejection; it rolls back the whole batch.
	suite.mockFieldRepo.On("FindFieldByID", mock.Anything, int64(5)).
		Return(nil, apperrors.NewAppError(500, "field lookup failed", assert.AnError)).Once()

	result, err := suite.service.BulkCreatePlots(ctx, req, "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Nil(result)
	suite.Empty(suite.savedAudits)
	suite.mockPlotRepo.AssertNotCalled(suite.T(), "SavePlot", mock.Anything, mock.Anything)
}

func (suite *PlotServiceTestSuite) TestBulkCreatePlots_EmptyBatchRejected() {
	ctx := context.Background()

	_, err := suite.service.BulkCreatePlots(ctx, dto.BulkCreatePlotsRequest{}, "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PlotServiceTestSuite) TestBulkChangeStatus_IsolatesMissingPlots() {
	ctx := context.Background()
	req := dto.BulkChangePlotStatusRequest{
		PlotIDs: []int64{7, 99, 8},
		Status:  domain.PlotInactive,
	}

	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(7)).
		Return(&domain.Plot{PlotID: 7, FieldID: 5, Status: domain.PlotActive}, nil).Once()
	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(99)).
		Return(nil, apperrors.NewNotFoundError("plot not found")).Once()
	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(8)).
		Return(&domain.Plot{PlotID: 8, FieldID: 5, Status: domain.PlotInactive}, nil).Once()
	suite.mockPlotRepo.On("UpdatePlotStatus", mock.Anything, int64(7), domain.PlotInactive, "actor-1", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	result, err := suite.service.BulkChangeStatus(ctx, req, "actor-1")

	suite.Require().NoError(err)
	suite.Require().Len(result.Updated, 2)
	suite.Equal(int64(7), result.Updated[0].PlotID)
	suite.Equal(string(domain.PlotInactive), result.Updated[0].Status)
	// Plot 8 was already inactive; it passes through without a second update.
	suite.Equal(int64(8), result.Updated[1].PlotID)
	suite.Require().Len(result.Failed, 1)
	suite.Equal(1, result.Failed[0].Index)
	suite.Contains(result.Failed[0].Reason, "does not exist")

	suite.Require().Len(suite.savedAudits, 1)
	suite.Equal(domain.ActionStatusChange, suite.savedAudits[0].Action)
	suite.Equal(int64(7), suite.savedAudits[0].EntityID)
	suite.mockPlotRepo.AssertNumberOfCalls(suite.T(), "UpdatePlotStatus", 1)
}

func (suite *PlotServiceTestSuite) TestBulkChangeStatus_CompletedCascadesEachPlot() {
	ctx := context.Background()
	req := dto.BulkChangePlotStatusRequest{
		PlotIDs: []int64{7, 8},
		Status:  domain.PlotCompleted,
	}

	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(7)).
		Return(&domain.Plot{PlotID: 7, FieldID: 5, Status: domain.PlotActive}, nil).Once()
	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(8)).
		Return(&domain.Plot{PlotID: 8, FieldID: 5, Status: domain.PlotActive}, nil).Once()
	suite.mockAssignmentRepo.On("CompleteActiveByPlot", mock.Anything, int64(7), "actor-1", mock.AnythingOfType("time.Time")).
		Return([]int64{101}, nil).Once()
	suite.mockAssignmentRepo.On("CompleteActiveByPlot", mock.Anything, int64(8), "actor-1", mock.AnythingOfType("time.Time")).
		Return([]int64{}, nil).Once()
	suite.mockPlotRepo.On("UpdatePlotStatus", mock.Anything, int64(7), domain.PlotCompleted, "actor-1", mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockPlotRepo.On("UpdatePlotStatus", mock.Anything, int64(8), domain.PlotCompleted, "actor-1", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	result, err := suite.service.BulkChangeStatus(ctx, req, "actor-1")

	suite.Require().NoError(err)
	suite.Len(result.Updated, 2)
	suite.Empty(result.Failed)
	suite.Require().Len(suite.savedAudits, 2)
	suite.Equal([]int64{101}, suite.savedAudits[0].Details["cascadedAssignmentIDs"])
	suite.mockAssignmentRepo.AssertExpectations(suite.T())
}

func (suite *PlotServiceTestSuite) TestBulkChangeStatus_PersistenceErrorFailsBatch() {
	ctx := context.Background()
	req := dto.BulkChangePlotStatusRequest{
		PlotIDs: []int64{7, 8},
		Status:  domain.PlotInactive,
	}

	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(7)).
		Return(&domain.Plot{PlotID: 7, FieldID: 5, Status: domain.PlotActive}, nil).Once()
	suite.mockPlotRepo.On("UpdatePlotStatus", mock.Anything, int64(7), domain.PlotInactive, "actor-1", mock.AnythingOfType("time.Time")).
		Return(assert.AnError).Once()

	result, err := suite.service.BulkChangeStatus(ctx, req, "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Nil(result)
	suite.Empty(suite.savedAudits)
	suite.mockPlotRepo.AssertNotCalled(suite.T(), "FindPlotByID", mock.Anything, int64(8))
}

func (suite *PlotServiceTestSuite) TestBulkChangeStatus_UnknownStatusRejected() {
	ctx := context.Background()
	req := dto.BulkChangePlotStatusRequest{PlotIDs: []int64{7}, Status: "PLOWED"}

	_, err := suite.service.BulkChangeStatus(ctx, req, "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPlotRepo.AssertNotCalled(suite.T(), "FindPlotByID", mock.Anything, mock.Anything)
}

func (suite *PlotServiceTestSuite) TestUpdatePlot_AppendsNotes() {
	ctx := context.Background()
	plot := &domain.Plot{PlotID: 7, FieldID: 5, Notes: "first", Status: domain.PlotActive}
	suite.mockPlotRepo.On("FindPlotByID", mock.Anything, int64(7)).Return(plot, nil).Once()
	suite.mockPlotRepo.On("UpdatePlot", mock.Anything, mock.MatchedBy(func(p domain.Plot) bool {
		return p.Notes == "first\nsecond"
	})).Return(nil).Once()

	note := "second"
	updated, err := suite.service.UpdatePlot(ctx, 7, dto.UpdatePlotRequest{Notes: &note}, "actor-1")

	suite.Require().NoError(err)
	suite.Equal("first\nsecond", updated.Notes)
	suite.Require().Len(suite.savedAudits, 1)
	suite.Equal(domain.ActionUpdate, suite.savedAudits[0].Action)
	suite.Equal("second", suite.savedAudits[0].Details["notesAppended"])
}

func (suite *PlotServiceTestSuite) TestUpdatePlot_NoFieldsRejected() {
	ctx := context.Background()

	_, err := suite.service.UpdatePlot(ctx, 7, dto.UpdatePlotRequest{}, "actor-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestPlotService(t *testing.T) {
	suite.Run(t, new(PlotServiceTestSuite))
}
