package services_test

import (
	"context"
	"testing"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type NotificationServiceTestSuite struct {
	suite.Suite
	mockRepo *MockNotificationRepository
	service  portssvc.NotificationSvcFacade
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockNotificationRepository)
	suite.service = services.NewNotificationService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *NotificationServiceTestSuite) TestNotify_Saves() {
	ctx := context.Background()
	userID := uuid.NewString()
	expenseID := uuid.NewString()

	suite.mockRepo.On("SaveNotification", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.UserID == userID &&
			n.Type == domain.NotifyApprovalRequest &&
			n.ExpenseID != nil && *n.ExpenseID == expenseID &&
			!n.IsRead &&
			n.NotificationID != ""
	})).Return(nil).Once()

	suite.service.Notify(ctx, userID, domain.NotifyApprovalRequest, "New Expense Approval Request", "msg", &expenseID)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestNotify_SwallowsSaveError() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("SaveNotification", ctx, mock.AnythingOfType("domain.Notification")).Return(assert.AnError).Once()

	// Must not panic and has no error to return.
	suite.service.Notify(ctx, userID, domain.NotifyExpenseApproved, "Expense Approved", "msg", nil)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestListNotifications() {
	ctx := context.Background()
	userID := uuid.NewString()
	expected := []domain.Notification{{NotificationID: uuid.NewString(), UserID: userID}}

	suite.mockRepo.On("ListNotificationsByUser", ctx, userID, true).Return(expected, nil).Once()

	notifications, err := suite.service.ListNotifications(ctx, userID, true)

	suite.Require().NoError(err)
	suite.Equal(expected, notifications)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestMarkRead_RepoError() {
	ctx := context.Background()

	suite.mockRepo.On("MarkNotificationRead", ctx, "n1", "u1").Return(assert.AnError).Once()

	err := suite.service.MarkRead(ctx, "n1", "u1")

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestNotificationService(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
