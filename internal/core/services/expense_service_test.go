package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/core/services"
	"github.com/expenseflow/expense_approval_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ConversionSvc ---
type MockConversionSvc struct {
	mock.Mock
}

func (m *MockConversionSvc) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (*dto.ConversionResult, error) {
	args := m.Called(ctx, amount, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConversionResult), args.Error(1)
}

// --- Mock ChainBuilder ---
type MockChainBuilder struct {
	mock.Mock
}

func (m *MockChainBuilder) BuildApprovalChain(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

// --- Mock ReceiptExtractor ---
type MockReceiptExtractor struct {
	mock.Mock
}

func (m *MockReceiptExtractor) ExtractReceipt(ctx context.Context, imagePath string) (*portssvc.ReceiptData, error) {
	args := m.Called(ctx, imagePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.ReceiptData), args.Error(1)
}

// --- Test Suite ---
type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo  *MockExpenseRepository
	mockApprovalRepo *MockApprovalRepository
	mockUserRepo     *MockUserRepository
	mockCompanyRepo  *MockCompanyRepository
	mockCategoryRepo *MockCategoryRepository
	mockConversion   *MockConversionSvc
	mockChainBuilder *MockChainBuilder
	mockNotifier     *MockNotifier
	mockExtractor    *MockReceiptExtractor
	service          portssvc.ExpenseSvcFacade

	company  *domain.Company
	owner    *domain.User
	category *domain.ExpenseCategory
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockApprovalRepo = new(MockApprovalRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockConversion = new(MockConversionSvc)
	suite.mockChainBuilder = new(MockChainBuilder)
	suite.mockNotifier = new(MockNotifier)
	suite.mockExtractor = new(MockReceiptExtractor)

	suite.service = services.NewExpenseService(
		suite.mockExpenseRepo, suite.mockApprovalRepo, suite.mockUserRepo,
		suite.mockCompanyRepo, suite.mockCategoryRepo, suite.mockConversion,
		suite.mockChainBuilder, suite.mockNotifier, suite.mockExtractor,
	)

	suite.company = &domain.Company{CompanyID: uuid.NewString(), Name: "Acme", CurrencyCode: "USD"}
	suite.owner = &domain.User{UserID: uuid.NewString(), CompanyID: suite.company.CompanyID, Role: domain.RoleEmployee, FullName: "Emp Loyee"}
	suite.category = &domain.ExpenseCategory{CategoryID: uuid.NewString(), CompanyID: suite.company.CompanyID, Name: "Travel", IsActive: true}
}

func (suite *ExpenseServiceTestSuite) draftExpense() *domain.Expense {
	return &domain.Expense{
		ExpenseID:    uuid.NewString(),
		UserID:       suite.owner.UserID,
		CompanyID:    suite.company.CompanyID,
		Amount:       decimal.RequireFromString("100"),
		CurrencyCode: "EUR",
		CategoryID:   suite.category.CategoryID,
		Status:       domain.ExpenseDraft,
	}
}

// --- CreateExpense ---

func (suite *ExpenseServiceTestSuite) TestCreateExpense_Success() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{
		Amount:       decimal.RequireFromString("42.50"),
		CurrencyCode: "EUR",
		CategoryID:   suite.category.CategoryID,
		Description:  "Taxi",
		ExpenseDate:  time.Now(),
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.owner.UserID).Return(suite.owner, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, suite.category.CategoryID).Return(suite.category, nil).Once()
	suite.mockExpenseRepo.On("SaveExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.Status == domain.ExpenseDraft && e.UserID == suite.owner.UserID && e.CompanyID == suite.company.CompanyID && e.AmountInCompanyCurrency == nil
	})).Return(nil).Once()

	expense, err := suite.service.CreateExpense(ctx, req, suite.owner.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.Equal(domain.ExpenseDraft, expense.Status)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateExpenseRequest{Amount: decimal.Zero, CurrencyCode: "EUR", CategoryID: suite.category.CategoryID}

	expense, err := suite.service.CreateExpense(ctx, req, suite.owner.UserID)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestCreateExpense_ForeignCategory() {
	ctx := context.Background()
	foreignCategory := &domain.ExpenseCategory{CategoryID: uuid.NewString(), CompanyID: uuid.NewString()}
	req := dto.CreateExpenseRequest{
		Amount:       decimal.NewFromInt(10),
		CurrencyCode: "EUR",
		CategoryID:   foreignCategory.CategoryID,
		ExpenseDate:  time.Now(),
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.owner.UserID).Return(suite.owner, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, foreignCategory.CategoryID).Return(foreignCategory, nil).Once()

	expense, err := suite.service.CreateExpense(ctx, req, suite.owner.UserID)

	suite.Require().Error(err)
	suite.Nil(expense)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- SubmitExpense ---

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_NormalizesAndBuildsChain() {
	ctx := context.Background()
	expense := suite.draftExpense()
	converted := decimal.RequireFromString("92")
	rate := decimal.RequireFromString("0.92")

	// Read once for validation, once more after the chain build.
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Twice()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.owner.UserID).Return(suite.owner, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.company.CompanyID).Return(suite.company, nil).Once()
	suite.mockConversion.On("Convert", ctx, expense.Amount, "EUR", "USD").
		Return(&dto.ConversionResult{Amount: converted, Rate: rate}, nil).Once()
	suite.mockExpenseRepo.On("SetNormalizedAmount", ctx, expense.ExpenseID, converted, rate, mock.Anything, suite.owner.UserID).Return(nil).Once()
	suite.mockChainBuilder.On("BuildApprovalChain", ctx, mock.MatchedBy(func(e *domain.Expense) bool {
		return e.Status == domain.ExpensePending &&
			e.AmountInCompanyCurrency != nil && e.AmountInCompanyCurrency.Equal(converted) &&
			e.SubmittedAt != nil
	})).Return(nil).Once()

	submitted, err := suite.service.SubmitExpense(ctx, expense.ExpenseID, suite.owner.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(submitted)
	suite.Equal(domain.ExpensePending, submitted.Status)
	suite.mockConversion.AssertExpectations(suite.T())
	suite.mockChainBuilder.AssertExpectations(suite.T())
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_AutoApproveOutcomeReported() {
	ctx := context.Background()
	expense := suite.draftExpense()
	converted := decimal.RequireFromString("92")
	rate := decimal.RequireFromString("0.92")

	// The chain build settles the expense immediately; the submit response
	// must carry the stored outcome, not the pre-build pending snapshot.
	now := time.Now()
	approved := *expense
	approved.Status = domain.ExpenseApproved
	approved.ResolvedAt = &now

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.owner.UserID).Return(suite.owner, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.company.CompanyID).Return(suite.company, nil).Once()
	suite.mockConversion.On("Convert", ctx, expense.Amount, "EUR", "USD").
		Return(&dto.ConversionResult{Amount: converted, Rate: rate}, nil).Once()
	suite.mockExpenseRepo.On("SetNormalizedAmount", ctx, expense.ExpenseID, converted, rate, mock.Anything, suite.owner.UserID).Return(nil).Once()
	suite.mockChainBuilder.On("BuildApprovalChain", ctx, mock.Anything).Return(nil).Once()
	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(&approved, nil).Once()

	submitted, err := suite.service.SubmitExpense(ctx, expense.ExpenseID, suite.owner.UserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(submitted)
	suite.Equal(domain.ExpenseApproved, submitted.Status)
	suite.Require().NotNil(submitted.ResolvedAt)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_ConversionFails_StaysDraft() {
	ctx := context.Background()
	expense := suite.draftExpense()

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.owner.UserID).Return(suite.owner, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.company.CompanyID).Return(suite.company, nil).Once()
	suite.mockConversion.On("Convert", ctx, expense.Amount, "EUR", "USD").
		Return(nil, apperrors.ErrUpstreamUnavailable).Once()

	submitted, err := suite.service.SubmitExpense(ctx, expense.ExpenseID, suite.owner.UserID)

	suite.Require().Error(err)
	suite.Nil(submitted)
	suite.ErrorIs(err, apperrors.ErrUpstreamUnavailable)
	// Nothing may have been written.
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SetNormalizedAmount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockChainBuilder.AssertNotCalled(suite.T(), "BuildApprovalChain", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_NotOwner() {
	ctx := context.Background()
	expense := suite.draftExpense()

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	submitted, err := suite.service.SubmitExpense(ctx, expense.ExpenseID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(submitted)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ExpenseServiceTestSuite) TestSubmitExpense_NotDraft() {
	ctx := context.Background()
	expense := suite.draftExpense()
	expense.Status = domain.ExpensePending

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	submitted, err := suite.service.SubmitExpense(ctx, expense.ExpenseID, suite.owner.UserID)

	suite.Require().Error(err)
	suite.Nil(submitted)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

// --- CancelExpense ---

func (suite *ExpenseServiceTestSuite) TestCancelExpense_Pending() {
	ctx := context.Background()
	expense := suite.draftExpense()
	expense.Status = domain.ExpensePending

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpenseStatusIfNotTerminal", ctx, expense.ExpenseID, domain.ExpenseCancelled, mock.Anything, suite.owner.UserID).
		Return(int64(1), nil).Once()

	cancelled, err := suite.service.CancelExpense(ctx, expense.ExpenseID, suite.owner.UserID)

	suite.Require().NoError(err)
	suite.Equal(domain.ExpenseCancelled, cancelled.Status)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestCancelExpense_AlreadyApproved() {
	ctx := context.Background()
	expense := suite.draftExpense()
	expense.Status = domain.ExpenseApproved

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()

	cancelled, err := suite.service.CancelExpense(ctx, expense.ExpenseID, suite.owner.UserID)

	suite.Require().Error(err)
	suite.Nil(cancelled)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

// --- ListExpenses ---

func (suite *ExpenseServiceTestSuite) TestListExpenses_EmployeeSeesOwnOnly() {
	ctx := context.Background()
	own := []domain.Expense{*suite.draftExpense()}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.owner.UserID).Return(suite.owner, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesByUser", ctx, suite.owner.UserID).Return(own, nil).Once()

	expenses, err := suite.service.ListExpenses(ctx, suite.owner.UserID)

	suite.Require().NoError(err)
	suite.Equal(own, expenses)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "ListExpensesByCompany", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_AdminSeesCompany() {
	ctx := context.Background()
	admin := &domain.User{UserID: uuid.NewString(), CompanyID: suite.company.CompanyID, Role: domain.RoleAdmin}
	all := []domain.Expense{*suite.draftExpense(), *suite.draftExpense()}

	suite.mockUserRepo.On("FindUserByID", ctx, admin.UserID).Return(admin, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesByCompany", ctx, suite.company.CompanyID).Return(all, nil).Once()

	expenses, err := suite.service.ListExpenses(ctx, admin.UserID)

	suite.Require().NoError(err)
	suite.Len(expenses, 2)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_ManagerSeesTeamAndOwn() {
	ctx := context.Background()
	manager := &domain.User{UserID: uuid.NewString(), CompanyID: suite.company.CompanyID, Role: domain.RoleManager}
	report := &domain.User{UserID: uuid.NewString(), CompanyID: suite.company.CompanyID, Role: domain.RoleEmployee, ManagerID: &manager.UserID}
	stranger := &domain.User{UserID: uuid.NewString(), CompanyID: suite.company.CompanyID, Role: domain.RoleEmployee}

	all := []domain.Expense{
		{ExpenseID: "own", UserID: manager.UserID, CompanyID: suite.company.CompanyID},
		{ExpenseID: "team", UserID: report.UserID, CompanyID: suite.company.CompanyID},
		{ExpenseID: "other", UserID: stranger.UserID, CompanyID: suite.company.CompanyID},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, manager.UserID).Return(manager, nil).Once()
	suite.mockUserRepo.On("ListUsersByCompany", ctx, suite.company.CompanyID).
		Return([]domain.User{*manager, *report, *stranger}, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesByCompany", ctx, suite.company.CompanyID).Return(all, nil).Once()

	expenses, err := suite.service.ListExpenses(ctx, manager.UserID)

	suite.Require().NoError(err)
	suite.Require().Len(expenses, 2)
	ids := []string{expenses[0].ExpenseID, expenses[1].ExpenseID}
	suite.Contains(ids, "own")
	suite.Contains(ids, "team")
}

// --- AttachReceipt ---

func (suite *ExpenseServiceTestSuite) TestAttachReceipt_StoresOCRText() {
	ctx := context.Background()
	expense := suite.draftExpense()
	path := "/uploads/receipt.png"

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockExtractor.On("ExtractReceipt", ctx, path).
		Return(&portssvc.ReceiptData{RawText: "TOTAL 42.50 EUR", Confidence: 0.9}, nil).Once()
	suite.mockExpenseRepo.On("UpdateExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.ReceiptImagePath == path && e.OCRText == "TOTAL 42.50 EUR"
	})).Return(nil).Once()

	updated, err := suite.service.AttachReceipt(ctx, expense.ExpenseID, suite.owner.UserID, path)

	suite.Require().NoError(err)
	suite.Equal("TOTAL 42.50 EUR", updated.OCRText)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestAttachReceipt_OCRFailureKeepsImage() {
	ctx := context.Background()
	expense := suite.draftExpense()
	path := "/uploads/blurry.png"

	suite.mockExpenseRepo.On("FindExpenseByID", ctx, expense.ExpenseID).Return(expense, nil).Once()
	suite.mockExtractor.On("ExtractReceipt", ctx, path).Return(nil, apperrors.ErrUpstreamUnavailable).Once()
	suite.mockExpenseRepo.On("UpdateExpense", ctx, mock.MatchedBy(func(e domain.Expense) bool {
		return e.ReceiptImagePath == path && e.OCRText == ""
	})).Return(nil).Once()

	updated, err := suite.service.AttachReceipt(ctx, expense.ExpenseID, suite.owner.UserID, path)

	suite.Require().NoError(err)
	suite.Equal(path, updated.ReceiptImagePath)
}

// --- Run Suite ---
func TestExpenseService(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
