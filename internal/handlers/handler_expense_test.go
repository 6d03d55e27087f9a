package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/dto"
	"github.com/expenseflow/expense_approval_app/internal/handlers"
	"github.com/expenseflow/expense_approval_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) ListExpenses(ctx context.Context, requestingUserID string) ([]domain.Expense, error) {
	args := m.Called(ctx, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}
func (m *MockExpenseService) ListPendingApprovalExpenses(ctx context.Context, requestingUserID string) ([]domain.Expense, error) {
	args := m.Called(ctx, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}
func (m *MockExpenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) SubmitExpense(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) CancelExpense(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockExpenseService) AttachReceipt(ctx context.Context, expenseID string, requestingUserID string, imagePath string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID, requestingUserID, imagePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Test Suite ---
type ExpenseHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockExpenseService *MockExpenseService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ExpenseHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "eaa-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ExpenseHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockExpenseService = new(MockExpenseService)

	cfg := &config.Config{
		JWTSecret:      suite.jwtSecret,
		LoginRateLimit: "10-M",
		IsProduction:   true, // skip swagger in tests
	}
	services := &portssvc.ServiceContainer{
		Expense: suite.mockExpenseService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_Success() {
	userID := uuid.NewString()
	categoryID := uuid.NewString()
	expenseDate := time.Now().UTC().Truncate(time.Second)

	req := dto.CreateExpenseRequest{
		Amount:       decimal.NewFromFloat(42.50),
		CurrencyCode: "EUR",
		CategoryID:   categoryID,
		Description:  "Team lunch",
		ExpenseDate:  expenseDate,
	}
	created := &domain.Expense{
		ExpenseID:    uuid.NewString(),
		UserID:       userID,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		CategoryID:   categoryID,
		Description:  req.Description,
		ExpenseDate:  expenseDate,
		Status:       domain.ExpenseDraft,
	}

	suite.mockExpenseService.On("CreateExpense",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateExpenseRequest) bool {
			return r.Amount.Equal(req.Amount) && r.CurrencyCode == "EUR" && r.CategoryID == categoryID
		}),
		userID,
	).Return(created, nil).Once()

	body, _ := json.Marshal(req)
	httpReq, _ := http.NewRequest(http.MethodPost, "/api/v1/expenses", bytes.NewReader(body))
	httpReq.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	httpReq.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ExpenseResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.ExpenseID, resp.ExpenseID)
	suite.Equal(domain.ExpenseDraft, resp.Status)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_NonPositiveAmountRejectedByBinding() {
	userID := uuid.NewString()

	body := []byte(fmt.Sprintf(`{"amount":0,"currencyCode":"EUR","categoryID":%q,"description":"x","expenseDate":"2026-08-01T00:00:00Z"}`, uuid.NewString()))
	httpReq, _ := http.NewRequest(http.MethodPost, "/api/v1/expenses", bytes.NewReader(body))
	httpReq.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	httpReq.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "CreateExpense", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseHandlerTestSuite) TestGetExpense_NotFound() {
	userID := uuid.NewString()
	expenseID := uuid.NewString()

	suite.mockExpenseService.On("GetExpenseByID", mock.Anything, expenseID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	httpReq, _ := http.NewRequest(http.MethodGet, "/api/v1/expenses/"+expenseID, nil)
	httpReq.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestSubmitExpense_InvalidStateIsConflict() {
	userID := uuid.NewString()
	expenseID := uuid.NewString()

	suite.mockExpenseService.On("SubmitExpense", mock.Anything, expenseID, userID).
		Return(nil, fmt.Errorf("%w: only draft expenses can be submitted", apperrors.ErrInvalidState)).Once()

	httpReq, _ := http.NewRequest(http.MethodPost, "/api/v1/expenses/"+expenseID+"/submit", nil)
	httpReq.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestListExpenses_MissingTokenIsUnauthorized() {
	httpReq, _ := http.NewRequest(http.MethodGet, "/api/v1/expenses", nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "ListExpenses", mock.Anything, mock.Anything)
}

func TestExpenseHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseHandlerTestSuite))
}
