package services_test

import (
	"context"
	"testing"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) FetchRates(ctx context.Context, baseCurrencyCode string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, baseCurrencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type ConversionServiceTestSuite struct {
	suite.Suite
	mockRates *MockRateSource
	service   portssvc.ConversionSvcFacade
}

func (suite *ConversionServiceTestSuite) SetupTest() {
	suite.mockRates = new(MockRateSource)
	suite.service = services.NewConversionService(suite.mockRates)
}

// --- Test Cases ---

func (suite *ConversionServiceTestSuite) TestConvert_SameCurrency_NoExternalCall() {
	ctx := context.Background()
	amount := decimal.RequireFromString("123.45")

	result, err := suite.service.Convert(ctx, amount, "USD", "USD")

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.Amount.Equal(amount))
	suite.True(result.Rate.Equal(decimal.NewFromInt(1)))
	// The rate source must not have been touched at all.
	suite.mockRates.AssertNotCalled(suite.T(), "FetchRates", mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestConvert_Success() {
	ctx := context.Background()
	amount := decimal.RequireFromString("100")
	rates := map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.92"),
		"INR": decimal.RequireFromString("83.10"),
	}

	suite.mockRates.On("FetchRates", ctx, "USD").Return(rates, nil).Once()

	result, err := suite.service.Convert(ctx, amount, "USD", "EUR")

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.Amount.Equal(decimal.RequireFromString("92")), "got %s", result.Amount)
	suite.True(result.Rate.Equal(decimal.RequireFromString("0.92")))
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_LowercaseCodesNormalized() {
	ctx := context.Background()
	rates := map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.5")}

	suite.mockRates.On("FetchRates", ctx, "USD").Return(rates, nil).Once()

	result, err := suite.service.Convert(ctx, decimal.NewFromInt(10), "usd", "eur")

	suite.Require().NoError(err)
	suite.True(result.Amount.Equal(decimal.NewFromInt(5)))
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_TargetMissing_RateUnavailable() {
	ctx := context.Background()
	rates := map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.92")}

	suite.mockRates.On("FetchRates", ctx, "USD").Return(rates, nil).Once()

	result, err := suite.service.Convert(ctx, decimal.NewFromInt(100), "USD", "XXX")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_UpstreamDown() {
	ctx := context.Background()

	suite.mockRates.On("FetchRates", ctx, "USD").Return(nil, apperrors.ErrUpstreamUnavailable).Once()

	result, err := suite.service.Convert(ctx, decimal.NewFromInt(100), "USD", "EUR")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrUpstreamUnavailable)
	suite.NotErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_BadCode() {
	ctx := context.Background()

	result, err := suite.service.Convert(ctx, decimal.NewFromInt(1), "US", "EUR")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRates.AssertNotCalled(suite.T(), "FetchRates", mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestConversionService(t *testing.T) {
	suite.Run(t, new(ConversionServiceTestSuite))
}
