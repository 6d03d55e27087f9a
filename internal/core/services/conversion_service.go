package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/dto"
	"github.com/expenseflow/expense_approval_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// conversionService normalizes amounts between currencies via an external
// rate source. It holds no state beyond the source itself.
type conversionService struct {
	rateSource portssvc.RateSource
}

// NewConversionService creates a new ConversionService.
func NewConversionService(rateSource portssvc.RateSource) portssvc.ConversionSvcFacade {
	return &conversionService{rateSource: rateSource}
}

// Ensure conversionService implements the portssvc.ConversionSvcFacade interface
var _ portssvc.ConversionSvcFacade = (*conversionService)(nil)

// Convert normalizes amount from fromCode into toCode. Same-currency requests
// short-circuit with rate 1 and never touch the rate source, so an upstream
// outage cannot block them.
func (s *conversionService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (*dto.ConversionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	if fromCode == toCode {
		return &dto.ConversionResult{Amount: amount, Rate: decimal.NewFromInt(1)}, nil
	}

	rates, err := s.rateSource.FetchRates(ctx, fromCode)
	if err != nil {
		logger.Error("Failed to fetch exchange rates", slog.String("base", fromCode), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch rates for %s: %w", fromCode, err)
	}

	rate, ok := rates[toCode]
	if !ok {
		logger.Warn("Rate source has no rate for target currency", slog.String("base", fromCode), slog.String("target", toCode))
		return nil, fmt.Errorf("%w: no rate from %s to %s", apperrors.ErrRateUnavailable, fromCode, toCode)
	}

	return &dto.ConversionResult{Amount: amount.Mul(rate), Rate: rate}, nil
}
