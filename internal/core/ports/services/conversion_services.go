package services

import (
	"context"

	"github.com/expenseflow/expense_approval_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ConversionSvcFacade converts amounts between currencies using an external
// rate source. Pure over its inputs plus the external call: it never mutates
// the expense; persisting the result is the caller's job.
type ConversionSvcFacade interface {
	// Convert normalizes amount from one currency into another and reports
	// the rate used. Same-currency conversions return the input unchanged
	// with rate 1 and make no external call.
	Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (*dto.ConversionResult, error)
}
