package dto

import (
	"time"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the structure for creating a new draft expense.
type CreateExpenseRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required,decimalgt0"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	CategoryID   string          `json:"categoryID" binding:"required,uuid"`
	Description  string          `json:"description" binding:"required"`
	ExpenseDate  time.Time       `json:"expenseDate" binding:"required"`
}

// AttachReceiptRequest carries the stored path of an uploaded receipt image.
type AttachReceiptRequest struct {
	ImagePath string `json:"imagePath" binding:"required"`
}

// ExpenseResponse defines the structure for API responses containing expense details.
type ExpenseResponse struct {
	ExpenseID               string               `json:"expenseID"`
	UserID                  string               `json:"userID"`
	CompanyID               string               `json:"companyID"`
	Amount                  decimal.Decimal      `json:"amount"`
	CurrencyCode            string               `json:"currencyCode"`
	AmountInCompanyCurrency *decimal.Decimal     `json:"amountInCompanyCurrency,omitempty"`
	ExchangeRate            *decimal.Decimal     `json:"exchangeRate,omitempty"`
	CategoryID              string               `json:"categoryID"`
	Description             string               `json:"description"`
	ExpenseDate             time.Time            `json:"expenseDate"`
	Status                  domain.ExpenseStatus `json:"status"`
	RejectionReason         string               `json:"rejectionReason,omitempty"`
	OCRText                 string               `json:"ocrText,omitempty"`
	SubmittedAt             *time.Time           `json:"submittedAt,omitempty"`
	ResolvedAt              *time.Time           `json:"resolvedAt,omitempty"`
	CreatedAt               time.Time            `json:"createdAt"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:               e.ExpenseID,
		UserID:                  e.UserID,
		CompanyID:               e.CompanyID,
		Amount:                  e.Amount,
		CurrencyCode:            e.CurrencyCode,
		AmountInCompanyCurrency: e.AmountInCompanyCurrency,
		ExchangeRate:            e.ExchangeRate,
		CategoryID:              e.CategoryID,
		Description:             e.Description,
		ExpenseDate:             e.ExpenseDate,
		Status:                  e.Status,
		RejectionReason:         e.RejectionReason,
		OCRText:                 e.OCRText,
		SubmittedAt:             e.SubmittedAt,
		ResolvedAt:              e.ResolvedAt,
		CreatedAt:               e.CreatedAt,
	}
}

// ToExpenseResponses converts a slice of domain.Expense to response DTOs.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}
