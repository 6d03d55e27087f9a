package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense maps to the expenses table.
type Expense struct {
	ExpenseID               string           `json:"expenseID"`
	UserID                  string           `json:"userID"`
	CompanyID               string           `json:"companyID"`
	Amount                  decimal.Decimal  `json:"amount"`
	CurrencyCode            string           `json:"currencyCode"`
	AmountInCompanyCurrency *decimal.Decimal `json:"amountInCompanyCurrency,omitempty"`
	ExchangeRate            *decimal.Decimal `json:"exchangeRate,omitempty"`
	CategoryID              string           `json:"categoryID"`
	Description             string           `json:"description"`
	ExpenseDate             time.Time        `json:"expenseDate"`
	Status                  string           `json:"status"`
	RejectionReason         string           `json:"rejectionReason,omitempty"`
	ReceiptImagePath        string           `json:"receiptImagePath,omitempty"`
	OCRText                 string           `json:"ocrText,omitempty"`
	SubmittedAt             *time.Time       `json:"submittedAt,omitempty"`
	ResolvedAt              *time.Time       `json:"resolvedAt,omitempty"`
	AuditFields
}
