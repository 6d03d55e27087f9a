package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is the lifecycle state of an expense claim.
type ExpenseStatus string

const (
	ExpenseDraft     ExpenseStatus = "draft"
	ExpensePending   ExpenseStatus = "pending"
	ExpenseApproved  ExpenseStatus = "approved"
	ExpenseRejected  ExpenseStatus = "rejected"
	ExpenseCancelled ExpenseStatus = "cancelled"
)

// IsTerminal reports whether no further status transition is allowed.
func (s ExpenseStatus) IsTerminal() bool {
	return s == ExpenseApproved || s == ExpenseRejected || s == ExpenseCancelled
}

// Expense represents one spend claim owned by the submitting user.
//
// AmountInCompanyCurrency and ExchangeRate are set together at submission,
// before any rule evaluation reads them, and stay fixed for that submission.
// A resubmission recomputes both.
type Expense struct {
	ExpenseID    string          `json:"expenseID"`
	UserID       string          `json:"userID"`
	CompanyID    string          `json:"companyID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`

	AmountInCompanyCurrency *decimal.Decimal `json:"amountInCompanyCurrency,omitempty"`
	ExchangeRate            *decimal.Decimal `json:"exchangeRate,omitempty"`

	CategoryID  string    `json:"categoryID"`
	Description string    `json:"description"`
	ExpenseDate time.Time `json:"expenseDate"`

	Status          ExpenseStatus `json:"status"`
	RejectionReason string        `json:"rejectionReason,omitempty"`

	ReceiptImagePath string `json:"receiptImagePath,omitempty"`
	OCRText          string `json:"ocrText,omitempty"`

	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
	AuditFields
}
