package mapping

import (
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/expenseflow/expense_approval_app/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:               d.ExpenseID,
		UserID:                  d.UserID,
		CompanyID:               d.CompanyID,
		Amount:                  d.Amount,
		CurrencyCode:            d.CurrencyCode,
		AmountInCompanyCurrency: d.AmountInCompanyCurrency,
		ExchangeRate:            d.ExchangeRate,
		CategoryID:              d.CategoryID,
		Description:             d.Description,
		ExpenseDate:             d.ExpenseDate,
		Status:                  string(d.Status),
		RejectionReason:         d.RejectionReason,
		ReceiptImagePath:        d.ReceiptImagePath,
		OCRText:                 d.OCRText,
		SubmittedAt:             d.SubmittedAt,
		ResolvedAt:              d.ResolvedAt,
		AuditFields:             ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:               m.ExpenseID,
		UserID:                  m.UserID,
		CompanyID:               m.CompanyID,
		Amount:                  m.Amount,
		CurrencyCode:            m.CurrencyCode,
		AmountInCompanyCurrency: m.AmountInCompanyCurrency,
		ExchangeRate:            m.ExchangeRate,
		CategoryID:              m.CategoryID,
		Description:             m.Description,
		ExpenseDate:             m.ExpenseDate,
		Status:                  domain.ExpenseStatus(m.Status),
		RejectionReason:         m.RejectionReason,
		ReceiptImagePath:        m.ReceiptImagePath,
		OCRText:                 m.OCRText,
		SubmittedAt:             m.SubmittedAt,
		ResolvedAt:              m.ResolvedAt,
		AuditFields:             ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts model Expenses to domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}
