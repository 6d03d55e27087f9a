package repositories

import (
	"context"
	"time"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves a single expense.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByUser retrieves expenses owned by a user, newest first.
	ListExpensesByUser(ctx context.Context, userID string) ([]domain.Expense, error)

	// ListExpensesByCompany retrieves all expenses of a company, newest first.
	ListExpensesByCompany(ctx context.Context, companyID string) ([]domain.Expense, error)

	// ListExpensesPendingForApprover retrieves pending expenses that have a
	// pending approval record assigned to the given approver.
	ListExpensesPendingForApprover(ctx context.Context, approverID string) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense persists mutable fields of a draft expense.
	UpdateExpense(ctx context.Context, expense domain.Expense) error

	// SetNormalizedAmount stores the converted amount and the rate used,
	// atomically, together with the submission timestamp and pending status.
	SetNormalizedAmount(ctx context.Context, expenseID string, amount, rate decimal.Decimal, submittedAt time.Time, updatedBy string) error

	// UpdateExpenseStatusIfNotTerminal transitions the expense to newStatus
	// only when its current status is not terminal. It returns the number of
	// rows affected (0 means the expense was already terminal) so callers can
	// detect lost races without a separate read.
	UpdateExpenseStatusIfNotTerminal(ctx context.Context, expenseID string, newStatus domain.ExpenseStatus, resolvedAt *time.Time, updatedBy string) (int64, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
