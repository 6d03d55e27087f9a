package services

import (
	"context"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/expenseflow/expense_approval_app/internal/dto"
)

// ExpenseReaderSvc defines read operations for expenses
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves an expense visible to the requesting user.
	GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error)

	// ListExpenses retrieves the expenses the requesting user may see:
	// admins see the whole company, managers their team plus their own,
	// employees only their own.
	ListExpenses(ctx context.Context, requestingUserID string) ([]domain.Expense, error)

	// ListPendingApprovalExpenses retrieves pending expenses awaiting the
	// requesting user's decision.
	ListPendingApprovalExpenses(ctx context.Context, requestingUserID string) ([]domain.Expense, error)
}

// ExpenseWriterSvc defines lifecycle operations for expenses
type ExpenseWriterSvc interface {
	// CreateExpense persists a new draft expense owned by the creator.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error)

	// SubmitExpense normalizes the amount into the company currency, moves
	// the expense from draft to pending and builds its approval chain.
	SubmitExpense(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error)

	// CancelExpense cancels a draft or pending expense owned by the user.
	CancelExpense(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error)

	// AttachReceipt runs OCR over a receipt image and enriches the draft
	// expense with whatever was extracted.
	AttachReceipt(ctx context.Context, expenseID string, requestingUserID string, imagePath string) (*domain.Expense, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
