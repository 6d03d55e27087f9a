package repositories

import (
	"context"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
)

// ApprovalReader defines read operations for approval records
type ApprovalReader interface {
	// FindApprovalByID retrieves a single approval record.
	FindApprovalByID(ctx context.Context, approvalID string) (*domain.Approval, error)

	// FindApprovalsByExpenseID retrieves all approval records for an expense,
	// oldest first.
	FindApprovalsByExpenseID(ctx context.Context, expenseID string) ([]domain.Approval, error)

	// ListApprovalsByApprover retrieves approval records assigned to a user.
	ListApprovalsByApprover(ctx context.Context, approverID string, onlyPending bool) ([]domain.Approval, error)
}

// ApprovalWriter defines write operations for approval records
type ApprovalWriter interface {
	// CreateApprovalIfAbsent inserts the approval unless a record already
	// exists for the same (expense, approver) pair. The boolean reports
	// whether a new row was created; a unique-constraint race counts as
	// "already exists", not an error.
	CreateApprovalIfAbsent(ctx context.Context, approval domain.Approval) (bool, error)

	// UpdateApprovalDecision records the approver's decision on a pending
	// record. Returns the number of rows affected (0 means the record was
	// no longer pending).
	UpdateApprovalDecision(ctx context.Context, approval domain.Approval) (int64, error)
}

// ApprovalRepositoryFacade combines all approval-related repository interfaces
type ApprovalRepositoryFacade interface {
	ApprovalReader
	ApprovalWriter
}
