package services

import (
	"context"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/expenseflow/expense_approval_app/internal/dto"
)

// ApprovalChainBuilderSvc materializes the set of required approval records
// for an expense.
type ApprovalChainBuilderSvc interface {
	// BuildApprovalChain ensures an approval record exists for every required
	// approver under the expense's applicable rules, notifying each approver
	// on first creation. With no applicable rules the expense is approved
	// immediately. Idempotent: re-invocation never duplicates records or
	// notifications.
	BuildApprovalChain(ctx context.Context, expense *domain.Expense) error
}

// ApprovalProcessorSvc applies a single approver's decision.
type ApprovalProcessorSvc interface {
	// DecideApproval records the outcome on a pending approval record,
	// notifies the expense owner, and synchronously resolves the expense.
	DecideApproval(ctx context.Context, approvalID string, approverID string, req dto.DecideApprovalRequest) (*domain.Approval, error)

	// ListApprovalsForApprover retrieves the caller's approval records.
	ListApprovalsForApprover(ctx context.Context, approverID string, onlyPending bool) ([]domain.Approval, error)
}

// ResolutionEngineSvc resolves an expense's status from its approval records.
type ResolutionEngineSvc interface {
	// ResolveExpense re-evaluates all applicable rules against the expense's
	// current approval records and transitions it to approved or rejected
	// when warranted. Safe to call redundantly: a terminal expense is left
	// untouched. Serialized per expense.
	ResolveExpense(ctx context.Context, expenseID string) error
}

// WorkflowSvcFacade combines the approval workflow interfaces
type WorkflowSvcFacade interface {
	ApprovalChainBuilderSvc
	ApprovalProcessorSvc
	ResolutionEngineSvc
}
