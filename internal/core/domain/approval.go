package domain

import "time"

// ApprovalStatus is the state of a single approver's vote.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Approval is one approver's pending or decided vote on one expense.
// At most one Approval exists per (expense, approver) pair; the store
// enforces this with a unique constraint so chain construction can be
// re-run without creating duplicates.
//
// StepID is a weak reference to the originating ApprovalStep; a step may
// be retired without invalidating decided approvals.
type Approval struct {
	ApprovalID string  `json:"approvalID"`
	ExpenseID  string  `json:"expenseID"`
	ApproverID string  `json:"approverID"`
	StepID     *string `json:"stepID,omitempty"`

	Status   ApprovalStatus `json:"status"`
	Comments string         `json:"comments,omitempty"`

	DecidedAt *time.Time `json:"decidedAt,omitempty"`
	AuditFields
}
