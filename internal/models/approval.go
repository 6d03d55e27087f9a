package models

import "time"

// Approval maps to the approvals table. A unique constraint on
// (expense_id, approver_id) backs the create-if-absent semantics.
type Approval struct {
	ApprovalID string     `json:"approvalID"`
	ExpenseID  string     `json:"expenseID"`
	ApproverID string     `json:"approverID"`
	StepID     *string    `json:"stepID,omitempty"`
	Status     string     `json:"status"`
	Comments   string     `json:"comments,omitempty"`
	DecidedAt  *time.Time `json:"decidedAt,omitempty"`
	AuditFields
}
