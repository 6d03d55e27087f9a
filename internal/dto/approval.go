package dto

import (
	"time"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
)

// DecideApprovalRequest carries one approver's decision on a pending record.
type DecideApprovalRequest struct {
	Status   domain.ApprovalStatus `json:"status" binding:"required,oneof=approved rejected"`
	Comments string                `json:"comments"`
}

// ApprovalResponse defines the structure for API responses containing approval details.
type ApprovalResponse struct {
	ApprovalID string                `json:"approvalID"`
	ExpenseID  string                `json:"expenseID"`
	ApproverID string                `json:"approverID"`
	StepID     *string               `json:"stepID,omitempty"`
	Status     domain.ApprovalStatus `json:"status"`
	Comments   string                `json:"comments,omitempty"`
	DecidedAt  *time.Time            `json:"decidedAt,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// ToApprovalResponse converts a domain.Approval to ApprovalResponse DTO
func ToApprovalResponse(a *domain.Approval) ApprovalResponse {
	return ApprovalResponse{
		ApprovalID: a.ApprovalID,
		ExpenseID:  a.ExpenseID,
		ApproverID: a.ApproverID,
		StepID:     a.StepID,
		Status:     a.Status,
		Comments:   a.Comments,
		DecidedAt:  a.DecidedAt,
		CreatedAt:  a.CreatedAt,
	}
}

// ToApprovalResponses converts a slice of domain.Approval to response DTOs.
func ToApprovalResponses(approvals []domain.Approval) []ApprovalResponse {
	responses := make([]ApprovalResponse, len(approvals))
	for i := range approvals {
		responses[i] = ToApprovalResponse(&approvals[i])
	}
	return responses
}
