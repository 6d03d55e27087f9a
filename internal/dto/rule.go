package dto

import (
	"time"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RuleStepRequest defines one approver slot when creating or updating a rule.
type RuleStepRequest struct {
	StepNumber int    `json:"stepNumber" binding:"required,min=1"`
	ApproverID string `json:"approverID" binding:"required,uuid"`
	IsRequired bool   `json:"isRequired"`
}

// CreateRuleRequest defines the structure for creating a new approval rule.
type CreateRuleRequest struct {
	Name                string            `json:"name" binding:"required"`
	Description         string            `json:"description"`
	RuleType            domain.RuleType   `json:"ruleType" binding:"required,oneof=percentage specific hybrid"`
	PercentageThreshold *int              `json:"percentageThreshold" binding:"omitempty,min=1,max=100"`
	SpecificApproverID  *string           `json:"specificApproverID" binding:"omitempty,uuid"`
	IsManagerApprover   bool              `json:"isManagerApprover"`
	MinAmount           *decimal.Decimal  `json:"minAmount"`
	MaxAmount           *decimal.Decimal  `json:"maxAmount"`
	Steps               []RuleStepRequest `json:"steps" binding:"omitempty,dive"`
}

// UpdateRuleRequest defines the mutable fields of an approval rule.
// Nil fields are left unchanged; Steps, when present, replaces the step list.
type UpdateRuleRequest struct {
	Name                *string            `json:"name"`
	Description         *string            `json:"description"`
	PercentageThreshold *int               `json:"percentageThreshold" binding:"omitempty,min=1,max=100"`
	SpecificApproverID  *string            `json:"specificApproverID" binding:"omitempty,uuid"`
	IsManagerApprover   *bool              `json:"isManagerApprover"`
	MinAmount           *decimal.Decimal   `json:"minAmount"`
	MaxAmount           *decimal.Decimal   `json:"maxAmount"`
	IsActive            *bool              `json:"isActive"`
	Steps               *[]RuleStepRequest `json:"steps" binding:"omitempty,dive"`
}

// RuleStepResponse is one approver slot in a rule response.
type RuleStepResponse struct {
	StepID     string `json:"stepID"`
	StepNumber int    `json:"stepNumber"`
	ApproverID string `json:"approverID"`
	IsRequired bool   `json:"isRequired"`
}

// RuleResponse defines the structure for API responses containing rule details.
type RuleResponse struct {
	RuleID              string             `json:"ruleID"`
	CompanyID           string             `json:"companyID"`
	Name                string             `json:"name"`
	Description         string             `json:"description,omitempty"`
	RuleType            domain.RuleType    `json:"ruleType"`
	PercentageThreshold *int               `json:"percentageThreshold,omitempty"`
	SpecificApproverID  *string            `json:"specificApproverID,omitempty"`
	IsManagerApprover   bool               `json:"isManagerApprover"`
	MinAmount           *decimal.Decimal   `json:"minAmount,omitempty"`
	MaxAmount           *decimal.Decimal   `json:"maxAmount,omitempty"`
	IsActive            bool               `json:"isActive"`
	Steps               []RuleStepResponse `json:"steps,omitempty"`
	CreatedAt           time.Time          `json:"createdAt"`
}

// ToRuleResponse converts a domain.ApprovalRule to RuleResponse DTO
func ToRuleResponse(r *domain.ApprovalRule) RuleResponse {
	steps := make([]RuleStepResponse, len(r.Steps))
	for i, s := range r.Steps {
		steps[i] = RuleStepResponse{
			StepID:     s.StepID,
			StepNumber: s.StepNumber,
			ApproverID: s.ApproverID,
			IsRequired: s.IsRequired,
		}
	}
	return RuleResponse{
		RuleID:              r.RuleID,
		CompanyID:           r.CompanyID,
		Name:                r.Name,
		Description:         r.Description,
		RuleType:            r.RuleType,
		PercentageThreshold: r.PercentageThreshold,
		SpecificApproverID:  r.SpecificApproverID,
		IsManagerApprover:   r.IsManagerApprover,
		MinAmount:           r.MinAmount,
		MaxAmount:           r.MaxAmount,
		IsActive:            r.IsActive,
		Steps:               steps,
		CreatedAt:           r.CreatedAt,
	}
}

// ToRuleResponses converts a slice of domain.ApprovalRule to response DTOs.
func ToRuleResponses(rules []domain.ApprovalRule) []RuleResponse {
	responses := make([]RuleResponse, len(rules))
	for i := range rules {
		responses[i] = ToRuleResponse(&rules[i])
	}
	return responses
}
