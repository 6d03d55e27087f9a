package models

import "github.com/shopspring/decimal"

// ApprovalRule maps to the approval_rules table.
type ApprovalRule struct {
	RuleID              string           `json:"ruleID"`
	CompanyID           string           `json:"companyID"`
	Name                string           `json:"name"`
	Description         string           `json:"description,omitempty"`
	RuleType            string           `json:"ruleType"`
	PercentageThreshold *int             `json:"percentageThreshold,omitempty"`
	SpecificApproverID  *string          `json:"specificApproverID,omitempty"`
	IsManagerApprover   bool             `json:"isManagerApprover"`
	MinAmount           *decimal.Decimal `json:"minAmount,omitempty"`
	MaxAmount           *decimal.Decimal `json:"maxAmount,omitempty"`
	IsActive            bool             `json:"isActive"`
	AuditFields
}

// ApprovalStep maps to the approval_steps table.
type ApprovalStep struct {
	StepID     string `json:"stepID"`
	RuleID     string `json:"ruleID"`
	StepNumber int    `json:"stepNumber"`
	ApproverID string `json:"approverID"`
	IsRequired bool   `json:"isRequired"`
}
