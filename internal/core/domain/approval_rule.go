package domain

import "github.com/shopspring/decimal"

// RuleType is the closed set of approval rule kinds.
type RuleType string

const (
	// RulePercentage approves once the approved share of all approval records
	// reaches PercentageThreshold.
	RulePercentage RuleType = "percentage"
	// RuleSpecific approves the moment the designated approver approves.
	RuleSpecific RuleType = "specific"
	// RuleHybrid approves when either the percentage or the specific-approver
	// condition is satisfied.
	RuleHybrid RuleType = "hybrid"
)

// ApprovalRule is a company-scoped approval policy.
// PercentageThreshold is required for percentage and hybrid rules;
// SpecificApproverID is required for specific and hybrid rules.
// Absent amount bounds mean unbounded on that side.
type ApprovalRule struct {
	RuleID      string `json:"ruleID"`
	CompanyID   string `json:"companyID"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	RuleType            RuleType `json:"ruleType"`
	PercentageThreshold *int     `json:"percentageThreshold,omitempty"`
	SpecificApproverID  *string  `json:"specificApproverID,omitempty"`

	// IsManagerApprover requires the expense owner's direct manager in the chain.
	IsManagerApprover bool `json:"isManagerApprover"`

	MinAmount *decimal.Decimal `json:"minAmount,omitempty"`
	MaxAmount *decimal.Decimal `json:"maxAmount,omitempty"`

	IsActive bool           `json:"isActive"`
	Steps    []ApprovalStep `json:"steps,omitempty"`
	AuditFields
}

// ApprovalStep is an ordered approver slot under a rule, beyond the manager gate.
// StepNumber is unique within the rule.
type ApprovalStep struct {
	StepID     string `json:"stepID"`
	RuleID     string `json:"ruleID"`
	StepNumber int    `json:"stepNumber"`
	ApproverID string `json:"approverID"`
	IsRequired bool   `json:"isRequired"`
}

// AppliesTo reports whether the rule covers an expense with the given
// normalized amount: the rule must be active and the amount must fall
// within the configured bounds.
func (r *ApprovalRule) AppliesTo(normalizedAmount decimal.Decimal) bool {
	if !r.IsActive {
		return false
	}
	if r.MinAmount != nil && normalizedAmount.LessThan(*r.MinAmount) {
		return false
	}
	if r.MaxAmount != nil && normalizedAmount.GreaterThan(*r.MaxAmount) {
		return false
	}
	return true
}
