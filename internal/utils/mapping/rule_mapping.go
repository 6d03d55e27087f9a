package mapping

import (
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/expenseflow/expense_approval_app/internal/models"
)

// ToModelRule converts a domain ApprovalRule to a model ApprovalRule.
// Steps are carried separately, see ToModelStep.
func ToModelRule(d domain.ApprovalRule) models.ApprovalRule {
	return models.ApprovalRule{
		RuleID:              d.RuleID,
		CompanyID:           d.CompanyID,
		Name:                d.Name,
		Description:         d.Description,
		RuleType:            string(d.RuleType),
		PercentageThreshold: d.PercentageThreshold,
		SpecificApproverID:  d.SpecificApproverID,
		IsManagerApprover:   d.IsManagerApprover,
		MinAmount:           d.MinAmount,
		MaxAmount:           d.MaxAmount,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRule converts a model ApprovalRule to a domain ApprovalRule
func ToDomainRule(m models.ApprovalRule) domain.ApprovalRule {
	return domain.ApprovalRule{
		RuleID:              m.RuleID,
		CompanyID:           m.CompanyID,
		Name:                m.Name,
		Description:         m.Description,
		RuleType:            domain.RuleType(m.RuleType),
		PercentageThreshold: m.PercentageThreshold,
		SpecificApproverID:  m.SpecificApproverID,
		IsManagerApprover:   m.IsManagerApprover,
		MinAmount:           m.MinAmount,
		MaxAmount:           m.MaxAmount,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelStep converts a domain ApprovalStep to a model ApprovalStep
func ToModelStep(d domain.ApprovalStep) models.ApprovalStep {
	return models.ApprovalStep{
		StepID:     d.StepID,
		RuleID:     d.RuleID,
		StepNumber: d.StepNumber,
		ApproverID: d.ApproverID,
		IsRequired: d.IsRequired,
	}
}

// ToDomainStep converts a model ApprovalStep to a domain ApprovalStep
func ToDomainStep(m models.ApprovalStep) domain.ApprovalStep {
	return domain.ApprovalStep{
		StepID:     m.StepID,
		RuleID:     m.RuleID,
		StepNumber: m.StepNumber,
		ApproverID: m.ApproverID,
		IsRequired: m.IsRequired,
	}
}
