package repositories

import (
	"context"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
)

// RuleReader defines read operations for approval rules
type RuleReader interface {
	// FindRuleByID retrieves a rule with its steps.
	FindRuleByID(ctx context.Context, ruleID string) (*domain.ApprovalRule, error)

	// ListActiveRulesByCompany retrieves the company's active rules with
	// their steps, in creation order.
	ListActiveRulesByCompany(ctx context.Context, companyID string) ([]domain.ApprovalRule, error)

	// ListRulesByCompany retrieves all rules of a company, active or not.
	ListRulesByCompany(ctx context.Context, companyID string) ([]domain.ApprovalRule, error)
}

// RuleWriter defines write operations for approval rules
type RuleWriter interface {
	// SaveRule persists a rule and its steps.
	SaveRule(ctx context.Context, rule domain.ApprovalRule) error

	// UpdateRule persists changes to a rule and replaces its steps.
	UpdateRule(ctx context.Context, rule domain.ApprovalRule) error
}

// RuleRepositoryFacade combines all rule-related repository interfaces
type RuleRepositoryFacade interface {
	RuleReader
	RuleWriter
}
