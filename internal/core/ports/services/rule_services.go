package services

import (
	"context"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/expenseflow/expense_approval_app/internal/dto"
)

// RuleReaderSvc defines read operations for approval rules
type RuleReaderSvc interface {
	// GetRuleByID retrieves a rule belonging to the user's company.
	GetRuleByID(ctx context.Context, ruleID string, requestingUserID string) (*domain.ApprovalRule, error)

	// ListRules retrieves all rules of the user's company. Admin only.
	ListRules(ctx context.Context, requestingUserID string) ([]domain.ApprovalRule, error)

	// ApplicableRules filters rules down to those covering the expense's
	// normalized amount, preserving input order. Pure, no I/O.
	ApplicableRules(expense *domain.Expense, rules []domain.ApprovalRule) []domain.ApprovalRule
}

// RuleWriterSvc defines write operations for approval rules
type RuleWriterSvc interface {
	// CreateRule validates and persists a new rule with its steps.
	CreateRule(ctx context.Context, req dto.CreateRuleRequest, creatorUserID string) (*domain.ApprovalRule, error)

	// UpdateRule validates and persists changes to an existing rule.
	UpdateRule(ctx context.Context, ruleID string, req dto.UpdateRuleRequest, requestingUserID string) (*domain.ApprovalRule, error)
}

// RuleSvcFacade combines all rule-related service interfaces
type RuleSvcFacade interface {
	RuleReaderSvc
	RuleWriterSvc
}
