package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	portsrepo "github.com/expenseflow/expense_approval_app/internal/core/ports/repositories"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/dto"
	"github.com/expenseflow/expense_approval_app/internal/middleware"
	"github.com/google/uuid"
)

// ruleService provides business logic for approval rules.
type ruleService struct {
	ruleRepo portsrepo.RuleRepositoryFacade
	userRepo portsrepo.UserRepositoryFacade
}

// NewRuleService creates a new RuleService.
func NewRuleService(ruleRepo portsrepo.RuleRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.RuleSvcFacade {
	return &ruleService{
		ruleRepo: ruleRepo,
		userRepo: userRepo,
	}
}

// Ensure ruleService implements the portssvc.RuleSvcFacade interface
var _ portssvc.RuleSvcFacade = (*ruleService)(nil)

// validateRuleShape enforces the cross-field requirements the DTO binding
// tags cannot express: percentage and hybrid rules need a threshold,
// specific and hybrid rules need a designated approver, and bounds must
// not cross.
func validateRuleShape(rule *domain.ApprovalRule) error {
	switch rule.RuleType {
	case domain.RulePercentage:
		if rule.PercentageThreshold == nil {
			return fmt.Errorf("%w: percentage rule requires a percentage threshold", apperrors.ErrValidation)
		}
	case domain.RuleSpecific:
		if rule.SpecificApproverID == nil {
			return fmt.Errorf("%w: specific rule requires a designated approver", apperrors.ErrValidation)
		}
	case domain.RuleHybrid:
		if rule.PercentageThreshold == nil {
			return fmt.Errorf("%w: hybrid rule requires a percentage threshold", apperrors.ErrValidation)
		}
		if rule.SpecificApproverID == nil {
			return fmt.Errorf("%w: hybrid rule requires a designated approver", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown rule type '%s'", apperrors.ErrValidation, rule.RuleType)
	}

	if rule.PercentageThreshold != nil {
		if t := *rule.PercentageThreshold; t < 1 || t > 100 {
			return fmt.Errorf("%w: percentage threshold must be between 1 and 100", apperrors.ErrValidation)
		}
	}
	if rule.MinAmount != nil && rule.MaxAmount != nil && rule.MinAmount.GreaterThan(*rule.MaxAmount) {
		return fmt.Errorf("%w: minimum amount exceeds maximum amount", apperrors.ErrValidation)
	}
	return nil
}

// requireAdmin loads the requesting user and checks admin rights.
func (s *ruleService) requireAdmin(ctx context.Context, requestingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requesting user: %w", err)
	}
	if !user.IsAdmin() {
		return nil, fmt.Errorf("%w: only company admins may manage approval rules", apperrors.ErrForbidden)
	}
	return user, nil
}

// GetRuleByID retrieves a rule if it belongs to the requesting user's company.
func (s *ruleService) GetRuleByID(ctx context.Context, ruleID string, requestingUserID string) (*domain.ApprovalRule, error) {
	user, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requesting user: %w", err)
	}

	rule, err := s.ruleRepo.FindRuleByID(ctx, ruleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rule in service: %w", err)
	}
	if rule.CompanyID != user.CompanyID {
		// Do not reveal the rule's existence to outsiders.
		return nil, fmt.Errorf("%w: rule %s", apperrors.ErrNotFound, ruleID)
	}
	return rule, nil
}

// ListRules retrieves all approval rules of the requesting admin's company.
func (s *ruleService) ListRules(ctx context.Context, requestingUserID string) ([]domain.ApprovalRule, error) {
	user, err := s.requireAdmin(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	rules, err := s.ruleRepo.ListRulesByCompany(ctx, user.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules in service: %w", err)
	}
	return rules, nil
}

// ApplicableRules filters rules down to those covering the expense's
// normalized amount. Input order is preserved and the inputs are never
// mutated; with no normalized amount the raw amount is used, which only
// happens for expenses that were never submitted.
func (s *ruleService) ApplicableRules(expense *domain.Expense, rules []domain.ApprovalRule) []domain.ApprovalRule {
	amount := expense.Amount
	if expense.AmountInCompanyCurrency != nil {
		amount = *expense.AmountInCompanyCurrency
	}

	applicable := make([]domain.ApprovalRule, 0, len(rules))
	for _, rule := range rules {
		if rule.AppliesTo(amount) {
			applicable = append(applicable, rule)
		}
	}
	return applicable
}

// CreateRule validates and persists a new rule with its steps.
func (s *ruleService) CreateRule(ctx context.Context, req dto.CreateRuleRequest, creatorUserID string) (*domain.ApprovalRule, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	creator, err := s.requireAdmin(ctx, creatorUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	newRuleID := uuid.NewString()

	rule := domain.ApprovalRule{
		RuleID:              newRuleID,
		CompanyID:           creator.CompanyID,
		Name:                req.Name,
		Description:         req.Description,
		RuleType:            req.RuleType,
		PercentageThreshold: req.PercentageThreshold,
		SpecificApproverID:  req.SpecificApproverID,
		IsManagerApprover:   req.IsManagerApprover,
		MinAmount:           req.MinAmount,
		MaxAmount:           req.MaxAmount,
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	for _, step := range req.Steps {
		rule.Steps = append(rule.Steps, domain.ApprovalStep{
			StepID:     uuid.NewString(),
			RuleID:     newRuleID,
			StepNumber: step.StepNumber,
			ApproverID: step.ApproverID,
			IsRequired: step.IsRequired,
		})
	}

	if err := validateRuleShape(&rule); err != nil {
		return nil, err
	}
	if err := s.validateApprovers(ctx, &rule, creator.CompanyID); err != nil {
		return nil, err
	}

	if err := s.ruleRepo.SaveRule(ctx, rule); err != nil {
		logger.Error("Failed to save approval rule", slog.String("error", err.Error()), slog.String("company_id", creator.CompanyID))
		return nil, fmt.Errorf("failed to create rule in service: %w", err)
	}

	logger.Info("Approval rule created", slog.String("rule_id", newRuleID), slog.String("rule_type", string(rule.RuleType)))
	return &rule, nil
}

// UpdateRule validates and persists changes to an existing rule.
func (s *ruleService) UpdateRule(ctx context.Context, ruleID string, req dto.UpdateRuleRequest, requestingUserID string) (*domain.ApprovalRule, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.requireAdmin(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}

	rule, err := s.ruleRepo.FindRuleByID(ctx, ruleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rule in service: %w", err)
	}
	if rule.CompanyID != user.CompanyID {
		return nil, fmt.Errorf("%w: rule %s", apperrors.ErrNotFound, ruleID)
	}

	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.Description != nil {
		rule.Description = *req.Description
	}
	if req.PercentageThreshold != nil {
		rule.PercentageThreshold = req.PercentageThreshold
	}
	if req.SpecificApproverID != nil {
		rule.SpecificApproverID = req.SpecificApproverID
	}
	if req.IsManagerApprover != nil {
		rule.IsManagerApprover = *req.IsManagerApprover
	}
	if req.MinAmount != nil {
		rule.MinAmount = req.MinAmount
	}
	if req.MaxAmount != nil {
		rule.MaxAmount = req.MaxAmount
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if req.Steps != nil {
		rule.Steps = rule.Steps[:0]
		for _, step := range *req.Steps {
			rule.Steps = append(rule.Steps, domain.ApprovalStep{
				StepID:     uuid.NewString(),
				RuleID:     rule.RuleID,
				StepNumber: step.StepNumber,
				ApproverID: step.ApproverID,
				IsRequired: step.IsRequired,
			})
		}
	}

	if err := validateRuleShape(rule); err != nil {
		return nil, err
	}
	if err := s.validateApprovers(ctx, rule, user.CompanyID); err != nil {
		return nil, err
	}

	rule.LastUpdatedAt = time.Now()
	rule.LastUpdatedBy = requestingUserID

	if err := s.ruleRepo.UpdateRule(ctx, *rule); err != nil {
		logger.Error("Failed to update approval rule", slog.String("error", err.Error()), slog.String("rule_id", ruleID))
		return nil, fmt.Errorf("failed to update rule in service: %w", err)
	}

	logger.Info("Approval rule updated", slog.String("rule_id", ruleID))
	return rule, nil
}

// validateApprovers checks that every approver referenced by the rule exists
// and belongs to the rule's company.
func (s *ruleService) validateApprovers(ctx context.Context, rule *domain.ApprovalRule, companyID string) error {
	check := func(approverID string) error {
		approver, err := s.userRepo.FindUserByID(ctx, approverID)
		if err != nil {
			return fmt.Errorf("%w: approver %s not found", apperrors.ErrValidation, approverID)
		}
		if approver.CompanyID != companyID {
			return fmt.Errorf("%w: approver %s belongs to another company", apperrors.ErrValidation, approverID)
		}
		return nil
	}

	if rule.SpecificApproverID != nil {
		if err := check(*rule.SpecificApproverID); err != nil {
			return err
		}
	}
	for _, step := range rule.Steps {
		if err := check(step.ApproverID); err != nil {
			return err
		}
	}
	return nil
}
