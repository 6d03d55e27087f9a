package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	portsrepo "github.com/expenseflow/expense_approval_app/internal/core/ports/repositories"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/dto"
	"github.com/expenseflow/expense_approval_app/internal/middleware"
	"github.com/google/uuid"
)

// systemActor is recorded as the audit actor for transitions triggered by
// the engine itself rather than a user.
const systemActor = "system"

// workflowService implements the approval workflow: building the approval
// chain at submission, recording approver decisions and resolving the
// expense's final status.
//
// Resolution is serialized per expense with a keyed mutex; the store's
// unique constraint on (expense, approver) and the compare-and-set status
// update cover races across processes.
type workflowService struct {
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	approvalRepo portsrepo.ApprovalRepositoryFacade
	ruleRepo     portsrepo.RuleRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
	ruleSvc      portssvc.RuleReaderSvc
	notifier     portssvc.NotifierSvc

	mu         sync.Mutex
	expenseMus map[string]*sync.Mutex
}

// NewWorkflowService creates a new WorkflowService.
func NewWorkflowService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	approvalRepo portsrepo.ApprovalRepositoryFacade,
	ruleRepo portsrepo.RuleRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	ruleSvc portssvc.RuleReaderSvc,
	notifier portssvc.NotifierSvc,
) portssvc.WorkflowSvcFacade {
	return &workflowService{
		expenseRepo:  expenseRepo,
		approvalRepo: approvalRepo,
		ruleRepo:     ruleRepo,
		userRepo:     userRepo,
		ruleSvc:      ruleSvc,
		notifier:     notifier,
		expenseMus:   make(map[string]*sync.Mutex),
	}
}

// Ensure workflowService implements the portssvc.WorkflowSvcFacade interface
var _ portssvc.WorkflowSvcFacade = (*workflowService)(nil)

// lockExpense serializes workflow steps for one expense within this process.
func (s *workflowService) lockExpense(expenseID string) func() {
	s.mu.Lock()
	em, ok := s.expenseMus[expenseID]
	if !ok {
		em = &sync.Mutex{}
		s.expenseMus[expenseID] = em
	}
	s.mu.Unlock()

	em.Lock()
	return em.Unlock
}

// forgetExpense drops the keyed mutex once an expense has settled, so the
// map does not grow with every expense the process ever touched. A waiter
// holding the stale mutex re-reads the expense and finds nothing to do.
func (s *workflowService) forgetExpense(expenseID string) {
	s.mu.Lock()
	delete(s.expenseMus, expenseID)
	s.mu.Unlock()
}

// BuildApprovalChain ensures an approval record exists for every approver
// required by the expense's applicable rules. Re-invocation is harmless:
// existing records are left alone and no duplicate notifications are sent.
// With no applicable rules (or rules that name no approvers) the expense is
// approved on the spot.
func (s *workflowService) BuildApprovalChain(ctx context.Context, expense *domain.Expense) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	unlock := s.lockExpense(expense.ExpenseID)
	defer unlock()

	owner, err := s.userRepo.FindUserByID(ctx, expense.UserID)
	if err != nil {
		return fmt.Errorf("failed to load expense owner: %w", err)
	}

	rules, err := s.ruleRepo.ListActiveRulesByCompany(ctx, expense.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to list rules for approval chain: %w", err)
	}
	applicable := s.ruleSvc.ApplicableRules(expense, rules)

	approverIDs := s.collectApprovers(owner, applicable)
	if len(approverIDs) == 0 {
		logger.Info("No approvers required, auto-approving expense", slog.String("expense_id", expense.ExpenseID))
		return s.autoApprove(ctx, expense)
	}

	stepByApprover := stepIDsByApprover(applicable)
	for _, approverID := range approverIDs {
		approval := domain.Approval{
			ApprovalID: uuid.NewString(),
			ExpenseID:  expense.ExpenseID,
			ApproverID: approverID,
			StepID:     stepByApprover[approverID],
			Status:     domain.ApprovalPending,
			AuditFields: domain.AuditFields{
				CreatedAt:     time.Now(),
				CreatedBy:     expense.UserID,
				LastUpdatedAt: time.Now(),
				LastUpdatedBy: expense.UserID,
			},
		}

		created, err := s.approvalRepo.CreateApprovalIfAbsent(ctx, approval)
		if err != nil {
			return fmt.Errorf("failed to create approval record: %w", err)
		}
		if created {
			s.notifier.Notify(ctx, approverID, domain.NotifyApprovalRequest,
				"New Expense Approval Request",
				fmt.Sprintf("%s submitted an expense of %s %s for your approval", owner.FullName, expense.Amount.String(), expense.CurrencyCode),
				&expense.ExpenseID)
		}
	}

	logger.Info("Approval chain built", slog.String("expense_id", expense.ExpenseID), slog.Int("approvers", len(approverIDs)))
	return nil
}

// collectApprovers derives the distinct approver IDs the applicable rules
// require, preserving rule order: the owner's manager first when any rule
// demands it, then step approvers, then designated specific approvers.
func (s *workflowService) collectApprovers(owner *domain.User, applicable []domain.ApprovalRule) []string {
	seen := make(map[string]struct{})
	var approverIDs []string
	add := func(id string) {
		if id == "" {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		approverIDs = append(approverIDs, id)
	}

	for _, rule := range applicable {
		if rule.IsManagerApprover && owner.ManagerID != nil {
			add(*owner.ManagerID)
		}
		for _, step := range rule.Steps {
			add(step.ApproverID)
		}
		if rule.SpecificApproverID != nil {
			add(*rule.SpecificApproverID)
		}
	}
	return approverIDs
}

// stepIDsByApprover maps each approver to the first step slot that names
// them, so decided approvals keep a pointer back to their origin.
func stepIDsByApprover(applicable []domain.ApprovalRule) map[string]*string {
	out := make(map[string]*string)
	for _, rule := range applicable {
		for i := range rule.Steps {
			step := rule.Steps[i]
			if _, ok := out[step.ApproverID]; !ok {
				out[step.ApproverID] = &step.StepID
			}
		}
	}
	return out
}

// autoApprove finalizes an expense that needs nobody's sign-off.
func (s *workflowService) autoApprove(ctx context.Context, expense *domain.Expense) error {
	now := time.Now()
	rows, err := s.expenseRepo.UpdateExpenseStatusIfNotTerminal(ctx, expense.ExpenseID, domain.ExpenseApproved, &now, systemActor)
	if err != nil {
		return fmt.Errorf("failed to auto-approve expense: %w", err)
	}
	s.forgetExpense(expense.ExpenseID)
	if rows == 0 {
		// Already settled elsewhere.
		return nil
	}
	s.notifier.Notify(ctx, expense.UserID, domain.NotifyExpenseApproved,
		"Expense Approved",
		fmt.Sprintf("Your expense of %s %s was approved automatically", expense.Amount.String(), expense.CurrencyCode),
		&expense.ExpenseID)
	return nil
}

// DecideApproval records one approver's decision, notifies the expense
// owner and synchronously resolves the expense afterwards.
func (s *workflowService) DecideApproval(ctx context.Context, approvalID string, approverID string, req dto.DecideApprovalRequest) (*domain.Approval, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Status != domain.ApprovalApproved && req.Status != domain.ApprovalRejected {
		return nil, fmt.Errorf("%w: decision must be approved or rejected", apperrors.ErrValidation)
	}

	approval, err := s.approvalRepo.FindApprovalByID(ctx, approvalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find approval: %w", err)
	}
	if approval.ApproverID != approverID {
		return nil, fmt.Errorf("%w: approval %s is not assigned to this user", apperrors.ErrForbidden, approvalID)
	}
	if approval.Status != domain.ApprovalPending {
		return nil, fmt.Errorf("%w: approval %s is already %s", apperrors.ErrInvalidState, approvalID, approval.Status)
	}

	unlock := s.lockExpense(approval.ExpenseID)
	defer unlock()

	expense, err := s.expenseRepo.FindExpenseByID(ctx, approval.ExpenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense for approval: %w", err)
	}
	if expense.Status != domain.ExpensePending {
		return nil, fmt.Errorf("%w: expense %s is %s, not pending", apperrors.ErrInvalidState, expense.ExpenseID, expense.Status)
	}

	now := time.Now()
	approval.Status = req.Status
	approval.Comments = req.Comments
	approval.DecidedAt = &now
	approval.LastUpdatedAt = now
	approval.LastUpdatedBy = approverID

	rows, err := s.approvalRepo.UpdateApprovalDecision(ctx, *approval)
	if err != nil {
		return nil, fmt.Errorf("failed to record approval decision: %w", err)
	}
	if rows == 0 {
		// Lost a cross-process race: someone decided this record first.
		return nil, fmt.Errorf("%w: approval %s was already decided", apperrors.ErrInvalidState, approvalID)
	}

	s.notifyOwnerOfDecision(ctx, expense, approval, approverID)

	if err := s.resolveLocked(ctx, expense.ExpenseID, approverID); err != nil {
		logger.Error("Failed to resolve expense after decision", slog.String("expense_id", expense.ExpenseID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Approval decided", slog.String("approval_id", approvalID), slog.String("decision", string(req.Status)))
	return approval, nil
}

// notifyOwnerOfDecision tells the expense owner what just happened to one
// of their pending approvals.
func (s *workflowService) notifyOwnerOfDecision(ctx context.Context, expense *domain.Expense, approval *domain.Approval, approverID string) {
	approverName := "An approver"
	if approver, err := s.userRepo.FindUserByID(ctx, approverID); err == nil {
		approverName = approver.FullName
	}

	if approval.Status == domain.ApprovalApproved {
		s.notifier.Notify(ctx, expense.UserID, domain.NotifyExpenseApproved,
			"Expense Approved",
			fmt.Sprintf("%s approved your expense of %s %s", approverName, expense.Amount.String(), expense.CurrencyCode),
			&expense.ExpenseID)
		return
	}
	s.notifier.Notify(ctx, expense.UserID, domain.NotifyExpenseRejected,
		"Expense Rejected",
		fmt.Sprintf("%s rejected your expense of %s %s", approverName, expense.Amount.String(), expense.CurrencyCode),
		&expense.ExpenseID)
}

// ListApprovalsForApprover retrieves the caller's approval records.
func (s *workflowService) ListApprovalsForApprover(ctx context.Context, approverID string, onlyPending bool) ([]domain.Approval, error) {
	approvals, err := s.approvalRepo.ListApprovalsByApprover(ctx, approverID, onlyPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals in service: %w", err)
	}
	return approvals, nil
}

// ResolveExpense re-evaluates the expense against its approval records and
// transitions it when warranted. Safe to call redundantly.
func (s *workflowService) ResolveExpense(ctx context.Context, expenseID string) error {
	unlock := s.lockExpense(expenseID)
	defer unlock()
	return s.resolveLocked(ctx, expenseID, systemActor)
}

// resolveLocked is the resolution engine proper. The caller must hold the
// expense's mutex.
//
// Applicable rules are recomputed from the current rule set, in order, and
// the first satisfied rule approves the expense. When no rule is satisfied,
// any rejected record rejects it; otherwise it stays pending.
func (s *workflowService) resolveLocked(ctx context.Context, expenseID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return fmt.Errorf("failed to find expense for resolution: %w", err)
	}
	if expense.Status != domain.ExpensePending {
		// Terminal or never submitted: nothing to do.
		if expense.Status != domain.ExpenseDraft {
			s.forgetExpense(expenseID)
		}
		return nil
	}

	approvals, err := s.approvalRepo.FindApprovalsByExpenseID(ctx, expenseID)
	if err != nil {
		return fmt.Errorf("failed to load approvals for resolution: %w", err)
	}

	rules, err := s.ruleRepo.ListActiveRulesByCompany(ctx, expense.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to list rules for resolution: %w", err)
	}
	applicable := s.ruleSvc.ApplicableRules(expense, rules)

	newStatus := evaluateRules(applicable, approvals)
	if newStatus == domain.ExpensePending {
		return nil
	}

	now := time.Now()
	rows, err := s.expenseRepo.UpdateExpenseStatusIfNotTerminal(ctx, expenseID, newStatus, &now, actorID)
	if err != nil {
		return fmt.Errorf("failed to update expense status: %w", err)
	}
	s.forgetExpense(expenseID)
	if rows == 0 {
		// Another resolver got there first; their outcome stands.
		return nil
	}

	logger.Info("Expense resolved", slog.String("expense_id", expenseID), slog.String("status", string(newStatus)))
	return nil
}

// evaluateRules decides the expense status from its applicable rules and
// current approval records.
//
// Rules are checked in order and the first satisfied one approves the
// expense, even when another record holds a rejection. With no applicable
// rules there is nothing left to demand, so the expense is approved.
func evaluateRules(applicable []domain.ApprovalRule, approvals []domain.Approval) domain.ExpenseStatus {
	if len(applicable) == 0 {
		return domain.ExpenseApproved
	}

	total := len(approvals)
	approvedCount := 0
	anyRejected := false
	approvedBy := make(map[string]bool, total)
	for _, a := range approvals {
		switch a.Status {
		case domain.ApprovalApproved:
			approvedCount++
			approvedBy[a.ApproverID] = true
		case domain.ApprovalRejected:
			anyRejected = true
		}
	}

	for _, rule := range applicable {
		if ruleSatisfied(rule, total, approvedCount, approvedBy) {
			return domain.ExpenseApproved
		}
	}

	if anyRejected {
		return domain.ExpenseRejected
	}
	return domain.ExpensePending
}

// ruleSatisfied reports whether one rule's approval condition holds.
func ruleSatisfied(rule domain.ApprovalRule, total, approvedCount int, approvedBy map[string]bool) bool {
	percentageMet := func() bool {
		if rule.PercentageThreshold == nil || total == 0 {
			return false
		}
		// approved/total*100 >= threshold, in exact integer arithmetic.
		return approvedCount*100 >= *rule.PercentageThreshold*total
	}
	specificMet := func() bool {
		return rule.SpecificApproverID != nil && approvedBy[*rule.SpecificApproverID]
	}

	switch rule.RuleType {
	case domain.RulePercentage:
		return percentageMet()
	case domain.RuleSpecific:
		return specificMet()
	case domain.RuleHybrid:
		return percentageMet() || specificMet()
	default:
		return false
	}
}
