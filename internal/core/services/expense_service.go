package services

import (
	"context"
	"errors"
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
	"github.com/shopspring/decimal"
)

// expenseService provides business logic for the expense lifecycle.
type expenseService struct {
	expenseRepo   portsrepo.ExpenseRepositoryFacade
	approvalRepo  portsrepo.ApprovalReader
	userRepo      portsrepo.UserRepositoryFacade
	companyRepo   portsrepo.CompanyReader
	categoryRepo  portsrepo.CategoryReader
	conversionSvc portssvc.ConversionSvcFacade
	workflowSvc   portssvc.ApprovalChainBuilderSvc
	notifier      portssvc.NotifierSvc
	extractor     portssvc.ReceiptExtractor
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	approvalRepo portsrepo.ApprovalReader,
	userRepo portsrepo.UserRepositoryFacade,
	companyRepo portsrepo.CompanyReader,
	categoryRepo portsrepo.CategoryReader,
	conversionSvc portssvc.ConversionSvcFacade,
	workflowSvc portssvc.ApprovalChainBuilderSvc,
	notifier portssvc.NotifierSvc,
	extractor portssvc.ReceiptExtractor,
) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo:   expenseRepo,
		approvalRepo:  approvalRepo,
		userRepo:      userRepo,
		companyRepo:   companyRepo,
		categoryRepo:  categoryRepo,
		conversionSvc: conversionSvc,
		workflowSvc:   workflowSvc,
		notifier:      notifier,
		extractor:     extractor,
	}
}

// Ensure expenseService implements the portssvc.ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// canView reports whether the requesting user may see the expense: the
// owner, a company admin, the owner's direct manager, or anyone holding an
// approval record on it.
func (s *expenseService) canView(ctx context.Context, expense *domain.Expense, requester *domain.User) (bool, error) {
	if expense.UserID == requester.UserID {
		return true, nil
	}
	if requester.CompanyID != expense.CompanyID {
		return false, nil
	}
	if requester.IsAdmin() {
		return true, nil
	}

	owner, err := s.userRepo.FindUserByID(ctx, expense.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to load expense owner: %w", err)
	}
	if owner.ManagerID != nil && *owner.ManagerID == requester.UserID {
		return true, nil
	}

	approvals, err := s.approvalRepo.FindApprovalsByExpenseID(ctx, expense.ExpenseID)
	if err != nil {
		return false, fmt.Errorf("failed to load approvals: %w", err)
	}
	for _, a := range approvals {
		if a.ApproverID == requester.UserID {
			return true, nil
		}
	}
	return false, nil
}

// GetExpenseByID retrieves an expense visible to the requesting user.
func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requesting user: %w", err)
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense in service: %w", err)
	}

	ok, err := s.canView(ctx, expense, requester)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Hide existence from users outside the visibility set.
		return nil, fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
	}
	return expense, nil
}

// ListExpenses retrieves what the requesting user's role entitles them to:
// admins the whole company, managers their reports plus their own, everyone
// else just their own.
func (s *expenseService) ListExpenses(ctx context.Context, requestingUserID string) ([]domain.Expense, error) {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requesting user: %w", err)
	}

	if requester.IsAdmin() {
		expenses, err := s.expenseRepo.ListExpensesByCompany(ctx, requester.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("failed to list company expenses: %w", err)
		}
		return expenses, nil
	}

	if requester.Role == domain.RoleManager {
		colleagues, err := s.userRepo.ListUsersByCompany(ctx, requester.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("failed to list company users: %w", err)
		}
		visible := map[string]struct{}{requester.UserID: {}}
		for _, u := range colleagues {
			if u.ManagerID != nil && *u.ManagerID == requester.UserID {
				visible[u.UserID] = struct{}{}
			}
		}

		all, err := s.expenseRepo.ListExpensesByCompany(ctx, requester.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("failed to list company expenses: %w", err)
		}
		team := make([]domain.Expense, 0, len(all))
		for _, e := range all {
			if _, ok := visible[e.UserID]; ok {
				team = append(team, e)
			}
		}
		return team, nil
	}

	expenses, err := s.expenseRepo.ListExpensesByUser(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// ListPendingApprovalExpenses retrieves pending expenses awaiting the
// requesting user's decision.
func (s *expenseService) ListPendingApprovalExpenses(ctx context.Context, requestingUserID string) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.ListExpensesPendingForApprover(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}
	return expenses, nil
}

// CreateExpense persists a new draft expense owned by the creator.
func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	creator, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load creating user: %w", err)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category '%s' not found", apperrors.ErrValidation, req.CategoryID)
		}
		return nil, fmt.Errorf("failed to validate category: %w", err)
	}
	if category.CompanyID != creator.CompanyID {
		return nil, fmt.Errorf("%w: category '%s' not found", apperrors.ErrValidation, req.CategoryID)
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:    uuid.NewString(),
		UserID:       creatorUserID,
		CompanyID:    creator.CompanyID,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		CategoryID:   req.CategoryID,
		Description:  req.Description,
		ExpenseDate:  req.ExpenseDate,
		Status:       domain.ExpenseDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		logger.Error("Failed to save expense", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create expense in service: %w", err)
	}

	logger.Info("Expense created", slog.String("expense_id", expense.ExpenseID))
	return &expense, nil
}

// SubmitExpense normalizes the amount into the company's base currency,
// moves the expense from draft to pending and builds its approval chain.
// A failed normalization leaves the expense in draft with nothing written.
func (s *expenseService) SubmitExpense(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense in service: %w", err)
	}
	if expense.UserID != requestingUserID {
		return nil, fmt.Errorf("%w: only the owner may submit an expense", apperrors.ErrForbidden)
	}
	if expense.Status != domain.ExpenseDraft {
		return nil, fmt.Errorf("%w: expense is %s, only drafts can be submitted", apperrors.ErrInvalidState, expense.Status)
	}

	owner, err := s.userRepo.FindUserByID(ctx, expense.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense owner: %w", err)
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, expense.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	// Normalize before any write: if the rate source lets us down the
	// expense must stay a draft.
	conversion, err := s.conversionSvc.Convert(ctx, expense.Amount, expense.CurrencyCode, company.CurrencyCode)
	if err != nil {
		logger.Warn("Currency normalization failed on submit", slog.String("expense_id", expenseID), slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now()
	if err := s.expenseRepo.SetNormalizedAmount(ctx, expenseID, conversion.Amount, conversion.Rate, now, requestingUserID); err != nil {
		return nil, fmt.Errorf("failed to persist normalized amount: %w", err)
	}

	expense.AmountInCompanyCurrency = &conversion.Amount
	expense.ExchangeRate = &conversion.Rate
	expense.SubmittedAt = &now
	expense.Status = domain.ExpensePending
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = requestingUserID

	if err := s.workflowSvc.BuildApprovalChain(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to build approval chain: %w", err)
	}

	// The chain build may settle the expense on the spot (no approvers
	// required); re-read so the response reports the stored outcome.
	expense, err = s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload expense after submit: %w", err)
	}

	if owner.ManagerID != nil {
		s.notifier.Notify(ctx, *owner.ManagerID, domain.NotifyExpenseSubmitted,
			"Expense Submitted",
			fmt.Sprintf("%s submitted an expense of %s %s", owner.FullName, expense.Amount.String(), expense.CurrencyCode),
			&expense.ExpenseID)
	}

	logger.Info("Expense submitted", slog.String("expense_id", expenseID), slog.String("normalized", conversion.Amount.String()))
	return expense, nil
}

// CancelExpense cancels a draft or pending expense owned by the user.
func (s *expenseService) CancelExpense(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense in service: %w", err)
	}
	if expense.UserID != requestingUserID {
		return nil, fmt.Errorf("%w: only the owner may cancel an expense", apperrors.ErrForbidden)
	}
	if expense.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: expense is already %s", apperrors.ErrInvalidState, expense.Status)
	}

	now := time.Now()
	rows, err := s.expenseRepo.UpdateExpenseStatusIfNotTerminal(ctx, expenseID, domain.ExpenseCancelled, &now, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel expense: %w", err)
	}
	if rows == 0 {
		// Settled between our read and write.
		return nil, fmt.Errorf("%w: expense was resolved concurrently", apperrors.ErrInvalidState)
	}

	expense.Status = domain.ExpenseCancelled
	expense.ResolvedAt = &now
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = requestingUserID

	logger.Info("Expense cancelled", slog.String("expense_id", expenseID))
	return expense, nil
}

// AttachReceipt runs OCR over a receipt image and stores the extracted text
// alongside the draft expense.
func (s *expenseService) AttachReceipt(ctx context.Context, expenseID string, requestingUserID string, imagePath string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense in service: %w", err)
	}
	if expense.UserID != requestingUserID {
		return nil, fmt.Errorf("%w: only the owner may attach a receipt", apperrors.ErrForbidden)
	}
	if expense.Status != domain.ExpenseDraft {
		return nil, fmt.Errorf("%w: receipts can only be attached to drafts", apperrors.ErrInvalidState)
	}

	receipt, err := s.extractor.ExtractReceipt(ctx, imagePath)
	if err != nil {
		// The image is still worth keeping even when OCR fails.
		logger.Warn("Receipt OCR failed", slog.String("expense_id", expenseID), slog.String("error", err.Error()))
		receipt = &portssvc.ReceiptData{}
	}

	now := time.Now()
	expense.ReceiptImagePath = imagePath
	expense.OCRText = receipt.RawText
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = requestingUserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		return nil, fmt.Errorf("failed to update expense with receipt: %w", err)
	}

	logger.Info("Receipt attached", slog.String("expense_id", expenseID))
	return expense, nil
}
