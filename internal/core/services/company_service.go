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

// companyService provides business logic for companies and their expense
// categories.
type companyService struct {
	companyRepo  portsrepo.CompanyRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
}

// NewCompanyService creates a new CompanyService. The returned service also
// implements portssvc.CategorySvcFacade.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo:  companyRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

// Ensure companyService implements both facades
var (
	_ portssvc.CompanySvcFacade  = (*companyService)(nil)
	_ portssvc.CategorySvcFacade = (*companyService)(nil)
)

// CreateCompany persists a new company with its base currency.
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	company := domain.Company{
		CompanyID:    uuid.NewString(),
		Name:         req.Name,
		Country:      req.Country,
		CurrencyCode: req.CurrencyCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		logger.Error("Failed to save company", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create company in service: %w", err)
	}

	logger.Info("Company created", slog.String("company_id", company.CompanyID), slog.String("currency", company.CurrencyCode))
	return &company, nil
}

// GetCompanyByID retrieves a company.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company in service: %w", err)
	}
	return company, nil
}

// CreateCategory persists a new expense category in the creator's company.
// Manager or admin only.
func (s *companyService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.ExpenseCategory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	creator, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load creating user: %w", err)
	}
	if !creator.IsManager() {
		return nil, fmt.Errorf("%w: only managers may create categories", apperrors.ErrForbidden)
	}

	now := time.Now()
	category := domain.ExpenseCategory{
		CategoryID:  uuid.NewString(),
		CompanyID:   creator.CompanyID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create category in service: %w", err)
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID), slog.String("name", category.Name))
	return &category, nil
}

// ListCategories retrieves the active categories of the user's company.
func (s *companyService) ListCategories(ctx context.Context, requestingUserID string) ([]domain.ExpenseCategory, error) {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requesting user: %w", err)
	}

	categories, err := s.categoryRepo.ListCategoriesByCompany(ctx, requester.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories in service: %w", err)
	}
	return categories, nil
}
