package services

import (
	"context"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/expenseflow/expense_approval_app/internal/dto"
)

// CompanySvcFacade manages companies.
type CompanySvcFacade interface {
	// CreateCompany persists a new company with its base currency.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)

	// GetCompanyByID retrieves a company.
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}

// CategorySvcFacade manages expense categories.
type CategorySvcFacade interface {
	// CreateCategory persists a new category in the creator's company.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.ExpenseCategory, error)

	// ListCategories retrieves the active categories of the user's company.
	ListCategories(ctx context.Context, requestingUserID string) ([]domain.ExpenseCategory, error)
}
