package repositories

import (
	"context"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
)

// CategoryReader defines read operations for expense categories
type CategoryReader interface {
	// FindCategoryByID retrieves a category by ID.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.ExpenseCategory, error)

	// ListCategoriesByCompany retrieves a company's active categories.
	ListCategoriesByCompany(ctx context.Context, companyID string) ([]domain.ExpenseCategory, error)
}

// CategoryWriter defines write operations for expense categories
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.ExpenseCategory) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
