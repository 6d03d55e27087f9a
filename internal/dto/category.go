package dto

import (
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
)

// CreateCategoryRequest defines the payload for creating an expense category.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty,max=255"`
}

// CategoryResponse defines the category representation returned by the API.
type CategoryResponse struct {
	CategoryID  string `json:"categoryID"`
	CompanyID   string `json:"companyID"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// ToCategoryResponse maps a domain.ExpenseCategory to a CategoryResponse.
func ToCategoryResponse(c *domain.ExpenseCategory) CategoryResponse {
	return CategoryResponse{
		CategoryID:  c.CategoryID,
		CompanyID:   c.CompanyID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
	}
}

// ToCategoryResponses maps a slice of categories.
func ToCategoryResponses(categories []domain.ExpenseCategory) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	return responses
}
