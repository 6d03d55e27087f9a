package dto

import (
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
)

// CreateCompanyRequest defines the payload for creating a company.
type CreateCompanyRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Country      string `json:"country" binding:"required,max=100"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3,uppercase"`
}

// CompanyResponse defines the company representation returned by the API.
type CompanyResponse struct {
	CompanyID    string `json:"companyID"`
	Name         string `json:"name"`
	Country      string `json:"country"`
	CurrencyCode string `json:"currencyCode"`
}

// ToCompanyResponse maps a domain.Company to a CompanyResponse.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:    c.CompanyID,
		Name:         c.Name,
		Country:      c.Country,
		CurrencyCode: c.CurrencyCode,
	}
}
