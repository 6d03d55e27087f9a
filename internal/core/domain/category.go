package domain

// ExpenseCategory groups expenses for reporting (Travel, Food, Office Supplies, ...).
// Category names are unique within a company.
type ExpenseCategory struct {
	CategoryID  string `json:"categoryID"`
	CompanyID   string `json:"companyID"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
