package models

// ExpenseCategory maps to the expense_categories table.
type ExpenseCategory struct {
	CategoryID  string `json:"categoryID"`
	CompanyID   string `json:"companyID"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
