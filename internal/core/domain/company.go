package domain

// Company represents an organization whose employees submit expenses.
// CurrencyCode is the base currency every expense is normalized into
// before approval rules are evaluated.
type Company struct {
	CompanyID    string `json:"companyID"`
	Name         string `json:"name"`
	Country      string `json:"country"`
	CurrencyCode string `json:"currencyCode"`
	AuditFields
}
