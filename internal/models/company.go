package models

// Company maps to the companies table.
type Company struct {
	CompanyID    string `json:"companyID"`
	Name         string `json:"name"`
	Country      string `json:"country"`
	CurrencyCode string `json:"currencyCode"`
	AuditFields
}
