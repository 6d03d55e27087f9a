package models

// User maps to the users table.
type User struct {
	UserID       string  `json:"userID"`
	Username     string  `json:"username"`
	FullName     string  `json:"fullName"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	Role         string  `json:"role"`
	CompanyID    string  `json:"companyID"`
	ManagerID    *string `json:"managerID,omitempty"`
	AuditFields
}
