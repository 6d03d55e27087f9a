package domain

// UserRole determines what a user may do within their company.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleEmployee UserRole = "employee"
)

// User represents an employee, manager or administrator of a company.
// ManagerID references the user's direct manager and is nil for users
// at the top of the reporting chain.
type User struct {
	UserID       string   `json:"userID"`
	Username     string   `json:"username"`
	FullName     string   `json:"fullName"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	CompanyID    string   `json:"companyID"`
	ManagerID    *string  `json:"managerID,omitempty"`
	AuditFields
}

// IsAdmin reports whether the user has company administrator rights.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager reports whether the user is a manager or an admin.
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
