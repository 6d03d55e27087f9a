package dto

import (
	"time"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
)

// RegisterRequest creates a new user. CompanyID is required for all users
// except the very first, who provides company details instead and becomes
// the company admin.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`

	CompanyID *string `json:"companyID" binding:"omitempty,uuid"`

	CompanyName     *string `json:"companyName"`
	CompanyCountry  *string `json:"companyCountry"`
	CompanyCurrency *string `json:"companyCurrency" binding:"omitempty,len=3,uppercase"`
}

// LoginRequest carries username/password credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token and the authenticated user.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// UpdateUserRequest defines the mutable fields of a user. Nil fields are
// left unchanged.
type UpdateUserRequest struct {
	FullName  *string          `json:"fullName"`
	Role      *domain.UserRole `json:"role" binding:"omitempty,oneof=admin manager employee"`
	ManagerID *string          `json:"managerID" binding:"omitempty,uuid"`
}

// UserResponse defines the structure for API responses containing user details.
type UserResponse struct {
	UserID    string          `json:"userID"`
	Username  string          `json:"username"`
	FullName  string          `json:"fullName"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
	CompanyID string          `json:"companyID"`
	ManagerID *string         `json:"managerID,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		CompanyID: u.CompanyID,
		ManagerID: u.ManagerID,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses converts a slice of domain.User to response DTOs.
func ToUserResponses(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}
