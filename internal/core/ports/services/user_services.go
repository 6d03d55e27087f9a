package services

import (
	"context"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/expenseflow/expense_approval_app/internal/dto"
)

// UserReaderSvc defines read operations for users
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves all users of the requesting user's company.
	ListUsers(ctx context.Context, requestingUserID string) ([]domain.User, error)
}

// UserWriterSvc defines write operations for users
type UserWriterSvc interface {
	// UpdateUser changes a user's role, manager or profile fields.
	// Only company admins may change role or manager.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
