package services

import (
	"context"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/expenseflow/expense_approval_app/internal/dto"
)

// AuthSvcFacade handles registration and login.
type AuthSvcFacade interface {
	// Register creates a user (and, for the first user, their company) and
	// returns the stored user.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Login verifies credentials and issues a signed JWT.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// LoginWithProvider issues a JWT for an externally authenticated user
	// (e.g. Google OAuth), matched by verified email.
	LoginWithProvider(ctx context.Context, email string) (*dto.LoginResponse, error)
}
