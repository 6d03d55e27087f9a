package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	portsrepo "github.com/expenseflow/expense_approval_app/internal/core/ports/repositories"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/dto"
	"github.com/expenseflow/expense_approval_app/internal/middleware"
)

// userService provides business logic for user management.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user in service: %w", err)
	}
	return user, nil
}

// ListUsers retrieves all users of the requesting user's company.
func (s *userService) ListUsers(ctx context.Context, requestingUserID string) ([]domain.User, error) {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requesting user: %w", err)
	}

	users, err := s.userRepo.ListUsersByCompany(ctx, requester.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users in service: %w", err)
	}
	return users, nil
}

// UpdateUser changes a user's profile fields. Role and manager assignment
// are restricted to company admins.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requesting user: %w", err)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user in service: %w", err)
	}
	if user.CompanyID != requester.CompanyID {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}

	if req.Role != nil || req.ManagerID != nil {
		if !requester.IsAdmin() {
			return nil, fmt.Errorf("%w: only company admins may change roles or managers", apperrors.ErrForbidden)
		}
	} else if requester.UserID != userID && !requester.IsAdmin() {
		return nil, fmt.Errorf("%w: users may only edit their own profile", apperrors.ErrForbidden)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.ManagerID != nil {
		manager, err := s.userRepo.FindUserByID(ctx, *req.ManagerID)
		if err != nil {
			return nil, fmt.Errorf("%w: manager %s not found", apperrors.ErrValidation, *req.ManagerID)
		}
		if manager.CompanyID != user.CompanyID {
			return nil, fmt.Errorf("%w: manager must belong to the same company", apperrors.ErrValidation)
		}
		if manager.UserID == user.UserID {
			return nil, fmt.Errorf("%w: a user cannot be their own manager", apperrors.ErrValidation)
		}
		user.ManagerID = req.ManagerID
	}

	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("error", err.Error()), slog.String("target_user_id", userID))
		return nil, fmt.Errorf("failed to update user in service: %w", err)
	}

	logger.Info("User updated", slog.String("target_user_id", userID))
	return user, nil
}
