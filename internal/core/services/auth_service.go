package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	portsrepo "github.com/expenseflow/expense_approval_app/internal/core/ports/repositories"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/dto"
	"github.com/expenseflow/expense_approval_app/internal/middleware"
	"github.com/expenseflow/expense_approval_app/internal/utils"
	"github.com/google/uuid"
)

// authService handles registration and token issuing.
type authService struct {
	userRepo    portsrepo.UserRepositoryFacade
	companySvc  portssvc.CompanySvcFacade
	jwtSecret   string
	jwtDuration time.Duration
	jwtIssuer   string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, companySvc portssvc.CompanySvcFacade, jwtSecret string, jwtDuration time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:    userRepo,
		companySvc:  companySvc,
		jwtSecret:   jwtSecret,
		jwtDuration: jwtDuration,
		jwtIssuer:   jwtIssuer,
	}
}

// Ensure authService implements the portssvc.AuthSvcFacade interface
var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Register creates a user. When no company ID is given, company details are
// required, a fresh company is created and the user becomes its admin;
// otherwise the user joins the referenced company as an employee.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.userRepo.FindUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username '%s' is taken", apperrors.ErrDuplicate, req.Username)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUserID := uuid.NewString()
	role := domain.RoleEmployee
	var companyID string

	switch {
	case req.CompanyID != nil:
		companyID = *req.CompanyID
	case req.CompanyName != nil && req.CompanyCountry != nil && req.CompanyCurrency != nil:
		company, err := s.companySvc.CreateCompany(ctx, dto.CreateCompanyRequest{
			Name:         *req.CompanyName,
			Country:      *req.CompanyCountry,
			CurrencyCode: *req.CompanyCurrency,
		}, newUserID)
		if err != nil {
			return nil, fmt.Errorf("failed to create company during registration: %w", err)
		}
		companyID = company.CompanyID
		role = domain.RoleAdmin
	default:
		return nil, fmt.Errorf("%w: either a company ID or full company details are required", apperrors.ErrValidation)
	}

	now := time.Now()
	user := domain.User{
		UserID:       newUserID,
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		CompanyID:    companyID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register user in service: %w", err)
	}

	logger.Info("User registered", slog.String("user_id", user.UserID), slog.String("role", string(role)))
	return &user, nil
}

// Login verifies credentials and issues a signed JWT.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		// Same error for unknown user and bad password.
		return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrForbidden)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("username", req.Username))
		return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrForbidden)
	}

	return s.issueToken(ctx, user)
}

// LoginWithProvider issues a JWT for an externally authenticated user,
// matched by verified email.
func (s *authService) LoginWithProvider(ctx context.Context, email string) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no account for this email", apperrors.ErrForbidden)
		}
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	return s.issueToken(ctx, user)
}

func (s *authService) issueToken(ctx context.Context, user *domain.User) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtDuration, s.jwtIssuer)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.jwtDuration),
		User:      dto.ToUserResponse(user),
	}, nil
}
