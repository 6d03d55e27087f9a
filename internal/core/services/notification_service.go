package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	portsrepo "github.com/expenseflow/expense_approval_app/internal/core/ports/repositories"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
	"github.com/expenseflow/expense_approval_app/internal/middleware"
	"github.com/google/uuid"
)

// notificationService persists and lists user notifications. Delivery is
// best-effort: the workflow must never fail because a notification could
// not be written.
type notificationService struct {
	notificationRepo portsrepo.NotificationRepositoryFacade
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade) portssvc.NotificationSvcFacade {
	return &notificationService{notificationRepo: notificationRepo}
}

// Ensure notificationService implements the portssvc.NotificationSvcFacade interface
var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// Notify records a notification for the user. Errors are logged and
// swallowed so callers can treat this as fire-and-forget.
func (s *notificationService) Notify(ctx context.Context, userID string, notifType domain.NotificationType, title, message string, expenseID *string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         userID,
		Type:           notifType,
		Title:          title,
		Message:        message,
		ExpenseID:      expenseID,
		IsRead:         false,
		CreatedAt:      time.Now(),
	}

	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		logger.Error("Failed to save notification",
			slog.String("user_id", userID),
			slog.String("type", string(notifType)),
			slog.String("error", err.Error()))
		return
	}

	logger.Debug("Notification saved", slog.String("user_id", userID), slog.String("type", string(notifType)))
}

// ListNotifications retrieves the user's notifications, newest first.
func (s *notificationService) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	notifications, err := s.notificationRepo.ListNotificationsByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications in service: %w", err)
	}
	return notifications, nil
}

// MarkRead flips the read flag on one of the user's notifications.
func (s *notificationService) MarkRead(ctx context.Context, notificationID string, userID string) error {
	if err := s.notificationRepo.MarkNotificationRead(ctx, notificationID, userID); err != nil {
		return fmt.Errorf("failed to mark notification read in service: %w", err)
	}
	return nil
}

// MarkAllRead flips the read flag on all of the user's unread notifications.
func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notificationRepo.MarkAllNotificationsRead(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read in service: %w", err)
	}
	return nil
}
