package repositories

import (
	"context"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
)

// NotificationReader defines read operations for notifications
type NotificationReader interface {
	// ListNotificationsByUser retrieves a user's notifications, newest first.
	ListNotificationsByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
}

// NotificationWriter defines write operations for notifications
type NotificationWriter interface {
	// SaveNotification persists a new notification.
	SaveNotification(ctx context.Context, notification domain.Notification) error

	// MarkNotificationRead flips the read flag on one notification owned by the user.
	MarkNotificationRead(ctx context.Context, notificationID, userID string) error

	// MarkAllNotificationsRead flips the read flag on all the user's unread notifications.
	MarkAllNotificationsRead(ctx context.Context, userID string) error
}

// NotificationRepositoryFacade combines all notification-related repository interfaces
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}
