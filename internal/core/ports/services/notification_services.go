package services

import (
	"context"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
)

// NotifierSvc is the fire-and-forget notification sink used by the workflow.
type NotifierSvc interface {
	// Notify enqueues a notification for the user. It never fails the
	// calling workflow step: delivery errors are logged and swallowed.
	Notify(ctx context.Context, userID string, notifType domain.NotificationType, title, message string, expenseID *string)
}

// NotificationReaderSvc defines read operations for notifications
type NotificationReaderSvc interface {
	// ListNotifications retrieves the user's notifications, newest first.
	ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
}

// NotificationWriterSvc defines state changes on notifications
type NotificationWriterSvc interface {
	// MarkRead flips the read flag on one of the user's notifications.
	MarkRead(ctx context.Context, notificationID string, userID string) error

	// MarkAllRead flips the read flag on all of the user's unread notifications.
	MarkAllRead(ctx context.Context, userID string) error
}

// NotificationSvcFacade combines all notification-related service interfaces
type NotificationSvcFacade interface {
	NotifierSvc
	NotificationReaderSvc
	NotificationWriterSvc
}
