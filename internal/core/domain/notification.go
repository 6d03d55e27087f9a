package domain

import "time"

// NotificationType tags what a notification is about.
type NotificationType string

const (
	NotifyApprovalRequest  NotificationType = "approval_request"
	NotifyExpenseApproved  NotificationType = "expense_approved"
	NotifyExpenseRejected  NotificationType = "expense_rejected"
	NotifyExpenseSubmitted NotificationType = "expense_submitted"
)

// Notification is a fire-and-forget event delivered to a user, optionally
// referencing an expense. Write-once except for the read flag.
type Notification struct {
	NotificationID string           `json:"notificationID"`
	UserID         string           `json:"userID"`
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	ExpenseID      *string          `json:"expenseID,omitempty"`
	IsRead         bool             `json:"isRead"`
	CreatedAt      time.Time        `json:"createdAt"`
}
