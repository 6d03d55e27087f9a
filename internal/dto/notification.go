package dto

import (
	"time"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
)

// NotificationResponse defines the structure for API responses containing notification details.
type NotificationResponse struct {
	NotificationID string                  `json:"notificationID"`
	Type           domain.NotificationType `json:"type"`
	Title          string                  `json:"title"`
	Message        string                  `json:"message"`
	ExpenseID      *string                 `json:"expenseID,omitempty"`
	IsRead         bool                    `json:"isRead"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// ToNotificationResponse converts a domain.Notification to NotificationResponse DTO
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
		ExpenseID:      n.ExpenseID,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}

// ToNotificationResponses converts a slice of domain.Notification to response DTOs.
func ToNotificationResponses(notifications []domain.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = ToNotificationResponse(&notifications[i])
	}
	return responses
}
