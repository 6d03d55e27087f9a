package mapping

import (
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/expenseflow/expense_approval_app/internal/models"
)

// ToModelApproval converts a domain Approval to a model Approval
func ToModelApproval(d domain.Approval) models.Approval {
	return models.Approval{
		ApprovalID:  d.ApprovalID,
		ExpenseID:   d.ExpenseID,
		ApproverID:  d.ApproverID,
		StepID:      d.StepID,
		Status:      string(d.Status),
		Comments:    d.Comments,
		DecidedAt:   d.DecidedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainApproval converts a model Approval to a domain Approval
func ToDomainApproval(m models.Approval) domain.Approval {
	return domain.Approval{
		ApprovalID:  m.ApprovalID,
		ExpenseID:   m.ExpenseID,
		ApproverID:  m.ApproverID,
		StepID:      m.StepID,
		Status:      domain.ApprovalStatus(m.Status),
		Comments:    m.Comments,
		DecidedAt:   m.DecidedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainApprovalSlice converts model Approvals to domain Approvals
func ToDomainApprovalSlice(ms []models.Approval) []domain.Approval {
	ds := make([]domain.Approval, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainApproval(m)
	}
	return ds
}

// ToModelNotification converts a domain Notification to a model Notification
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		NotificationID: d.NotificationID,
		UserID:         d.UserID,
		Type:           string(d.Type),
		Title:          d.Title,
		Message:        d.Message,
		ExpenseID:      d.ExpenseID,
		IsRead:         d.IsRead,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainNotification converts a model Notification to a domain Notification
func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		UserID:         m.UserID,
		Type:           domain.NotificationType(m.Type),
		Title:          m.Title,
		Message:        m.Message,
		ExpenseID:      m.ExpenseID,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}
