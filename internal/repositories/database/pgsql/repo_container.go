package pgsql

import (
	portsrepo "github.com/expenseflow/expense_approval_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	companyRepo := newPgxCompanyRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)
	ruleRepo := newPgxRuleRepository(dbPool)
	approvalRepo := newPgxApprovalRepository(dbPool)
	notificationRepo := newPgxNotificationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CompanyRepo:      companyRepo,
		UserRepo:         userRepo,
		CategoryRepo:     categoryRepo,
		ExpenseRepo:      expenseRepo,
		RuleRepo:         ruleRepo,
		ApprovalRepo:     approvalRepo,
		NotificationRepo: notificationRepo,
	}
}
