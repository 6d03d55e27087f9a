package services

import (
	"time"

	portsrepo "github.com/expenseflow/expense_approval_app/internal/core/ports/repositories"
	portssvc "github.com/expenseflow/expense_approval_app/internal/core/ports/services"
)

// ContainerDeps carries everything the service container needs beyond the
// repositories: external collaborators and token settings.
type ContainerDeps struct {
	Repos       *portsrepo.RepositoryProvider
	RateSource  portssvc.RateSource
	Countries   portssvc.CountrySource
	Extractor   portssvc.ReceiptExtractor
	JWTSecret   string
	JWTDuration time.Duration
	JWTIssuer   string
}

// NewServiceContainer creates the service container with properly wired
// dependencies.
func NewServiceContainer(deps ContainerDeps) *portssvc.ServiceContainer {
	repos := deps.Repos
	container := &portssvc.ServiceContainer{}

	container.Conversion = NewConversionService(deps.RateSource)
	container.Notification = NewNotificationService(repos.NotificationRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Rule = NewRuleService(repos.RuleRepo, repos.UserRepo)

	companySvc := NewCompanyService(repos.CompanyRepo, repos.CategoryRepo, repos.UserRepo)
	container.Company = companySvc
	container.Category = companySvc.(portssvc.CategorySvcFacade)

	container.Auth = NewAuthService(repos.UserRepo, container.Company, deps.JWTSecret, deps.JWTDuration, deps.JWTIssuer)

	container.Workflow = NewWorkflowService(
		repos.ExpenseRepo,
		repos.ApprovalRepo,
		repos.RuleRepo,
		repos.UserRepo,
		container.Rule,
		container.Notification,
	)

	container.Expense = NewExpenseService(
		repos.ExpenseRepo,
		repos.ApprovalRepo,
		repos.UserRepo,
		repos.CompanyRepo,
		repos.CategoryRepo,
		container.Conversion,
		container.Workflow,
		container.Notification,
		deps.Extractor,
	)

	container.Countries = deps.Countries

	return container
}
