package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	portsrepo "github.com/expenseflow/expense_approval_app/internal/core/ports/repositories"
	"github.com/expenseflow/expense_approval_app/internal/models"
	"github.com/expenseflow/expense_approval_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxExpenseRepository struct {
	db *pgxpool.Pool
}

func newPgxExpenseRepository(db *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{db: db}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, user_id, company_id, amount, currency_code,
		amount_in_company_currency, exchange_rate, category_id, description, expense_date,
		status, rejection_reason, receipt_image_path, ocr_text, submitted_at, resolved_at,
		created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID, &m.UserID, &m.CompanyID, &m.Amount, &m.CurrencyCode,
		&m.AmountInCompanyCurrency, &m.ExchangeRate, &m.CategoryID, &m.Description, &m.ExpenseDate,
		&m.Status, &m.RejectionReason, &m.ReceiptImagePath, &m.OCRText, &m.SubmittedAt, &m.ResolvedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxExpenseRepository) queryExpenses(ctx context.Context, query string, args ...any) ([]domain.Expense, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var ms []models.Expense
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return mapping.ToDomainExpenseSlice(ms), nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.db.Exec(ctx, query,
		m.ExpenseID, m.UserID, m.CompanyID, m.Amount, m.CurrencyCode,
		m.AmountInCompanyCurrency, m.ExchangeRate, m.CategoryID, m.Description, m.ExpenseDate,
		m.Status, m.RejectionReason, m.ReceiptImagePath, m.OCRText, m.SubmittedAt, m.ResolvedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
		UPDATE expenses
		SET amount = $2, currency_code = $3, category_id = $4, description = $5,
			expense_date = $6, receipt_image_path = $7, ocr_text = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE expense_id = $1 AND status = 'draft';
	`
	tag, err := r.db.Exec(ctx, query,
		m.ExpenseID, m.Amount, m.CurrencyCode, m.CategoryID, m.Description,
		m.ExpenseDate, m.ReceiptImagePath, m.OCRText,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense is not a draft", apperrors.ErrInvalidState)
	}
	return nil
}

// SetNormalizedAmount stores the converted amount and the rate used, marks
// the expense pending and stamps the submission time, in one statement.
func (r *PgxExpenseRepository) SetNormalizedAmount(ctx context.Context, expenseID string, amount, rate decimal.Decimal, submittedAt time.Time, updatedBy string) error {
	query := `
		UPDATE expenses
		SET amount_in_company_currency = $2, exchange_rate = $3, submitted_at = $4,
			status = 'pending', last_updated_at = $4, last_updated_by = $5
		WHERE expense_id = $1 AND status = 'draft';
	`
	tag, err := r.db.Exec(ctx, query, expenseID, amount, rate, submittedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set normalized amount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense is not a draft", apperrors.ErrInvalidState)
	}
	return nil
}

// UpdateExpenseStatusIfNotTerminal performs a compare-and-set: the status
// changes only while the current one is non-terminal, and the affected row
// count tells the caller whether they won the transition.
func (r *PgxExpenseRepository) UpdateExpenseStatusIfNotTerminal(ctx context.Context, expenseID string, newStatus domain.ExpenseStatus, resolvedAt *time.Time, updatedBy string) (int64, error) {
	query := `
		UPDATE expenses
		SET status = $2, resolved_at = $3, last_updated_at = NOW(), last_updated_by = $4
		WHERE expense_id = $1 AND status NOT IN ('approved', 'rejected', 'cancelled');
	`
	tag, err := r.db.Exec(ctx, query, expenseID, string(newStatus), resolvedAt, updatedBy)
	if err != nil {
		return 0, fmt.Errorf("failed to update expense status: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	m, err := scanExpense(r.db.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}
	e := mapping.ToDomainExpense(*m)
	return &e, nil
}

func (r *PgxExpenseRepository) ListExpensesByUser(ctx context.Context, userID string) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1 ORDER BY created_at DESC;`
	return r.queryExpenses(ctx, query, userID)
}

func (r *PgxExpenseRepository) ListExpensesByCompany(ctx context.Context, companyID string) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE company_id = $1 ORDER BY created_at DESC;`
	return r.queryExpenses(ctx, query, companyID)
}

func (r *PgxExpenseRepository) ListExpensesPendingForApprover(ctx context.Context, approverID string) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		WHERE e.status = 'pending'
			AND EXISTS (
				SELECT 1 FROM approvals a
				WHERE a.expense_id = e.expense_id
					AND a.approver_id = $1
					AND a.status = 'pending'
			)
		ORDER BY e.submitted_at;
	`
	return r.queryExpenses(ctx, query, approverID)
}
