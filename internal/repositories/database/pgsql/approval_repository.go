package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/expenseflow/expense_approval_app/internal/apperrors"
	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	portsrepo "github.com/expenseflow/expense_approval_app/internal/core/ports/repositories"
	"github.com/expenseflow/expense_approval_app/internal/models"
	"github.com/expenseflow/expense_approval_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxApprovalRepository struct {
	BaseRepository
}

func newPgxApprovalRepository(db *pgxpool.Pool) portsrepo.ApprovalRepositoryFacade {
	return &PgxApprovalRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxApprovalRepository implements portsrepo.ApprovalRepositoryFacade
var _ portsrepo.ApprovalRepositoryFacade = (*PgxApprovalRepository)(nil)

const approvalColumns = `approval_id, expense_id, approver_id, step_id, status, comments, decided_at,
		created_at, created_by, last_updated_at, last_updated_by`

func scanApproval(row pgx.Row) (*models.Approval, error) {
	var m models.Approval
	err := row.Scan(
		&m.ApprovalID, &m.ExpenseID, &m.ApproverID, &m.StepID, &m.Status, &m.Comments, &m.DecidedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxApprovalRepository) CreateApprovalIfAbsent(ctx context.Context, approval domain.Approval) (bool, error) {
	m := mapping.ToModelApproval(approval)
	tag, err := r.Pool.Exec(ctx, `
		INSERT INTO approvals (`+approvalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (expense_id, approver_id) DO NOTHING;`,
		m.ApprovalID, m.ExpenseID, m.ApproverID, m.StepID, m.Status, m.Comments, m.DecidedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			// A concurrent insert won the race; same outcome as ON CONFLICT.
			return false, nil
		}
		return false, fmt.Errorf("failed to create approval: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxApprovalRepository) UpdateApprovalDecision(ctx context.Context, approval domain.Approval) (int64, error) {
	m := mapping.ToModelApproval(approval)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE approvals
		SET status = $2, comments = $3, decided_at = $4, last_updated_at = $5, last_updated_by = $6
		WHERE approval_id = $1 AND status = 'pending';`,
		m.ApprovalID, m.Status, m.Comments, m.DecidedAt, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update approval decision: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgxApprovalRepository) FindApprovalByID(ctx context.Context, approvalID string) (*domain.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE approval_id = $1;`
	m, err := scanApproval(r.Pool.QueryRow(ctx, query, approvalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find approval by ID %s: %w", approvalID, err)
	}
	approval := mapping.ToDomainApproval(*m)
	return &approval, nil
}

func (r *PgxApprovalRepository) queryApprovals(ctx context.Context, query string, args ...any) ([]domain.Approval, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query approvals: %w", err)
	}
	defer rows.Close()

	var approvals []domain.Approval
	for rows.Next() {
		m, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval row: %w", err)
		}
		approvals = append(approvals, mapping.ToDomainApproval(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating approval rows: %w", err)
	}
	return approvals, nil
}

func (r *PgxApprovalRepository) FindApprovalsByExpenseID(ctx context.Context, expenseID string) ([]domain.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE expense_id = $1 ORDER BY created_at;`
	return r.queryApprovals(ctx, query, expenseID)
}

func (r *PgxApprovalRepository) ListApprovalsByApprover(ctx context.Context, approverID string, onlyPending bool) ([]domain.Approval, error) {
	query := `SELECT ` + approvalColumns + ` FROM approvals WHERE approver_id = $1`
	if onlyPending {
		query += ` AND status = 'pending'`
	}
	query += ` ORDER BY created_at DESC;`
	return r.queryApprovals(ctx, query, approverID)
}
