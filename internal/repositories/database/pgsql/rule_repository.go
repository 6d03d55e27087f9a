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
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRuleRepository struct {
	BaseRepository
}

func newPgxRuleRepository(db *pgxpool.Pool) portsrepo.RuleRepositoryFacade {
	return &PgxRuleRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxRuleRepository implements portsrepo.RuleRepositoryFacade
var _ portsrepo.RuleRepositoryFacade = (*PgxRuleRepository)(nil)

const ruleColumns = `rule_id, company_id, name, description, rule_type, percentage_threshold,
		specific_approver_id, is_manager_approver, min_amount, max_amount, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

func scanRule(row pgx.Row) (*models.ApprovalRule, error) {
	var m models.ApprovalRule
	err := row.Scan(
		&m.RuleID, &m.CompanyID, &m.Name, &m.Description, &m.RuleType, &m.PercentageThreshold,
		&m.SpecificApproverID, &m.IsManagerApprover, &m.MinAmount, &m.MaxAmount, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// insertSteps writes a rule's step rows inside the given transaction.
func insertSteps(ctx context.Context, tx pgx.Tx, rule domain.ApprovalRule) error {
	for _, step := range rule.Steps {
		m := mapping.ToModelStep(step)
		_, err := tx.Exec(ctx, `
			INSERT INTO approval_steps (step_id, rule_id, step_number, approver_id, is_required)
			VALUES ($1, $2, $3, $4, $5);`,
			m.StepID, m.RuleID, m.StepNumber, m.ApproverID, m.IsRequired,
		)
		if err != nil {
			return fmt.Errorf("failed to insert approval step: %w", err)
		}
	}
	return nil
}

// loadSteps fetches the step rows for a set of rules, keyed by rule ID.
func (r *PgxRuleRepository) loadSteps(ctx context.Context, ruleIDs []string) (map[string][]domain.ApprovalStep, error) {
	if len(ruleIDs) == 0 {
		return map[string][]domain.ApprovalStep{}, nil
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT step_id, rule_id, step_number, approver_id, is_required
		FROM approval_steps
		WHERE rule_id = ANY($1)
		ORDER BY rule_id, step_number;`, ruleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query approval steps: %w", err)
	}
	defer rows.Close()

	steps := make(map[string][]domain.ApprovalStep)
	for rows.Next() {
		var m models.ApprovalStep
		if err := rows.Scan(&m.StepID, &m.RuleID, &m.StepNumber, &m.ApproverID, &m.IsRequired); err != nil {
			return nil, fmt.Errorf("failed to scan approval step row: %w", err)
		}
		steps[m.RuleID] = append(steps[m.RuleID], mapping.ToDomainStep(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating approval step rows: %w", err)
	}
	return steps, nil
}

func (r *PgxRuleRepository) SaveRule(ctx context.Context, rule domain.ApprovalRule) error {
	m := mapping.ToModelRule(rule)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO approval_rules (`+ruleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`,
		m.RuleID, m.CompanyID, m.Name, m.Description, m.RuleType, m.PercentageThreshold,
		m.SpecificApproverID, m.IsManagerApprover, m.MinAmount, m.MaxAmount, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save rule: %w", err)
	}
	if err := insertSteps(ctx, tx, rule); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxRuleRepository) UpdateRule(ctx context.Context, rule domain.ApprovalRule) error {
	m := mapping.ToModelRule(rule)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE approval_rules
		SET name = $2, description = $3, percentage_threshold = $4, specific_approver_id = $5,
			is_manager_approver = $6, min_amount = $7, max_amount = $8, is_active = $9,
			last_updated_at = $10, last_updated_by = $11
		WHERE rule_id = $1;`,
		m.RuleID, m.Name, m.Description, m.PercentageThreshold, m.SpecificApproverID,
		m.IsManagerApprover, m.MinAmount, m.MaxAmount, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	// Replace the step list wholesale; approvals reference steps weakly
	// (the FK nulls step_id on delete) so decision history survives.
	if _, err := tx.Exec(ctx, `DELETE FROM approval_steps WHERE rule_id = $1;`, m.RuleID); err != nil {
		return fmt.Errorf("failed to clear approval steps: %w", err)
	}
	if err := insertSteps(ctx, tx, rule); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxRuleRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.ApprovalRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM approval_rules WHERE rule_id = $1;`
	m, err := scanRule(r.Pool.QueryRow(ctx, query, ruleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rule by ID %s: %w", ruleID, err)
	}

	rule := mapping.ToDomainRule(*m)
	steps, err := r.loadSteps(ctx, []string{ruleID})
	if err != nil {
		return nil, err
	}
	rule.Steps = steps[ruleID]
	return &rule, nil
}

func (r *PgxRuleRepository) listRules(ctx context.Context, query string, args ...any) ([]domain.ApprovalRule, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.ApprovalRule
	var ruleIDs []string
	for rows.Next() {
		m, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule row: %w", err)
		}
		rules = append(rules, mapping.ToDomainRule(*m))
		ruleIDs = append(ruleIDs, m.RuleID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rule rows: %w", err)
	}

	steps, err := r.loadSteps(ctx, ruleIDs)
	if err != nil {
		return nil, err
	}
	for i := range rules {
		rules[i].Steps = steps[rules[i].RuleID]
	}
	return rules, nil
}

func (r *PgxRuleRepository) ListActiveRulesByCompany(ctx context.Context, companyID string) ([]domain.ApprovalRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM approval_rules WHERE company_id = $1 AND is_active = TRUE ORDER BY created_at;`
	return r.listRules(ctx, query, companyID)
}

func (r *PgxRuleRepository) ListRulesByCompany(ctx context.Context, companyID string) ([]domain.ApprovalRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM approval_rules WHERE company_id = $1 ORDER BY created_at;`
	return r.listRules(ctx, query, companyID)
}
