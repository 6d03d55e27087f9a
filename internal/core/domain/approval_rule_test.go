package domain_test

import (
	"testing"

	"github.com/expenseflow/expense_approval_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApprovalRule_AppliesTo(t *testing.T) {
	tests := []struct {
		name   string
		rule   domain.ApprovalRule
		amount decimal.Decimal
		want   bool
	}{
		{
			name:   "inactive rule never applies",
			rule:   domain.ApprovalRule{IsActive: false},
			amount: decimal.NewFromInt(100),
			want:   false,
		},
		{
			name:   "active rule with no bounds applies to anything",
			rule:   domain.ApprovalRule{IsActive: true},
			amount: decimal.NewFromInt(1),
			want:   true,
		},
		{
			name: "amount below min bound",
			rule: domain.ApprovalRule{
				IsActive:  true,
				MinAmount: decimalPtr(decimal.NewFromInt(500)),
			},
			amount: decimal.NewFromFloat(499.99),
			want:   false,
		},
		{
			name: "amount exactly at min bound",
			rule: domain.ApprovalRule{
				IsActive:  true,
				MinAmount: decimalPtr(decimal.NewFromInt(500)),
			},
			amount: decimal.NewFromInt(500),
			want:   true,
		},
		{
			name: "amount above max bound",
			rule: domain.ApprovalRule{
				IsActive:  true,
				MaxAmount: decimalPtr(decimal.NewFromInt(1000)),
			},
			amount: decimal.NewFromFloat(1000.01),
			want:   false,
		},
		{
			name: "amount exactly at max bound",
			rule: domain.ApprovalRule{
				IsActive:  true,
				MaxAmount: decimalPtr(decimal.NewFromInt(1000)),
			},
			amount: decimal.NewFromInt(1000),
			want:   true,
		},
		{
			name: "amount within both bounds",
			rule: domain.ApprovalRule{
				IsActive:  true,
				MinAmount: decimalPtr(decimal.NewFromInt(100)),
				MaxAmount: decimalPtr(decimal.NewFromInt(1000)),
			},
			amount: decimal.NewFromFloat(250.50),
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rule.AppliesTo(tt.amount)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpenseStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.ExpenseDraft.IsTerminal())
	assert.False(t, domain.ExpensePending.IsTerminal())
	assert.True(t, domain.ExpenseApproved.IsTerminal())
	assert.True(t, domain.ExpenseRejected.IsTerminal())
	assert.True(t, domain.ExpenseCancelled.IsTerminal())
}

// Helper functions
func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
