package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForgetExpenseDropsKeyedLock(t *testing.T) {
	s := &workflowService{expenseMus: make(map[string]*sync.Mutex)}

	unlock := s.lockExpense("e1")
	unlock()
	assert.Len(t, s.expenseMus, 1)

	s.forgetExpense("e1")
	assert.Empty(t, s.expenseMus)

	// A later caller gets a fresh lock for the same key.
	unlock = s.lockExpense("e1")
	unlock()
	assert.Len(t, s.expenseMus, 1)

	// Forgetting an unknown key is a no-op.
	s.forgetExpense("e2")
	assert.Len(t, s.expenseMus, 1)
}
