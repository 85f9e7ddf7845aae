package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Statement is a point-in-time view of an account: its operations, most recent
// first, and the balance left by the most recent one.
type Statement struct {
	AccountID  uuid.UUID
	Date       time.Time
	Operations []Operation
	Balance    decimal.Decimal
}

// NewStatement builds a statement from a snapshot of operations in the order
// they were saved. The slice is copied, the caller's ordering is left alone.
// Operations sharing a date are listed last saved first, the same way the
// stores pick the current balance.
func NewStatement(accountID uuid.UUID, date time.Time, operations []Operation) *Statement {
	s := &Statement{
		AccountID:  accountID,
		Date:       date,
		Operations: make([]Operation, len(operations)),
	}
	for i, op := range operations {
		s.Operations[len(operations)-1-i] = op
	}
	s.updateAccountDetails()
	return s
}

// Add inserts an operation and re-derives the ordering and balance. On a date
// tie the added operation counts as the most recent.
func (s *Statement) Add(op Operation) {
	s.Operations = append([]Operation{op}, s.Operations...)
	s.updateAccountDetails()
}

// updateAccountDetails expects ties already ordered newest first; the stable
// sort keeps them that way.
func (s *Statement) updateAccountDetails() {
	sort.SliceStable(s.Operations, func(i, j int) bool {
		return s.Operations[i].Date.After(s.Operations[j].Date)
	})

	if len(s.Operations) == 0 {
		s.Balance = decimal.Zero
		return
	}
	s.Balance = s.Operations[0].Balance
}
