package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationType tells whether an operation put money in or took it out
type OperationType string

const (
	Deposit    OperationType = "DEPOSIT"
	Withdrawal OperationType = "WITHDRAWAL"
)

func (t OperationType) String() string {
	return string(t)
}

func (t OperationType) Valid() bool {
	return t == Deposit || t == Withdrawal
}

// Operation is one recorded ledger event for an account, together with the
// balance the account had right after it.
type Operation struct {
	AccountID uuid.UUID       `json:"account_id"`
	Type      OperationType   `json:"type"`
	Amount    Amount          `json:"amount"`
	Date      time.Time       `json:"date"`
	Balance   decimal.Decimal `json:"balance"`
}

// Equal reports whether both operations hold the same values field by field.
func (o Operation) Equal(other Operation) bool {
	return o.AccountID == other.AccountID &&
		o.Type == other.Type &&
		o.Amount.Equal(other.Amount) &&
		o.Date.Equal(other.Date) &&
		o.Balance.Equal(other.Balance)
}
