package interfaces

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/account-statement-ledger/internal/models"
)

// LedgerStore keeps the operations of every account.
// GetBalance returns an invalid NullDecimal when the account has no operations yet.
// GetOperations returns operations in the order they were saved.
type LedgerStore interface {
	Save(ctx context.Context, operation models.Operation) (models.Operation, error)
	GetBalance(ctx context.Context, accountID uuid.UUID) (decimal.NullDecimal, error)
	GetOperations(ctx context.Context, accountID uuid.UUID) ([]models.Operation, error)
}
