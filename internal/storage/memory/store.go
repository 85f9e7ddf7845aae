package memory

import (
	"context" // standard Go package for request-scoped context (timeouts, cancellation)
	"sync"    // standard Go package for concurrency primitives like Mutex

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	interfaces "github.com/sheikh-saqib/account-statement-ledger/internal/interfaces" // interface LedgerStore
	"github.com/sheikh-saqib/account-statement-ledger/internal/models"                // domain models: Operation
)

// MemoryLedgerStore is an in-memory implementation of interfaces.LedgerStore.
// It stores operations in memory (slice) and is safe for concurrent use.
type MemoryLedgerStore struct {
	mu         sync.Mutex         // mutex to protect operations slice from concurrent access
	operations []models.Operation // slice that holds all operations, in insertion order
}

// NewMemoryLedgerStore creates and returns a new MemoryLedgerStore instance
func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{
		operations: make([]models.Operation, 0),
	}
}

// Save appends the operation and echoes it back unchanged.
func (m *MemoryLedgerStore) Save(ctx context.Context, operation models.Operation) (models.Operation, error) {
	m.mu.Lock()         // lock the mutex to prevent concurrent writes
	defer m.mu.Unlock() // unlock automatically when function exits

	m.operations = append(m.operations, operation)
	return operation, nil // always succeeds in memory
}

// GetBalance returns the balance left by the latest operation of the account.
// The result is invalid when the account has no operations.
func (m *MemoryLedgerStore) GetBalance(ctx context.Context, accountID uuid.UUID) (decimal.NullDecimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		latest models.Operation
		found  bool
	)
	for _, op := range m.operations {
		if op.AccountID != accountID {
			continue
		}
		// equal dates: the one saved last wins
		if !found || !op.Date.Before(latest.Date) {
			latest = op
			found = true
		}
	}

	if !found {
		return decimal.NullDecimal{}, nil
	}
	return decimal.NewNullDecimal(latest.Balance), nil
}

// GetOperations returns a copy of the account's operations so callers
// can't modify internal state.
func (m *MemoryLedgerStore) GetOperations(ctx context.Context, accountID uuid.UUID) ([]models.Operation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]models.Operation, 0)
	for _, op := range m.operations {
		if op.AccountID == accountID {
			result = append(result, op)
		}
	}
	return result, nil
}

// Compile-time check: ensure MemoryLedgerStore implements LedgerStore interface
var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
