package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	interfaces "github.com/sheikh-saqib/account-statement-ledger/internal/interfaces" // interface LedgerStore
	"github.com/sheikh-saqib/account-statement-ledger/internal/models"
)

type PostgresLedgerStore struct {
	db *sql.DB
}

func NewPostgresLedgerStore(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{
		db: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOperation(row rowScanner) (models.Operation, error) {
	var (
		op     models.Operation
		opType string
		amount decimal.Decimal
	)
	if err := row.Scan(&op.AccountID, &opType, &amount, &op.Balance, &op.Date); err != nil {
		return models.Operation{}, err
	}

	op.Type = models.OperationType(opType)
	if !op.Type.Valid() {
		return models.Operation{}, fmt.Errorf("unknown operation type %q", opType)
	}

	a, err := models.NewAmount(amount)
	if err != nil {
		return models.Operation{}, err
	}
	op.Amount = a
	return op, nil
}

// Save inserts the operation and returns the row as stored.
func (p *PostgresLedgerStore) Save(ctx context.Context, operation models.Operation) (models.Operation, error) {
	const query = `INSERT INTO operations (account_id, type, amount, balance, created_at)
	VALUES ($1,$2,$3,$4,$5)
	RETURNING account_id, type, amount, balance, created_at`

	row := p.db.QueryRowContext(ctx, query,
		operation.AccountID,
		operation.Type.String(),
		operation.Amount.Value(),
		operation.Balance,
		operation.Date,
	)

	saved, err := scanOperation(row)
	if err != nil {
		return models.Operation{}, fmt.Errorf("postgres: save operation error %w", err)
	}
	return saved, nil
}

func (p *PostgresLedgerStore) GetBalance(ctx context.Context, accountID uuid.UUID) (decimal.NullDecimal, error) {
	const query = `SELECT balance FROM operations
	WHERE account_id = $1
	ORDER BY created_at DESC, id DESC
	LIMIT 1`

	var balance decimal.NullDecimal
	err := p.db.QueryRowContext(ctx, query, accountID).Scan(&balance)

	if errors.Is(err, sql.ErrNoRows) {
		return decimal.NullDecimal{}, nil
	}
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("postgres: get balance error %w", err)
	}
	return balance, nil
}

func (p *PostgresLedgerStore) GetOperations(ctx context.Context, accountID uuid.UUID) ([]models.Operation, error) {
	const query = `SELECT account_id, type, amount, balance, created_at FROM operations
	WHERE account_id = $1
	ORDER BY id`

	rows, err := p.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("postgres: get operations error %w", err)
	}

	defer rows.Close()

	operations := make([]models.Operation, 0)
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan operation error %w", err)
		}
		operations = append(operations, op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: get operations error %w", err)
	}
	return operations, nil
}

var _ interfaces.LedgerStore = (*PostgresLedgerStore)(nil)
