package postgres

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/account-statement-ledger/internal/models"
)

type fakeRow struct {
	accountID uuid.UUID
	opType    string
	amount    string
	balance   string
	date      time.Time
	err       error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*uuid.UUID) = r.accountID
	*dest[1].(*string) = r.opType
	if err := dest[2].(*decimal.Decimal).Scan(r.amount); err != nil {
		return err
	}
	if err := dest[3].(*decimal.Decimal).Scan(r.balance); err != nil {
		return err
	}
	*dest[4].(*time.Time) = r.date
	return nil
}

func TestScanOperation(t *testing.T) {
	id := uuid.New()
	at := time.Date(2022, 10, 25, 15, 30, 0, 0, time.UTC)

	op, err := scanOperation(fakeRow{accountID: id, opType: "WITHDRAWAL", amount: "7000.0000", balance: "2900.0000", date: at})

	require.NoError(t, err)
	assert.Equal(t, id, op.AccountID)
	assert.Equal(t, models.Withdrawal, op.Type)
	assert.True(t, op.Amount.Value().Equal(decimal.NewFromInt(7000)))
	assert.True(t, op.Balance.Equal(decimal.NewFromInt(2900)))
	assert.True(t, op.Date.Equal(at))
}

func TestScanOperation_Rejects(t *testing.T) {
	boom := errors.New("bad row")

	_, err := scanOperation(fakeRow{opType: "TRANSFER", amount: "1", balance: "1"})
	assert.ErrorContains(t, err, "unknown operation type")

	_, err = scanOperation(fakeRow{opType: "DEPOSIT", amount: "-1", balance: "1"})
	assert.ErrorIs(t, err, models.ErrNegativeAmount)

	_, err = scanOperation(fakeRow{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestMigrations_MoneyColumnsKeepFullPrecision(t *testing.T) {
	files, err := fs.Glob(embedMigrations, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	constrained := regexp.MustCompile(`(?i)\bNUMERIC\s*\(`)
	for _, f := range files {
		data, err := fs.ReadFile(embedMigrations, f)
		require.NoError(t, err)
		assert.False(t, constrained.Match(data), "%s declares NUMERIC with precision or scale", f)
	}
}

// Runs against a real database when TEST_DATABASE_DSN is set.
func TestPostgresLedgerStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, RunMigration(db))

	ctx := context.Background()
	store := NewPostgresLedgerStore(db)
	id := uuid.New()
	at := time.Date(2022, 10, 25, 15, 30, 0, 0, time.UTC)

	bal, err := store.GetBalance(ctx, id)
	require.NoError(t, err)
	assert.False(t, bal.Valid)

	for i, b := range []int64{10, 20, 15} {
		opType := models.Deposit
		if i == 2 {
			opType = models.Withdrawal
		}
		saved, err := store.Save(ctx, models.Operation{
			AccountID: id,
			Type:      opType,
			Amount:    models.MustNewAmount(decimal.NewFromInt(10)),
			Date:      at.Add(time.Duration(i) * time.Minute),
			Balance:   decimal.NewFromInt(b),
		})
		require.NoError(t, err)
		assert.Equal(t, opType, saved.Type)
	}

	bal, err = store.GetBalance(ctx, id)
	require.NoError(t, err)
	require.True(t, bal.Valid)
	assert.True(t, bal.Decimal.Equal(decimal.NewFromInt(15)))

	ops, err := store.GetOperations(ctx, id)
	require.NoError(t, err)
	assert.Len(t, ops, 3)
}

func TestPostgresLedgerStore_StoresExactDecimals(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, RunMigration(db))

	store := NewPostgresLedgerStore(db)
	amount := decimal.RequireFromString("0.12345")
	bal := decimal.RequireFromString("123456789012345678.12345")

	saved, err := store.Save(context.Background(), models.Operation{
		AccountID: uuid.New(),
		Type:      models.Deposit,
		Amount:    models.MustNewAmount(amount),
		Date:      time.Date(2022, 10, 25, 15, 30, 0, 0, time.UTC),
		Balance:   bal,
	})

	require.NoError(t, err)
	assert.True(t, saved.Amount.Value().Equal(amount))
	assert.True(t, saved.Balance.Equal(bal))
}
