package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/account-statement-ledger/internal/interfaces"
	"github.com/sheikh-saqib/account-statement-ledger/internal/models"
	"github.com/sheikh-saqib/account-statement-ledger/internal/models/events"
)

// ErrOutOfBalance is returned when a withdrawal would not leave a positive balance.
var ErrOutOfBalance = errors.New("withdrawal would leave the account out of balance")

// ErrNoPrinter is returned by PrintStatement when the ledger was built without a printer.
var ErrNoPrinter = errors.New("ledger has no statement printer")

// OperationsTopic is where recorded operations are published by default.
const OperationsTopic = "ledger.operations"

// Ledger applies deposits and withdrawals on top of a LedgerStore and renders
// account statements.
type Ledger struct {
	store     interfaces.LedgerStore
	formatter interfaces.StatementFormatter
	printer   interfaces.StatementPrinter
	publisher interfaces.EventPublisher
	topic     string
	now       func() time.Time
	lg        *zap.Logger

	muMap map[uuid.UUID]*sync.Mutex // one mutex per account
	mapMu sync.Mutex                // protects muMap itself
}

type Option func(*Ledger)

// WithClock replaces time.Now as the source of operation and statement dates.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithPrinter sets where PrintStatement writes.
func WithPrinter(p interfaces.StatementPrinter) Option {
	return func(l *Ledger) { l.printer = p }
}

func WithLogger(lg *zap.Logger) Option {
	return func(l *Ledger) { l.lg = lg }
}

// WithPublisher emits an OperationRecorded event on topic after every saved operation.
func WithPublisher(p interfaces.EventPublisher, topic string) Option {
	return func(l *Ledger) {
		l.publisher = p
		l.topic = topic
	}
}

func NewLedger(
	store interfaces.LedgerStore,
	formatter interfaces.StatementFormatter,
	opts ...Option,
) *Ledger {
	l := &Ledger{
		store:     store,
		formatter: formatter,
		topic:     OperationsTopic,
		now:       time.Now,
		lg:        zap.NewNop(),
		muMap:     make(map[uuid.UUID]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) getAccountLock(accountID uuid.UUID) *sync.Mutex {
	l.mapMu.Lock()
	defer l.mapMu.Unlock()

	if _, exists := l.muMap[accountID]; !exists {
		l.muMap[accountID] = &sync.Mutex{}
	}
	return l.muMap[accountID]
}

// Deposit adds amount to the account balance and records the operation.
// An account without operations starts from zero.
func (l *Ledger) Deposit(ctx context.Context, accountID uuid.UUID, amount models.Amount) (models.Operation, error) {
	mu := l.getAccountLock(accountID)
	mu.Lock()
	defer mu.Unlock()

	current, err := l.Balance(ctx, accountID)
	if err != nil {
		return models.Operation{}, err
	}

	return l.record(ctx, models.Operation{
		AccountID: accountID,
		Type:      models.Deposit,
		Amount:    amount,
		Date:      l.now(),
		Balance:   current.Add(amount.Value()),
	})
}

// Withdraw takes amount from the account. The resulting balance has to stay
// strictly above zero, so an account can never be emptied.
func (l *Ledger) Withdraw(ctx context.Context, accountID uuid.UUID, amount models.Amount) (models.Operation, error) {
	mu := l.getAccountLock(accountID)
	mu.Lock()
	defer mu.Unlock()

	current, err := l.Balance(ctx, accountID)
	if err != nil {
		return models.Operation{}, err
	}

	newBalance := current.Sub(amount.Value())
	if newBalance.Cmp(decimal.Zero) <= 0 {
		l.lg.Warn("withdrawal rejected",
			zap.Stringer("account_id", accountID),
			zap.Stringer("balance", current),
			zap.Stringer("amount", amount),
		)
		return models.Operation{}, ErrOutOfBalance
	}

	return l.record(ctx, models.Operation{
		AccountID: accountID,
		Type:      models.Withdrawal,
		Amount:    amount,
		Date:      l.now(),
		Balance:   newBalance,
	})
}

// Balance returns the current balance of the account, zero when it has no operations.
func (l *Ledger) Balance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	balance, err := l.store.GetBalance(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ledger: get balance error %w", err)
	}
	if !balance.Valid {
		return decimal.Zero, nil
	}
	return balance.Decimal, nil
}

// Statement builds today's statement for the account.
func (l *Ledger) Statement(ctx context.Context, accountID uuid.UUID) (*models.Statement, error) {
	operations, err := l.store.GetOperations(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("ledger: get operations error %w", err)
	}
	return models.NewStatement(accountID, l.now(), operations), nil
}

// PrintStatement formats today's statement for the account and hands it to
// the ledger's printer.
func (l *Ledger) PrintStatement(ctx context.Context, accountID uuid.UUID) error {
	if l.printer == nil {
		return ErrNoPrinter
	}
	return l.PrintStatementTo(ctx, accountID, l.printer)
}

// PrintStatementTo is PrintStatement with an explicit printer, for callers
// that own the output, like an HTTP response.
func (l *Ledger) PrintStatementTo(ctx context.Context, accountID uuid.UUID, printer interfaces.StatementPrinter) error {
	statement, err := l.Statement(ctx, accountID)
	if err != nil {
		return err
	}

	if err := printer.Print(l.formatter.Format(statement)); err != nil {
		return fmt.Errorf("ledger: print statement error %w", err)
	}
	return nil
}

func (l *Ledger) record(ctx context.Context, op models.Operation) (models.Operation, error) {
	saved, err := l.store.Save(ctx, op)
	if err != nil {
		return models.Operation{}, fmt.Errorf("ledger: save operation error %w", err)
	}

	l.lg.Info("operation recorded",
		zap.Stringer("account_id", saved.AccountID),
		zap.String("type", saved.Type.String()),
		zap.Stringer("amount", saved.Amount),
		zap.Stringer("balance", saved.Balance),
	)
	l.publish(ctx, saved)

	return saved, nil
}

// publish is best effort: the operation is already stored.
func (l *Ledger) publish(ctx context.Context, op models.Operation) {
	if l.publisher == nil {
		return
	}

	event := events.OperationRecorded{
		EventID:    uuid.New(),
		AccountID:  op.AccountID,
		Type:       op.Type.String(),
		Amount:     op.Amount.Value(),
		Balance:    op.Balance,
		OccurredAt: op.Date,
	}
	if err := l.publisher.Publish(ctx, l.topic, op.AccountID.String(), event); err != nil {
		l.lg.Error("publish operation event failed",
			zap.Stringer("account_id", op.AccountID),
			zap.Error(err),
		)
	}
}
