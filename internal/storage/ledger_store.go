package storage

import (
	"go.uber.org/zap"

	"github.com/sheikh-saqib/account-statement-ledger/internal/config"
	interfaces "github.com/sheikh-saqib/account-statement-ledger/internal/interfaces"
	"github.com/sheikh-saqib/account-statement-ledger/internal/storage/memory"
	"github.com/sheikh-saqib/account-statement-ledger/internal/storage/postgres"
)

// NewLedgerStore picks Postgres when a DSN is configured and memory otherwise.
// The returned close func releases whatever the store holds.
func NewLedgerStore(cfg *config.Config, lg *zap.Logger) (interfaces.LedgerStore, func() error, error) {
	if cfg.DatabaseDSN == "" {
		lg.Info("using in-memory ledger store")
		return memory.NewMemoryLedgerStore(), func() error { return nil }, nil
	}

	db, err := postgres.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}

	if err := postgres.RunMigration(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	lg.Info("using postgres ledger store")
	return postgres.NewPostgresLedgerStore(db), db.Close, nil
}
