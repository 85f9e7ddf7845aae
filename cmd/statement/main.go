// Command statement prints the statement of one account to stdout.
//
//	statement <account-uuid>
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/sheikh-saqib/account-statement-ledger/internal/config"
	"github.com/sheikh-saqib/account-statement-ledger/internal/ledger"
	"github.com/sheikh-saqib/account-statement-ledger/internal/logging"
	"github.com/sheikh-saqib/account-statement-ledger/internal/statement"
	"github.com/sheikh-saqib/account-statement-ledger/internal/storage"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: statement <account-uuid>")
		os.Exit(2)
	}

	accountID, err := uuid.Parse(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid account id %q: %v\n", os.Args[1], err)
		os.Exit(2)
	}

	if err := run(accountID); err != nil {
		log.Fatal(err)
	}
}

func run(accountID uuid.UUID) error {
	cfg, err := config.NewConfig(".env")
	if err != nil {
		return err
	}

	lg, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer lg.Sync()

	store, closeStore, err := storage.NewLedgerStore(cfg, lg)
	if err != nil {
		return err
	}
	defer closeStore()

	l := ledger.NewLedger(store, statement.NewGridFormatter(),
		ledger.WithPrinter(statement.NewWriterPrinter(os.Stdout)),
		ledger.WithLogger(lg),
	)
	return l.PrintStatement(context.Background(), accountID)
}
