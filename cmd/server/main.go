package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sheikh-saqib/account-statement-ledger/internal/config"
	"github.com/sheikh-saqib/account-statement-ledger/internal/events/kafka"
	"github.com/sheikh-saqib/account-statement-ledger/internal/ledger"
	"github.com/sheikh-saqib/account-statement-ledger/internal/logging"
	"github.com/sheikh-saqib/account-statement-ledger/internal/server"
	"github.com/sheikh-saqib/account-statement-ledger/internal/statement"
	"github.com/sheikh-saqib/account-statement-ledger/internal/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
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

	opts := []ledger.Option{ledger.WithLogger(lg)}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, lg)
		defer publisher.Close()
		opts = append(opts, ledger.WithPublisher(publisher, cfg.KafkaTopic))
	}

	ledgerService := ledger.NewLedger(store, statement.NewGridFormatter(), opts...)

	srv := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           server.NewRouter(server.NewHandler(ledgerService, lg)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, srv, lg); err != nil {
		lg.Error("server failed", zap.Error(err))
		return err
	}
	return nil
}
