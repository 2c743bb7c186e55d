package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"alertrecon/internal/api"
	"alertrecon/internal/config"
	"alertrecon/internal/engine"
	"alertrecon/internal/ingest"
	"alertrecon/internal/logging"
	"alertrecon/internal/persist"
	"alertrecon/internal/registry"
	"alertrecon/internal/storage"
)

const version = "0.3.0"

func main() {
	configPath := flag.String("config", "", "path to config file (yaml or json)")
	flag.Parse()

	var mgr *config.Manager
	var err error
	if *configPath != "" {
		mgr, err = config.NewManager(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
	} else {
		mgr = config.NewStaticManager(config.DefaultConfig())
	}
	cfg := mgr.Get()
	logger := logging.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStore(cfg.Storage)
	if err != nil {
		logger.Error("storage init failed", "err", err)
		os.Exit(1)
	}
	if err := store.Init(ctx); err != nil {
		logger.Error("storage init failed", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	eng := engine.New(logger, nil, cfg.Import.Region, cfg.Import.State)
	gateway := persist.NewGateway(store, eng, cfg.Import.IndexFile, logger)
	reg := registry.NewStoreProvider(store, cfg.Import.CasesFile, logger)

	ingest.StartKafka(ctx, mgr, func(ctx context.Context, payload []byte) {
		cases, err := reg.Cases(ctx)
		if err != nil {
			logger.Warn("case snapshot read failed", "err", err)
			return
		}
		index, rerr := eng.Reconcile(string(payload), cases)
		if rerr != nil {
			logger.Warn("snapshot reconcile failed", "err", rerr)
			return
		}
		if serr := gateway.Save(ctx, index, "kafka-snapshot"); serr != nil {
			logger.Warn("snapshot save failed", "err", serr)
			return
		}
		logger.Info("snapshot reconciled", "alerts", index.Summary.Total)
	}, logger)

	api.Start(ctx, mgr, eng, gateway, reg, logger, version)

	logger.Info("alertrecon started", "version", version, "storage", cfg.Storage.Driver)
	<-ctx.Done()
	logger.Info("shutting down")
}
