package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Comraich/sortr-sub001/internal/adapter"
	"github.com/Comraich/sortr-sub001/internal/cache"
	"github.com/Comraich/sortr-sub001/internal/client"
	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/crypto"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/service"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/internal/tui"
	"github.com/Comraich/sortr-sub001/internal/workers"
	"github.com/Comraich/sortr-sub001/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	log, closeLog := logger.NewClientLogger("sortr-client", cfg.App.LogLevel, cfg.Storage.LogFile)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	localStorage, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("create local storage: %w", err)
	}
	defer localStorage.Close()

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		return fmt.Errorf("create server adapter: %w", err)
	}

	sealer, err := crypto.NewSealer(cfg.App.DeviceSecret)
	if err != nil {
		return fmt.Errorf("create credential sealer: %w", err)
	}

	readCache := cache.New(cfg.Cache.TTL)
	services := service.NewClientServices(localStorage, serverAdapter, sealer, readCache, cfg.Adapter.Address, log)
	ui := tui.New(services, cfg.App, buildInfo, log)
	background := workers.New(workers.NewCacheJanitor(readCache, cfg.Cache.JanitorInterval, log))

	if err = client.NewApp(services, ui, background, log).Run(ctx); err != nil {
		log.Err(err).Msg("client run error")
		return err
	}
	return nil
}
