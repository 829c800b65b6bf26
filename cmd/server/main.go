package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/handler"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/server"
	"github.com/Comraich/sortr-sub001/internal/service"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/internal/workers"
	"github.com/Comraich/sortr-sub001/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo.String())

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger("sortr-server", cfg.App.LogLevel)
	log.Debug().Str("http", cfg.Server.HTTPAddress).Str("grpc", cfg.Server.GRPCAddress).Msg("received configs")

	repos, err := store.NewRepositories(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating repositories")
	}
	defer repos.Close()

	services, err := service.NewServices(repos, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, repos.Pinger, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	var background []workers.Worker
	if handlers.HTTP != nil {
		if limiter := handlers.HTTP.Limiter(); limiter != nil {
			background = append(background, workers.NewLimiterSweeper(limiter, cfg.Workers.LimiterSweepInterval, log))
		}
	}
	if handlers.GRPC != nil {
		background = append(background, workers.NewHealthProber(handlers.GRPC, cfg.Workers.HealthProbeInterval, log))
	}

	srv, err := server.NewServer(handlers, workers.New(background...), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
