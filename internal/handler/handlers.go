package handler

import (
	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/handler/grpc"
	"github.com/Comraich/sortr-sub001/internal/handler/http"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/service"
	"github.com/Comraich/sortr-sub001/internal/store"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers creates a transport handler for every configured listen
// address. The gRPC handler only serves health checks, so it needs the
// database pinger rather than the services.
func NewHandlers(services *service.Services, pinger store.Pinger, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(pinger, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
