package grpc

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// InventoryService is the health check name of the inventory API. The empty
// name reports the process as a whole.
const InventoryService = "sortr.Inventory"

// pingTimeout bounds a single database probe.
const pingTimeout = 3 * time.Second

// Handler is the root gRPC transport handler.
//
// It serves the standard grpc.health.v1 service. The inventory API is only
// reported SERVING while the database answers pings; see [Handler.Probe].
type Handler struct {
	pinger store.Pinger
	health *health.Server

	serving atomic.Bool
	logger  *logger.Logger
}

// NewHandler constructs a [Handler]. Until the first probe the inventory
// service is reported NOT_SERVING.
func NewHandler(pinger store.Pinger, logger *logger.Logger) *Handler {
	h := &Handler{
		pinger: pinger,
		health: health.NewServer(),
		logger: logger,
	}
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.health.SetServingStatus(InventoryService, healthpb.HealthCheckResponse_NOT_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the handler's services to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Probe pings the database and updates the inventory status. Status
// transitions are logged; steady state is not.
func (h *Handler) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := h.pinger.PingContext(ctx)
	serving := err == nil

	if h.serving.Swap(serving) != serving {
		status, level := healthpb.HealthCheckResponse_NOT_SERVING, zerolog.WarnLevel
		if serving {
			status, level = healthpb.HealthCheckResponse_SERVING, zerolog.InfoLevel
		}
		h.health.SetServingStatus(InventoryService, status)
		h.logger.WithLevel(level).Err(err).
			Str("service", InventoryService).
			Str("status", status.String()).
			Msg("health status changed")
	}

	return err
}

// Shutdown reports every service NOT_SERVING so that load balancers drain
// before the listener closes.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

// UnaryLogger logs every unary call with its duration and status.
func (h *Handler) UnaryLogger() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		level := zerolog.DebugLevel
		if err != nil {
			level = zerolog.WarnLevel
		}
		h.logger.WithLevel(level).
			Str("method", info.FullMethod).
			Dur("duration", time.Since(start)).
			Err(err).
			Msg("gRPC call")

		return resp, err
	}
}
