package handler

import (
	"testing"
	"time"

	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConfig returns a config with the given listen addresses and enough
// rate limit settings for the HTTP handler to build its limiter.
func newTestConfig(httpAddr, grpcAddr string) config.StructuredConfig {
	return config.StructuredConfig{
		Server: config.Server{
			HTTPAddress: httpAddr,
			GRPCAddress: grpcAddr,
		},
		RateLimit: config.RateLimit{
			AuthAttempts: 5,
			AuthWindow:   defaultWindow,
		},
	}
}

const defaultWindow = 15 * time.Minute

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name     string
		httpAddr string
		grpcAddr string
		wantHTTP bool
		wantGRPC bool
		wantErr  error
	}{
		{name: "both addresses", httpAddr: ":8080", grpcAddr: ":9090", wantHTTP: true, wantGRPC: true},
		{name: "only HTTP", httpAddr: ":8080", wantHTTP: true},
		{name: "only gRPC", grpcAddr: ":9090", wantGRPC: true},
		{name: "no addresses", wantErr: errNoHandlersAreCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandlers(&service.Services{}, nil, newTestConfig(tt.httpAddr, tt.grpcAddr), logger.Nop())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHTTP, h.HTTP != nil)
			assert.Equal(t, tt.wantGRPC, h.GRPC != nil)
		})
	}
}

// TestNewHandlers_IndependentInstances verifies that two calls to NewHandlers
// produce independent *Handlers instances.
func TestNewHandlers_IndependentInstances(t *testing.T) {
	cfg := newTestConfig(":8080", ":9090")

	h1, err1 := NewHandlers(&service.Services{}, nil, cfg, logger.Nop())
	h2, err2 := NewHandlers(&service.Services{}, nil, cfg, logger.Nop())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, h1, h2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
	assert.NotSame(t, h1.GRPC, h2.GRPC)
}
