package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_LinkedVersionWins(t *testing.T) {
	build := models.NewAppBuildInfo("1.4.0", "2026-10-01", "abc123")

	svc, err := NewAppInfoService(build, config.App{Version: "0.0.1"}, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, build, svc.GetAppVersion(context.Background()))
}

func TestNewAppInfoService_FallsBackToConfiguredVersion(t *testing.T) {
	build := models.NewAppBuildInfo("", "", "")

	svc, err := NewAppInfoService(build, config.App{Version: "2.5.1"}, logger.Nop())

	require.NoError(t, err)
	got := svc.GetAppVersion(context.Background())
	assert.Equal(t, "2.5.1", got.Version)
	assert.Equal(t, "N/A", got.Commit)
}

func TestNewAppInfoService_NoVersionAnywhere_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(models.AppBuildInfo{}, config.App{}, logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}
