package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/logger"
)

func newTestImageStorage(t *testing.T) (ImageStorage, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewImageFileStorage(config.Files{ImageDir: dir}, logger.Nop())
	require.NoError(t, err)
	return s, dir
}

func TestImageFileStorage_SaveOpenDelete(t *testing.T) {
	s, dir := newTestImageStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a.png", strings.NewReader("png-bytes")))

	rc, err := s.Open(ctx, "a.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, s.Delete(ctx, "a.png", "never-existed.png", ""))
	_, err = os.Stat(filepath.Join(dir, "a.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestImageFileStorage_RefusesOverwrite(t *testing.T) {
	s, _ := newTestImageStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a.png", strings.NewReader("one")))
	assert.Error(t, s.Save(ctx, "a.png", strings.NewReader("two")))
}

func TestImageFileStorage_RejectsEscapingNames(t *testing.T) {
	s, _ := newTestImageStorage(t)

	assert.Error(t, s.Save(context.Background(), "../evil.png", strings.NewReader("x")))
}

func TestImageFileStorage_OpenMissing(t *testing.T) {
	s, _ := newTestImageStorage(t)

	_, err := s.Open(context.Background(), "nope.png")
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestImageFileStorage_CancelledSaveLeavesNothing(t *testing.T) {
	s, dir := newTestImageStorage(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, s.Save(ctx, "b.png", strings.NewReader("data")))
	_, err := os.Stat(filepath.Join(dir, "b.png"))
	assert.True(t, os.IsNotExist(err))
}
