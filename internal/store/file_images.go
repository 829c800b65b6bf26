package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/logger"
)

// imageFileStorage keeps item images as plain files under one directory.
// All access goes through an [os.Root], so names can never escape it.
type imageFileStorage struct {
	root   *os.Root
	logger *logger.Logger
}

// NewImageFileStorage opens (creating if needed) the configured image
// directory.
func NewImageFileStorage(cfg config.Files, logger *logger.Logger) (ImageStorage, error) {
	if err := os.MkdirAll(cfg.ImageDir, 0o750); err != nil {
		return nil, fmt.Errorf("error creating image directory: %w", err)
	}

	root, err := os.OpenRoot(cfg.ImageDir)
	if err != nil {
		return nil, fmt.Errorf("error opening image directory: %w", err)
	}

	logger.Debug().Str("dir", cfg.ImageDir).Msg("image storage ready")
	return &imageFileStorage{root: root, logger: logger}, nil
}

// Save writes r to name. A partially written file is removed.
func (s *imageFileStorage) Save(ctx context.Context, name string, r io.Reader) error {
	f, err := s.root.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return fmt.Errorf("error creating image file: %w", err)
	}

	_, copyErr := io.Copy(f, contextReader{ctx: ctx, r: r})
	closeErr := f.Close()
	if err = errors.Join(copyErr, closeErr); err != nil {
		if rmErr := s.root.Remove(name); rmErr != nil {
			logger.FromContext(ctx).Err(rmErr).Str("func", "*imageFileStorage.Save").Str("name", name).Msg("error removing partial file")
		}
		return fmt.Errorf("error writing image file: %w", err)
	}
	return nil
}

func (s *imageFileStorage) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := s.root.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error opening image file: %w", err)
	}
	return f, nil
}

// Delete removes the named files; missing files are ignored.
func (s *imageFileStorage) Delete(ctx context.Context, names ...string) error {
	var errs []error
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := s.root.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.FromContext(ctx).Err(err).Str("func", "*imageFileStorage.Delete").Str("name", name).Msg("error removing image file")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
