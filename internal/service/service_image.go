package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/internal/utils"
	"github.com/Comraich/sortr-sub001/internal/validators"
	"github.com/Comraich/sortr-sub001/models"
)

const (
	DefaultMaxImageBytes = 5 << 20
	thumbnailSize        = 256
	thumbnailQuality     = 80
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type imageService struct {
	items      store.ItemRepository
	files      store.ImageStorage
	activities ActivityService
	fileNames  func(ext string) (string, string)
	maxBytes   int64
	logger     *logger.Logger
}

func NewImageService(items store.ItemRepository, files store.ImageStorage, activities ActivityService, cfg config.Files, logger *logger.Logger) ImageService {
	maxBytes := cfg.MaxImageBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &imageService{
		items:      items,
		files:      files,
		activities: activities,
		fileNames:  utils.ImageFileNames,
		maxBytes:   maxBytes,
		logger:     logger,
	}
}

// Upload stores the image and a thumbnail for the item, replacing previous
// files.
func (s *imageService) Upload(ctx context.Context, itemID int64, r io.Reader) (models.Item, error) {
	log := logger.FromContext(ctx).With().Int64("item_id", itemID).Logger()

	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return models.Item{}, notFoundOr(err, "item", itemID)
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return models.Item{}, fmt.Errorf("error reading upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return models.Item{}, imageError("max", fmt.Sprintf("must be at most %d bytes", s.maxBytes))
	}
	if len(data) == 0 {
		return models.Item{}, imageError("required", "is required")
	}

	ext, ok := imageExtensions[mimetype.Detect(data).String()]
	if !ok {
		return models.Item{}, imageError("image", "must be a JPEG, PNG, GIF or WebP image")
	}

	thumb, err := thumbnail(data)
	if err != nil {
		return models.Item{}, imageError("image", "could not be decoded")
	}

	imageName, thumbName := s.fileNames(ext)

	if err = s.files.Save(ctx, imageName, bytes.NewReader(data)); err != nil {
		return models.Item{}, err
	}
	if err = s.files.Save(ctx, thumbName, bytes.NewReader(thumb)); err != nil {
		s.discard(ctx, imageName)
		return models.Item{}, err
	}

	updated, err := s.items.SetItemImage(ctx, itemID, &imageName, &thumbName)
	if err != nil {
		s.discard(ctx, imageName, thumbName)
		return models.Item{}, notFoundOr(err, "item", itemID)
	}
	s.discard(ctx, deref(item.ImagePath), deref(item.ThumbnailPath))

	log.Debug().Str("image", imageName).Int("bytes", len(data)).Msg("item image stored")
	recordQuietly(ctx, s.activities, models.Activity{
		Action:     models.ActionUploadImage,
		EntityType: models.ResourceItem,
		EntityID:   int64Ref(itemID),
		EntityName: updated.Name,
		Changes:    models.ActivityChanges(map[string]any{"imagePath": imageName}),
	})

	return updated, nil
}

func (s *imageService) Open(ctx context.Context, itemID int64, thumbnail bool) (io.ReadCloser, string, error) {
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, "", notFoundOr(err, "item", itemID)
	}

	name := item.ImagePath
	if thumbnail {
		name = item.ThumbnailPath
	}
	if name == nil {
		return nil, "", ErrNoImage
	}

	rc, err := s.files.Open(ctx, *name)
	if errors.Is(err, store.ErrImageNotFound) {
		return nil, "", fmt.Errorf("%w: %w", ErrNoImage, err)
	}
	if err != nil {
		return nil, "", err
	}

	contentType := mime.TypeByExtension(path.Ext(*name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return rc, contentType, nil
}

func (s *imageService) Delete(ctx context.Context, itemID int64) (models.Item, error) {
	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return models.Item{}, notFoundOr(err, "item", itemID)
	}
	if item.ImagePath == nil {
		return models.Item{}, ErrNoImage
	}

	updated, err := s.items.SetItemImage(ctx, itemID, nil, nil)
	if err != nil {
		return models.Item{}, notFoundOr(err, "item", itemID)
	}
	s.discard(ctx, deref(item.ImagePath), deref(item.ThumbnailPath))

	recordQuietly(ctx, s.activities, models.Activity{
		Action:     models.ActionDeleteImage,
		EntityType: models.ResourceItem,
		EntityID:   int64Ref(itemID),
		EntityName: updated.Name,
		Changes:    models.ActivityChanges(map[string]any{"imagePath": *item.ImagePath}),
	})

	return updated, nil
}

func (s *imageService) discard(ctx context.Context, names ...string) {
	if err := s.files.Delete(ctx, names...); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Strs("files", names).Msg("image files not removed")
	}
}

// thumbnail decodes data and encodes a JPEG that fits in a
// thumbnailSize square, keeping the aspect ratio.
func thumbnail(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, errors.New("empty image")
	}
	if w > thumbnailSize || h > thumbnailSize {
		if w >= h {
			w, h = thumbnailSize, max(1, h*thumbnailSize/w)
		} else {
			w, h = max(1, w*thumbnailSize/h), thumbnailSize
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func imageError(rule, message string) error {
	return validators.NewValidationError(models.FieldError{Field: "image", Rule: rule, Message: message})
}
