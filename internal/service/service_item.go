package service

import (
	"context"
	"strings"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/models"
)

const defaultItemQuantity = 1

type itemService struct {
	items  store.ItemRepository
	boxes  store.BoxRepository
	images store.ImageStorage
	logger *logger.Logger
}

func NewItemService(items store.ItemRepository, boxes store.BoxRepository, images store.ImageStorage, logger *logger.Logger) ItemService {
	return &itemService{
		items:  items,
		boxes:  boxes,
		images: images,
		logger: logger,
	}
}

func (s *itemService) Create(ctx context.Context, in models.ItemInput) (models.Item, error) {
	boxID := in.BoxID.Ptr()
	if err := s.requireBox(ctx, boxID); err != nil {
		return models.Item{}, err
	}

	quantity := defaultItemQuantity
	if in.Quantity != nil {
		quantity = *in.Quantity
	}

	item, err := s.items.CreateItem(ctx, models.Item{
		Name:        strings.TrimSpace(deref(in.Name)),
		Description: deref(in.Description),
		Category:    strings.TrimSpace(deref(in.Category)),
		Quantity:    quantity,
		BoxID:       boxID,
	})
	if err != nil {
		return models.Item{}, s.writeError(err, boxID)
	}
	return item, nil
}

func (s *itemService) Get(ctx context.Context, id int64) (models.Item, error) {
	item, err := s.items.GetItem(ctx, id)
	if err != nil {
		return models.Item{}, notFoundOr(err, "item", id)
	}
	return item, nil
}

func (s *itemService) List(ctx context.Context, filter models.ItemFilter) (models.ListResponse[models.Item], error) {
	filter.Page = filter.Page.Normalized()
	filter.Query = strings.TrimSpace(filter.Query)
	items, total, err := s.items.ListItems(ctx, filter)
	if err != nil {
		return models.ListResponse[models.Item]{}, err
	}
	return models.NewListResponse(items, total, filter.Page), nil
}

func (s *itemService) Update(ctx context.Context, id int64, in models.ItemInput) (models.Updated[models.Item], error) {
	return s.update(ctx, id, in)
}

// Replace resets absent fields to their defaults; an absent boxId orphans
// the item.
func (s *itemService) Replace(ctx context.Context, id int64, in models.ItemInput) (models.Updated[models.Item], error) {
	if in.Description == nil {
		in.Description = new(string)
	}
	if in.Category == nil {
		in.Category = new(string)
	}
	if in.Quantity == nil {
		q := defaultItemQuantity
		in.Quantity = &q
	}
	if !in.BoxID.Set {
		in.BoxID = models.NullID()
	}
	return s.update(ctx, id, in)
}

func (s *itemService) update(ctx context.Context, id int64, in models.ItemInput) (models.Updated[models.Item], error) {
	before, err := s.Get(ctx, id)
	if err != nil {
		return models.Updated[models.Item]{}, err
	}

	after := before
	if in.Name != nil {
		after.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		after.Description = *in.Description
	}
	if in.Category != nil {
		after.Category = strings.TrimSpace(*in.Category)
	}
	if in.Quantity != nil {
		after.Quantity = *in.Quantity
	}
	if in.BoxID.Set {
		after.BoxID = in.BoxID.Ptr()
		if err = s.requireBox(ctx, after.BoxID); err != nil {
			return models.Updated[models.Item]{}, err
		}
	}

	changes := make(models.FieldChanges)
	changes.Add("name", before.Name, after.Name)
	changes.Add("description", before.Description, after.Description)
	changes.Add("category", before.Category, after.Category)
	changes.Add("quantity", before.Quantity, after.Quantity)
	changes.Add("boxId", before.BoxID, after.BoxID)

	if len(changes) > 0 {
		updated, err := s.items.UpdateItem(ctx, after)
		if err != nil {
			return models.Updated[models.Item]{}, s.writeError(notFoundOr(err, "item", id), after.BoxID)
		}
		after = updated
	}

	return models.Updated[models.Item]{Before: before, After: after, Changes: changes}, nil
}

// Delete removes the item and then its image files.
func (s *itemService) Delete(ctx context.Context, id int64) (models.Item, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return models.Item{}, err
	}

	if err = s.items.DeleteItem(ctx, id); err != nil {
		return models.Item{}, notFoundOr(err, "item", id)
	}

	if err = s.images.Delete(ctx, deref(item.ImagePath), deref(item.ThumbnailPath)); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Int64("item_id", id).Msg("image files of deleted item left behind")
	}
	return item, nil
}

func (s *itemService) requireBox(ctx context.Context, boxID *int64) error {
	if boxID == nil {
		return nil
	}
	if _, err := s.boxes.GetBox(ctx, *boxID); err != nil {
		return notFoundOr(err, "box", *boxID)
	}
	return nil
}

func (s *itemService) writeError(err error, boxID *int64) error {
	if boxID != nil {
		return referenceOr(err, "box", *boxID)
	}
	return err
}
