package service

import (
	"context"
	"strings"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/models"
)

type boxService struct {
	tx        store.Transactor
	boxes     store.BoxRepository
	locations store.LocationRepository
	logger    *logger.Logger
}

func NewBoxService(tx store.Transactor, boxes store.BoxRepository, locations store.LocationRepository, logger *logger.Logger) BoxService {
	return &boxService{
		tx:        tx,
		boxes:     boxes,
		locations: locations,
		logger:    logger,
	}
}

func (s *boxService) Create(ctx context.Context, in models.BoxInput) (models.Box, error) {
	locationID := deref(in.LocationID)
	if err := s.requireLocation(ctx, locationID); err != nil {
		return models.Box{}, err
	}

	box, err := s.boxes.CreateBox(ctx, models.Box{
		Name:        strings.TrimSpace(deref(in.Name)),
		Description: deref(in.Description),
		LocationID:  locationID,
	})
	if err != nil {
		return models.Box{}, referenceOr(err, "location", locationID)
	}
	return box, nil
}

func (s *boxService) Get(ctx context.Context, id int64) (models.Box, error) {
	box, err := s.boxes.GetBox(ctx, id)
	if err != nil {
		return models.Box{}, notFoundOr(err, "box", id)
	}
	return box, nil
}

func (s *boxService) List(ctx context.Context, filter models.BoxFilter) (models.ListResponse[models.Box], error) {
	filter.Page = filter.Page.Normalized()
	boxes, total, err := s.boxes.ListBoxes(ctx, filter)
	if err != nil {
		return models.ListResponse[models.Box]{}, err
	}
	return models.NewListResponse(boxes, total, filter.Page), nil
}

func (s *boxService) Update(ctx context.Context, id int64, in models.BoxInput) (models.Updated[models.Box], error) {
	return s.update(ctx, id, in)
}

func (s *boxService) Replace(ctx context.Context, id int64, in models.BoxInput) (models.Updated[models.Box], error) {
	if in.Description == nil {
		in.Description = new(string)
	}
	return s.update(ctx, id, in)
}

func (s *boxService) update(ctx context.Context, id int64, in models.BoxInput) (models.Updated[models.Box], error) {
	before, err := s.Get(ctx, id)
	if err != nil {
		return models.Updated[models.Box]{}, err
	}

	after := before
	if in.Name != nil {
		after.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		after.Description = *in.Description
	}
	if in.LocationID != nil && *in.LocationID != before.LocationID {
		if err = s.requireLocation(ctx, *in.LocationID); err != nil {
			return models.Updated[models.Box]{}, err
		}
		after.LocationID = *in.LocationID
	}

	changes := make(models.FieldChanges)
	changes.Add("name", before.Name, after.Name)
	changes.Add("description", before.Description, after.Description)
	changes.Add("locationId", before.LocationID, after.LocationID)

	if len(changes) > 0 {
		updated, err := s.boxes.UpdateBox(ctx, after)
		if err != nil {
			return models.Updated[models.Box]{}, referenceOr(notFoundOr(err, "box", id), "location", after.LocationID)
		}
		after = updated
	}

	return models.Updated[models.Box]{Before: before, After: after, Changes: changes}, nil
}

// Delete removes the box; its items stay behind with no box.
func (s *boxService) Delete(ctx context.Context, id int64) (models.Box, error) {
	var deleted models.Box

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.boxes.GetBox(ctx, id)
		if err != nil {
			return notFoundOr(err, "box", id)
		}

		orphaned, err := s.boxes.DeleteBox(ctx, id)
		if err != nil {
			return notFoundOr(err, "box", id)
		}

		logger.FromContext(ctx).Debug().Int64("box_id", id).Int64("orphaned", orphaned).Msg("box deleted")
		return nil
	})
	if err != nil {
		return models.Box{}, err
	}

	return deleted, nil
}

func (s *boxService) requireLocation(ctx context.Context, id int64) error {
	if _, err := s.locations.GetLocation(ctx, id); err != nil {
		return notFoundOr(err, "location", id)
	}
	return nil
}
