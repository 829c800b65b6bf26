package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/internal/validators"
	"github.com/Comraich/sortr-sub001/models"
)

type locationService struct {
	tx        store.Transactor
	locations store.LocationRepository
	boxes     store.BoxRepository
	logger    *logger.Logger
}

func NewLocationService(tx store.Transactor, locations store.LocationRepository, boxes store.BoxRepository, logger *logger.Logger) LocationService {
	return &locationService{
		tx:        tx,
		locations: locations,
		boxes:     boxes,
		logger:    logger,
	}
}

func (s *locationService) Create(ctx context.Context, in models.LocationInput) (models.Location, error) {
	var created models.Location
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		parentID := in.ParentID.Ptr()
		if parentID != nil {
			if _, err := s.locations.GetLocation(ctx, *parentID); err != nil {
				return notFoundOr(err, "location", *parentID)
			}
		}

		var err error
		created, err = s.locations.CreateLocation(ctx, models.Location{
			Name:     strings.TrimSpace(deref(in.Name)),
			ParentID: parentID,
		})
		return s.writeError(err, parentID)
	})
	if err != nil {
		return models.Location{}, err
	}

	return created, nil
}

func (s *locationService) Get(ctx context.Context, id int64) (models.Location, error) {
	l, err := s.locations.GetLocation(ctx, id)
	if err != nil {
		return models.Location{}, notFoundOr(err, "location", id)
	}
	return l, nil
}

func (s *locationService) List(ctx context.Context, page models.Page) (models.ListResponse[models.Location], error) {
	page = page.Normalized()
	locations, total, err := s.locations.ListLocations(ctx, page)
	if err != nil {
		return models.ListResponse[models.Location]{}, err
	}
	return models.NewListResponse(locations, total, page), nil
}

// Tree returns every location arranged by parent with box counts attached.
func (s *locationService) Tree(ctx context.Context) (models.LocationTree, error) {
	locations, err := s.locations.ListAllLocations(ctx)
	if err != nil {
		return models.LocationTree{}, err
	}
	counts, err := s.boxes.CountBoxesByLocation(ctx)
	if err != nil {
		return models.LocationTree{}, err
	}
	return models.BuildLocationTree(locations, counts), nil
}

func (s *locationService) Children(ctx context.Context, id int64) ([]models.Location, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.locations.ListChildLocations(ctx, id)
}

func (s *locationService) Update(ctx context.Context, id int64, in models.LocationInput) (models.Updated[models.Location], error) {
	return s.update(ctx, id, in)
}

func (s *locationService) Replace(ctx context.Context, id int64, in models.LocationInput) (models.Updated[models.Location], error) {
	if !in.ParentID.Set {
		in.ParentID = models.NullID()
	}
	return s.update(ctx, id, in)
}

func (s *locationService) update(ctx context.Context, id int64, in models.LocationInput) (models.Updated[models.Location], error) {
	var result models.Updated[models.Location]

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		before, err := s.locations.GetLocation(ctx, id)
		if err != nil {
			return notFoundOr(err, "location", id)
		}

		after := before
		if in.Name != nil {
			after.Name = strings.TrimSpace(*in.Name)
		}
		if in.ParentID.Set {
			after.ParentID = in.ParentID.Ptr()
			if after.ParentID != nil {
				if err = s.checkParent(ctx, id, *after.ParentID); err != nil {
					return err
				}
			}
		}

		changes := make(models.FieldChanges)
		changes.Add("name", before.Name, after.Name)
		changes.Add("parentId", before.ParentID, after.ParentID)

		if len(changes) > 0 {
			updated, err := s.locations.UpdateLocation(ctx, after)
			if err != nil {
				return s.writeError(err, after.ParentID)
			}
			after = updated
		}

		result = models.Updated[models.Location]{Before: before, After: after, Changes: changes}
		return nil
	})

	return result, err
}

// checkParent rejects a parent that does not exist or that would make id
// its own ancestor. It must run inside the update transaction.
func (s *locationService) checkParent(ctx context.Context, id, parentID int64) error {
	if parentID == id {
		return cycleError()
	}

	// concurrent moves could each pass the check and together form a loop
	if err := s.locations.LockLocationTree(ctx); err != nil {
		return err
	}
	all, err := s.locations.ListAllLocations(ctx)
	if err != nil {
		return err
	}
	parents := make(map[int64]*int64, len(all))
	for _, l := range all {
		parents[l.ID] = l.ParentID
	}

	if _, ok := parents[parentID]; !ok {
		return notFound("location", parentID)
	}

	seen := make(map[int64]bool)
	for cur := &parentID; cur != nil; cur = parents[*cur] {
		if *cur == id {
			return cycleError()
		}
		if seen[*cur] {
			break
		}
		seen[*cur] = true
	}
	return nil
}

func cycleError() error {
	return validators.NewValidationError(models.FieldError{
		Field:   "parentId",
		Rule:    "no_cycle",
		Message: "would make the location its own ancestor",
	})
}

// Delete refuses to remove a location that still holds boxes. Child
// locations become roots.
func (s *locationService) Delete(ctx context.Context, id int64) (models.Location, error) {
	var deleted models.Location

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.locations.GetLocation(ctx, id)
		if err != nil {
			return notFoundOr(err, "location", id)
		}

		_, boxes, err := s.boxes.ListBoxes(ctx, models.BoxFilter{LocationID: &id, Page: models.Page{Limit: 1}})
		if err != nil {
			return err
		}
		if boxes > 0 {
			return ErrLocationHasBoxes
		}

		err = s.locations.DeleteLocation(ctx, id)
		switch {
		case errors.Is(err, store.ErrHasDependents):
			return ErrLocationHasBoxes
		case err != nil:
			return notFoundOr(err, "location", id)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Int64("id", id).Str("func", "*locationService.Delete").Msg("location not deleted")
		return models.Location{}, err
	}

	return deleted, nil
}

func (s *locationService) writeError(err error, parentID *int64) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrAlreadyExists):
		return fmt.Errorf("%w: location", ErrDuplicateName)
	case errors.Is(err, store.ErrReferenceNotFound) && parentID != nil:
		return notFound("location", *parentID)
	case errors.Is(err, store.ErrConstraintViolated):
		return cycleError()
	}
	return err
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
