package service

import (
	"context"
	"fmt"

	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/models"
)

// resourceResolver confirms a polymorphic reference points at an existing
// record and returns its display name.
type resourceResolver struct {
	users     store.UserRepository
	locations store.LocationRepository
	boxes     store.BoxRepository
	items     store.ItemRepository
}

func (r resourceResolver) resolve(ctx context.Context, ref models.ResourceRef) (string, error) {
	var (
		name string
		err  error
	)

	switch ref.Kind {
	case models.ResourceLocation:
		var l models.Location
		l, err = r.locations.GetLocation(ctx, ref.ID)
		name = l.Name
	case models.ResourceBox:
		var b models.Box
		b, err = r.boxes.GetBox(ctx, ref.ID)
		name = b.Name
	case models.ResourceItem:
		var i models.Item
		i, err = r.items.GetItem(ctx, ref.ID)
		name = i.Name
	case models.ResourceUser:
		var u models.User
		u, err = r.users.FindUserByID(ctx, ref.ID)
		name = u.Username
	default:
		return "", fmt.Errorf("%w: %q", models.ErrUnknownResourceKind, ref.Kind)
	}

	if err != nil {
		return "", notFoundOr(err, string(ref.Kind), ref.ID)
	}
	return name, nil
}
