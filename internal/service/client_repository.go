package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Comraich/sortr-sub001/internal/adapter"
	"github.com/Comraich/sortr-sub001/internal/cache"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/models"
)

type clientRepository struct {
	adapter adapter.ServerAdapter
	session ClientSession
	cache   *cache.TTLCache

	logger *logger.Logger
}

func NewClientRepository(serverAdapter adapter.ServerAdapter, session ClientSession, readCache *cache.TTLCache, logger *logger.Logger) ClientRepository {
	return &clientRepository{
		adapter: serverAdapter,
		session: session,
		cache:   readCache,
		logger:  logger,
	}
}

// cachedRead serves key from the cache or fetches and stores it.
func cachedRead[T any](ctx context.Context, r *clientRepository, key string, fetch func() (T, error)) models.Result[T] {
	if v, ok := cache.Lookup[T](r.cache, key); ok {
		res := models.Ok(v)
		res.Cached = true
		return res
	}

	v, err := fetch()
	if err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			r.cache.InvalidatePrefix(key)
		}
		return sessionOutcome(ctx, r.session, v, err)
	}

	r.cache.Set(key, v)
	return models.Ok(v)
}

// mutation runs a write and, unless the server was never reached, drops
// the cache families it may have made stale.
func mutation[T any](ctx context.Context, r *clientRepository, families []string, write func() (T, error)) models.Result[T] {
	v, err := write()
	if err == nil || !errors.Is(err, adapter.ErrUnreachable) {
		removed := r.cache.InvalidatePrefix(families...)
		r.logger.Debug().Str("func", "clientRepository.mutation").
			Strs("families", families).
			Int("removed", removed).
			Msg("cache invalidated")
	}
	return sessionOutcome(ctx, r.session, v, err)
}

func noData(err error) (struct{}, error) {
	return struct{}{}, err
}

func pageKey(page models.Page) string {
	page = page.Normalized()
	return fmt.Sprintf("%d:%d", page.Limit, page.Offset)
}

func idKey(family string, id int64) string {
	return fmt.Sprintf("%s%d", family, id)
}

// ── locations ──

func (r *clientRepository) ListLocations(ctx context.Context, page models.Page) models.Result[models.ListResponse[models.Location]] {
	return cachedRead(ctx, r, cache.Locations+"list:"+pageKey(page), func() (models.ListResponse[models.Location], error) {
		return r.adapter.ListLocations(ctx, page)
	})
}

func (r *clientRepository) LocationTree(ctx context.Context) models.Result[models.LocationTree] {
	return cachedRead(ctx, r, cache.Locations+"tree", func() (models.LocationTree, error) {
		return r.adapter.LocationTree(ctx)
	})
}

func (r *clientRepository) GetLocation(ctx context.Context, id int64) models.Result[models.Location] {
	return cachedRead(ctx, r, idKey(cache.Locations, id), func() (models.Location, error) {
		return r.adapter.GetLocation(ctx, id)
	})
}

func (r *clientRepository) CreateLocation(ctx context.Context, in models.LocationInput) models.Result[models.Location] {
	return mutation(ctx, r, []string{cache.Locations}, func() (models.Location, error) {
		return r.adapter.CreateLocation(ctx, in)
	})
}

func (r *clientRepository) UpdateLocation(ctx context.Context, id int64, in models.LocationInput) models.Result[models.Location] {
	return mutation(ctx, r, []string{cache.Locations}, func() (models.Location, error) {
		return r.adapter.UpdateLocation(ctx, id, in)
	})
}

func (r *clientRepository) DeleteLocation(ctx context.Context, id int64) models.Result[struct{}] {
	return mutation(ctx, r, []string{cache.Locations}, func() (struct{}, error) {
		return noData(r.adapter.DeleteLocation(ctx, id))
	})
}

// ── boxes ──
// Box writes also touch locations: the tree carries per-location box counts.

func (r *clientRepository) ListBoxes(ctx context.Context, filter models.BoxFilter) models.Result[models.ListResponse[models.Box]] {
	key := cache.Boxes + "list:" + pageKey(filter.Page)
	if filter.LocationID != nil {
		key += fmt.Sprintf(":loc=%d", *filter.LocationID)
	}
	return cachedRead(ctx, r, key, func() (models.ListResponse[models.Box], error) {
		return r.adapter.ListBoxes(ctx, filter)
	})
}

func (r *clientRepository) GetBox(ctx context.Context, id int64) models.Result[models.Box] {
	return cachedRead(ctx, r, idKey(cache.Boxes, id), func() (models.Box, error) {
		return r.adapter.GetBox(ctx, id)
	})
}

func (r *clientRepository) CreateBox(ctx context.Context, in models.BoxInput) models.Result[models.Box] {
	return mutation(ctx, r, []string{cache.Boxes, cache.Locations}, func() (models.Box, error) {
		return r.adapter.CreateBox(ctx, in)
	})
}

func (r *clientRepository) UpdateBox(ctx context.Context, id int64, in models.BoxInput) models.Result[models.Box] {
	return mutation(ctx, r, []string{cache.Boxes, cache.Locations}, func() (models.Box, error) {
		return r.adapter.UpdateBox(ctx, id, in)
	})
}

// DeleteBox also drops items: the server orphans the box's items.
func (r *clientRepository) DeleteBox(ctx context.Context, id int64) models.Result[struct{}] {
	return mutation(ctx, r, []string{cache.Boxes, cache.Items, cache.Locations}, func() (struct{}, error) {
		return noData(r.adapter.DeleteBox(ctx, id))
	})
}

// ── items ──

func (r *clientRepository) ListItems(ctx context.Context, filter models.ItemFilter) models.Result[models.ListResponse[models.Item]] {
	key := cache.Items + "list:" + pageKey(filter.Page)
	if filter.BoxID != nil {
		key += fmt.Sprintf(":box=%d", *filter.BoxID)
	}
	if filter.Orphaned {
		key += ":orphaned"
	}
	if filter.Category != "" {
		key += ":cat=" + filter.Category
	}
	if filter.Query != "" {
		key += ":q=" + filter.Query
	}
	return cachedRead(ctx, r, key, func() (models.ListResponse[models.Item], error) {
		return r.adapter.ListItems(ctx, filter)
	})
}

func (r *clientRepository) GetItem(ctx context.Context, id int64) models.Result[models.Item] {
	return cachedRead(ctx, r, idKey(cache.Items, id), func() (models.Item, error) {
		return r.adapter.GetItem(ctx, id)
	})
}

func (r *clientRepository) CreateItem(ctx context.Context, in models.ItemInput) models.Result[models.Item] {
	return mutation(ctx, r, []string{cache.Items}, func() (models.Item, error) {
		return r.adapter.CreateItem(ctx, in)
	})
}

func (r *clientRepository) UpdateItem(ctx context.Context, id int64, in models.ItemInput) models.Result[models.Item] {
	return mutation(ctx, r, []string{cache.Items}, func() (models.Item, error) {
		return r.adapter.UpdateItem(ctx, id, in)
	})
}

func (r *clientRepository) DeleteItem(ctx context.Context, id int64) models.Result[struct{}] {
	return mutation(ctx, r, []string{cache.Items}, func() (struct{}, error) {
		return noData(r.adapter.DeleteItem(ctx, id))
	})
}

// ── uncached ──

func (r *clientRepository) ListCategories(ctx context.Context) models.Result[[]models.Category] {
	categories, err := r.adapter.ListCategories(ctx)
	return sessionOutcome(ctx, r.session, categories, err)
}

func (r *clientRepository) ListNotifications(ctx context.Context, unreadOnly bool, page models.Page) models.Result[models.ListResponse[models.Notification]] {
	list, err := r.adapter.ListNotifications(ctx, unreadOnly, page)
	return sessionOutcome(ctx, r.session, list, err)
}

func (r *clientRepository) UnreadCount(ctx context.Context) models.Result[int] {
	count, err := r.adapter.UnreadCount(ctx)
	return sessionOutcome(ctx, r.session, count, err)
}

func (r *clientRepository) MarkNotificationRead(ctx context.Context, id int64) models.Result[models.Notification] {
	n, err := r.adapter.MarkNotificationRead(ctx, id)
	return sessionOutcome(ctx, r.session, n, err)
}

func (r *clientRepository) ListComments(ctx context.Context, ref models.ResourceRef, page models.Page) models.Result[models.ListResponse[models.Comment]] {
	list, err := r.adapter.ListComments(ctx, ref, page)
	return sessionOutcome(ctx, r.session, list, err)
}

func (r *clientRepository) CreateComment(ctx context.Context, in models.CommentInput) models.Result[models.Comment] {
	c, err := r.adapter.CreateComment(ctx, in)
	return sessionOutcome(ctx, r.session, c, err)
}

func (r *clientRepository) History(ctx context.Context, ref models.ResourceRef, page models.Page) models.Result[models.ListResponse[models.Activity]] {
	kind, id := ref.Kind, ref.ID
	list, err := r.adapter.ListActivities(ctx, models.ActivityFilter{EntityType: &kind, EntityID: &id, Page: page})
	return sessionOutcome(ctx, r.session, list, err)
}
