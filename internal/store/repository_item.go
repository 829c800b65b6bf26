package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/models"
)

type itemRepository struct {
	*DB
	logger *logger.Logger
}

func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	return &itemRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *itemRepository) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	items, err := r.CreateItems(ctx, []models.Item{item})
	if err != nil {
		return models.Item{}, err
	}
	return items[0], nil
}

// CreateItems inserts all items with a single multi-row statement and
// returns them in insertion order.
func (r *itemRepository) CreateItems(ctx context.Context, items []models.Item) ([]models.Item, error) {
	query, args, err := buildInsertItemsQuery(ctx, items...)
	if err != nil {
		return nil, err
	}

	created, err := queryList(ctx, r.conn(ctx), query, args, scanItem)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*itemRepository.CreateItems").Int("count", len(items)).Msg("error inserting items")
		return nil, translateWriteError(err, nil)
	}
	if len(created) != len(items) {
		return nil, fmt.Errorf("%w: inserted %d of %d items", ErrExecutingStatement, len(created), len(items))
	}
	return created, nil
}

func (r *itemRepository) GetItem(ctx context.Context, id int64) (models.Item, error) {
	query, args, err := buildSelectQuery(ctx, itemsTable, itemColumns, sq.Eq{"id": id}, "", nil)
	if err != nil {
		return models.Item{}, err
	}

	item, err := scanItem(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Item{}, translateReadError(err)
	}
	return item, nil
}

func (r *itemRepository) ListItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, int, error) {
	where := itemFilterCondition(filter)

	query, args, err := buildSelectQuery(ctx, itemsTable, itemColumns, where, "name, id", &filter.Page)
	if err != nil {
		return nil, 0, err
	}
	items, err := queryList(ctx, r.conn(ctx), query, args, scanItem)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*itemRepository.ListItems").Msg("error listing items")
		return nil, 0, err
	}

	query, args, err = buildCountQuery(ctx, itemsTable, where)
	if err != nil {
		return nil, 0, err
	}
	total, err := queryCount(ctx, r.conn(ctx), query, args)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *itemRepository) ListAllItems(ctx context.Context) ([]models.Item, error) {
	query, args, err := buildSelectQuery(ctx, itemsTable, itemColumns, nil, "id", nil)
	if err != nil {
		return nil, err
	}
	return queryList(ctx, r.conn(ctx), query, args, scanItem)
}

// ListItemsForExport returns every item joined with its box and location
// names.
func (r *itemRepository) ListItemsForExport(ctx context.Context) ([]models.ItemExportRow, error) {
	query, args, err := buildExportItemsQuery(ctx)
	if err != nil {
		return nil, err
	}
	return queryList(ctx, r.conn(ctx), query, args, scanItemExportRow)
}

func (r *itemRepository) UpdateItem(ctx context.Context, item models.Item) (models.Item, error) {
	query, args, err := buildUpdateItemQuery(ctx, item)
	if err != nil {
		return models.Item{}, err
	}

	updated, err := scanItem(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*itemRepository.UpdateItem").Int64("item_id", item.ID).Msg("error updating item")
		return models.Item{}, translateWriteError(err, nil)
	}
	return updated, nil
}

// SetItemImage stores (or with nil paths clears) the image file names.
func (r *itemRepository) SetItemImage(ctx context.Context, id int64, imagePath, thumbnailPath *string) (models.Item, error) {
	query, args, err := buildSetItemImageQuery(ctx, id, imagePath, thumbnailPath)
	if err != nil {
		return models.Item{}, err
	}

	updated, err := scanItem(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Item{}, translateWriteError(err, nil)
	}
	return updated, nil
}

func (r *itemRepository) DeleteItem(ctx context.Context, id int64) error {
	query, args, err := buildDeleteByIDQuery(ctx, itemsTable, id)
	if err != nil {
		return err
	}

	n, err := execAffected(ctx, r.conn(ctx), query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*itemRepository.DeleteItem").Int64("item_id", id).Msg("error deleting item")
		return translateDeleteError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
