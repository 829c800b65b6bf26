package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/models"
)

type boxRepository struct {
	*DB
	logger *logger.Logger
}

func NewBoxRepository(db *DB, logger *logger.Logger) BoxRepository {
	return &boxRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *boxRepository) CreateBox(ctx context.Context, box models.Box) (models.Box, error) {
	query, args, err := buildInsertBoxQuery(ctx, box)
	if err != nil {
		return models.Box{}, err
	}

	created, err := scanBox(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*boxRepository.CreateBox").Int64("location_id", box.LocationID).Msg("error inserting box")
		return models.Box{}, translateWriteError(err, nil)
	}
	return created, nil
}

func (r *boxRepository) GetBox(ctx context.Context, id int64) (models.Box, error) {
	query, args, err := buildSelectQuery(ctx, boxesTable, boxColumns, sq.Eq{"id": id}, "", nil)
	if err != nil {
		return models.Box{}, err
	}

	box, err := scanBox(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Box{}, translateReadError(err)
	}
	return box, nil
}

func (r *boxRepository) ListBoxes(ctx context.Context, filter models.BoxFilter) ([]models.Box, int, error) {
	where := boxFilterCondition(filter)

	query, args, err := buildSelectQuery(ctx, boxesTable, boxColumns, where, "name, id", &filter.Page)
	if err != nil {
		return nil, 0, err
	}
	boxes, err := queryList(ctx, r.conn(ctx), query, args, scanBox)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*boxRepository.ListBoxes").Msg("error listing boxes")
		return nil, 0, err
	}

	query, args, err = buildCountQuery(ctx, boxesTable, where)
	if err != nil {
		return nil, 0, err
	}
	total, err := queryCount(ctx, r.conn(ctx), query, args)
	if err != nil {
		return nil, 0, err
	}
	return boxes, total, nil
}

func (r *boxRepository) ListAllBoxes(ctx context.Context) ([]models.Box, error) {
	query, args, err := buildSelectQuery(ctx, boxesTable, boxColumns, nil, "id", nil)
	if err != nil {
		return nil, err
	}
	return queryList(ctx, r.conn(ctx), query, args, scanBox)
}

// CountBoxesByLocation returns the number of boxes per location id;
// locations without boxes are absent from the map.
func (r *boxRepository) CountBoxesByLocation(ctx context.Context) (map[int64]int, error) {
	query, args, err := buildCountBoxesByLocationQuery(ctx)
	if err != nil {
		return nil, err
	}

	type locationCount struct {
		locationID int64
		count      int
	}
	counts, err := queryList(ctx, r.conn(ctx), query, args, func(row rowScanner) (locationCount, error) {
		var c locationCount
		err := row.Scan(&c.locationID, &c.count)
		return c, err
	})
	if err != nil {
		return nil, err
	}

	result := make(map[int64]int, len(counts))
	for _, c := range counts {
		result[c.locationID] = c.count
	}
	return result, nil
}

func (r *boxRepository) UpdateBox(ctx context.Context, box models.Box) (models.Box, error) {
	query, args, err := buildUpdateBoxQuery(ctx, box)
	if err != nil {
		return models.Box{}, err
	}

	updated, err := scanBox(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*boxRepository.UpdateBox").Int64("box_id", box.ID).Msg("error updating box")
		return models.Box{}, translateWriteError(err, nil)
	}
	return updated, nil
}

// DeleteBox detaches the box's items before deleting it. Callers run it
// within [DB.WithinTx] so both statements commit together.
func (r *boxRepository) DeleteBox(ctx context.Context, id int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildOrphanItemsQuery(ctx, id)
	if err != nil {
		return 0, err
	}
	orphaned, err := execAffected(ctx, r.conn(ctx), query, args)
	if err != nil {
		log.Err(err).Str("func", "*boxRepository.DeleteBox").Int64("box_id", id).Msg("error detaching items")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	query, args, err = buildDeleteByIDQuery(ctx, boxesTable, id)
	if err != nil {
		return 0, err
	}
	n, err := execAffected(ctx, r.conn(ctx), query, args)
	if err != nil {
		log.Err(err).Str("func", "*boxRepository.DeleteBox").Int64("box_id", id).Msg("error deleting box")
		return 0, translateDeleteError(err)
	}
	if n == 0 {
		return 0, ErrNotFound
	}

	return orphaned, nil
}
