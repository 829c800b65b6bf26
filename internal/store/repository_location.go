package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/models"
)

type locationRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocationRepository(db *DB, logger *logger.Logger) LocationRepository {
	return &locationRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateLocation inserts a location. A duplicate name maps to
// [ErrAlreadyExists], a missing parent to [ErrReferenceNotFound].
func (r *locationRepository) CreateLocation(ctx context.Context, location models.Location) (models.Location, error) {
	query, args, err := buildInsertLocationQuery(ctx, location)
	if err != nil {
		return models.Location{}, err
	}

	created, err := scanLocation(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*locationRepository.CreateLocation").Str("name", location.Name).Msg("error inserting location")
		return models.Location{}, translateWriteError(err, nil)
	}
	return created, nil
}

func (r *locationRepository) GetLocation(ctx context.Context, id int64) (models.Location, error) {
	query, args, err := buildSelectQuery(ctx, locationsTable, locationColumns, sq.Eq{"id": id}, "", nil)
	if err != nil {
		return models.Location{}, err
	}

	location, err := scanLocation(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Location{}, translateReadError(err)
	}
	return location, nil
}

func (r *locationRepository) ListLocations(ctx context.Context, page models.Page) ([]models.Location, int, error) {
	query, args, err := buildSelectQuery(ctx, locationsTable, locationColumns, nil, "name", &page)
	if err != nil {
		return nil, 0, err
	}
	locations, err := queryList(ctx, r.conn(ctx), query, args, scanLocation)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*locationRepository.ListLocations").Msg("error listing locations")
		return nil, 0, err
	}

	query, args, err = buildCountQuery(ctx, locationsTable, nil)
	if err != nil {
		return nil, 0, err
	}
	total, err := queryCount(ctx, r.conn(ctx), query, args)
	if err != nil {
		return nil, 0, err
	}
	return locations, total, nil
}

// ListAllLocations returns the whole hierarchy, ordered by id so parents
// created earlier come first.
func (r *locationRepository) ListAllLocations(ctx context.Context) ([]models.Location, error) {
	query, args, err := buildSelectQuery(ctx, locationsTable, locationColumns, nil, "id", nil)
	if err != nil {
		return nil, err
	}
	return queryList(ctx, r.conn(ctx), query, args, scanLocation)
}

// LockLocationTree blocks other parent changes until the surrounding
// transaction ends. Outside a transaction the lock is released at once.
func (r *locationRepository) LockLocationTree(ctx context.Context) error {
	query, args, err := buildLockLocationTreeQuery(ctx)
	if err != nil {
		return err
	}
	if _, err = r.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*locationRepository.LockLocationTree").Msg("error locking location tree")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (r *locationRepository) ListChildLocations(ctx context.Context, parentID int64) ([]models.Location, error) {
	query, args, err := buildSelectQuery(ctx, locationsTable, locationColumns, sq.Eq{"parent_id": parentID}, "name", nil)
	if err != nil {
		return nil, err
	}
	return queryList(ctx, r.conn(ctx), query, args, scanLocation)
}

func (r *locationRepository) UpdateLocation(ctx context.Context, location models.Location) (models.Location, error) {
	query, args, err := buildUpdateLocationQuery(ctx, location)
	if err != nil {
		return models.Location{}, err
	}

	updated, err := scanLocation(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*locationRepository.UpdateLocation").Int64("location_id", location.ID).Msg("error updating location")
		return models.Location{}, translateWriteError(err, nil)
	}
	return updated, nil
}

// DeleteLocation removes a location. Boxes reference locations with
// ON DELETE RESTRICT, so a location still holding boxes fails with
// [ErrHasDependents] and nothing changes. Child locations are promoted to
// roots by the parent_id foreign key.
func (r *locationRepository) DeleteLocation(ctx context.Context, id int64) error {
	query, args, err := buildDeleteByIDQuery(ctx, locationsTable, id)
	if err != nil {
		return err
	}

	n, err := execAffected(ctx, r.conn(ctx), query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*locationRepository.DeleteLocation").Int64("location_id", id).Msg("error deleting location")
		return translateDeleteError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
