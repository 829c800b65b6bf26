package store

import (
	"context"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/models"
)

// activityRepository appends to and reads the audit log. Rows are never
// updated or deleted.
type activityRepository struct {
	*DB
	logger *logger.Logger
}

func NewActivityRepository(db *DB, logger *logger.Logger) ActivityRepository {
	return &activityRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *activityRepository) CreateActivity(ctx context.Context, activity models.Activity) (models.Activity, error) {
	query, args, err := buildInsertActivitiesQuery(ctx, activity)
	if err != nil {
		return models.Activity{}, err
	}

	created, err := scanActivity(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Activity{}, translateWriteError(err, nil)
	}
	return created, nil
}

// CreateActivities writes all records with one multi-row INSERT and
// returns the number of rows written.
func (r *activityRepository) CreateActivities(ctx context.Context, activities []models.Activity) (int64, error) {
	query, args, err := buildInsertActivitiesQuery(ctx, activities...)
	if err != nil {
		return 0, err
	}

	created, err := queryList(ctx, r.conn(ctx), query, args, scanActivity)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*activityRepository.CreateActivities").Int("count", len(activities)).Msg("error inserting activities")
		return 0, translateWriteError(err, nil)
	}
	return int64(len(created)), nil
}

// ListActivities returns matching records, newest first.
func (r *activityRepository) ListActivities(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, int, error) {
	where := activityFilterCondition(filter)

	query, args, err := buildSelectQuery(ctx, activitiesTable, activityColumns, where, "created_at DESC, id DESC", &filter.Page)
	if err != nil {
		return nil, 0, err
	}
	activities, err := queryList(ctx, r.conn(ctx), query, args, scanActivity)
	if err != nil {
		return nil, 0, err
	}

	query, args, err = buildCountQuery(ctx, activitiesTable, where)
	if err != nil {
		return nil, 0, err
	}
	total, err := queryCount(ctx, r.conn(ctx), query, args)
	if err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}
