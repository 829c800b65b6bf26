package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/models"
)

type notificationRepository struct {
	*DB
	logger *logger.Logger
}

func NewNotificationRepository(db *DB, logger *logger.Logger) NotificationRepository {
	return &notificationRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *notificationRepository) CreateNotifications(ctx context.Context, notifications ...models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	query, args, err := buildInsertNotificationsQuery(ctx, notifications...)
	if err != nil {
		return err
	}

	if _, err = r.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*notificationRepository.CreateNotifications").Int("count", len(notifications)).Msg("error inserting notifications")
		return translateWriteError(err, nil)
	}
	return nil
}

// ListNotifications returns the user's notifications, newest first.
func (r *notificationRepository) ListNotifications(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error) {
	where := notificationFilterCondition(filter)

	query, args, err := buildSelectQuery(ctx, notificationsTable, notificationColumns, where, "created_at DESC, id DESC", &filter.Page)
	if err != nil {
		return nil, 0, err
	}
	notifications, err := queryList(ctx, r.conn(ctx), query, args, scanNotification)
	if err != nil {
		return nil, 0, err
	}

	query, args, err = buildCountQuery(ctx, notificationsTable, where)
	if err != nil {
		return nil, 0, err
	}
	total, err := queryCount(ctx, r.conn(ctx), query, args)
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int64) (int, error) {
	query, args, err := buildCountQuery(ctx, notificationsTable, sq.Eq{"user_id": userID, "is_read": false})
	if err != nil {
		return 0, err
	}
	return queryCount(ctx, r.conn(ctx), query, args)
}

// MarkRead flags one of the user's notifications as read. Marking an
// already read notification is a no-op that still returns it; a
// notification of another user is reported as [ErrNotFound].
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID int64) (models.Notification, error) {
	query, args, err := buildMarkReadQuery(ctx, id, userID)
	if err != nil {
		return models.Notification{}, err
	}

	notification, err := scanNotification(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.Notification{}, translateWriteError(err, nil)
	}
	return notification, nil
}

// MarkAllRead returns how many notifications changed state.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	query, args, err := buildMarkAllReadQuery(ctx, userID)
	if err != nil {
		return 0, err
	}

	n, err := execAffected(ctx, r.conn(ctx), query, args)
	if err != nil {
		return 0, translateWriteError(err, nil)
	}
	return n, nil
}
