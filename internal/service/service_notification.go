package service

import (
	"context"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/models"
)

type notificationService struct {
	notifications store.NotificationRepository
	logger        *logger.Logger
}

func NewNotificationService(notifications store.NotificationRepository, logger *logger.Logger) NotificationService {
	return &notificationService{notifications: notifications, logger: logger}
}

func (s *notificationService) List(ctx context.Context, filter models.NotificationFilter) (models.ListResponse[models.Notification], error) {
	filter.Page = filter.Page.Normalized()
	notifications, total, err := s.notifications.ListNotifications(ctx, filter)
	if err != nil {
		return models.ListResponse[models.Notification]{}, err
	}
	return models.NewListResponse(notifications, total, filter.Page), nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.notifications.CountUnread(ctx, userID)
}

// MarkRead flags one of the user's notifications as read. Notifications of
// other users are reported as missing.
func (s *notificationService) MarkRead(ctx context.Context, userID, id int64) (models.Notification, error) {
	n, err := s.notifications.MarkRead(ctx, id, userID)
	if err != nil {
		return models.Notification{}, notFoundOr(err, "notification", id)
	}
	return n, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}
