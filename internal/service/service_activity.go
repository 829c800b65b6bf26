package service

import (
	"context"
	"fmt"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/internal/utils"
	"github.com/Comraich/sortr-sub001/models"
)

type activityService struct {
	activities store.ActivityRepository
	logger     *logger.Logger
}

func NewActivityService(activities store.ActivityRepository, logger *logger.Logger) ActivityService {
	return &activityService{activities: activities, logger: logger}
}

func (s *activityService) Record(ctx context.Context, activity models.Activity) error {
	activity = withActor(ctx, activity)

	if _, err := s.activities.CreateActivity(ctx, activity); err != nil {
		return fmt.Errorf("error recording %s of %s: %w", activity.Action, activity.EntityType, err)
	}
	return nil
}

func (s *activityService) RecordBulk(ctx context.Context, template models.Activity, entities []models.ActivityEntity) (int64, error) {
	if len(entities) == 0 {
		return 0, nil
	}
	template = withActor(ctx, template)

	rows := make([]models.Activity, 0, len(entities))
	for _, e := range entities {
		a := template
		a.EntityID = e.ID
		a.EntityName = e.Name
		if e.Changes != nil {
			a.Changes = e.Changes
		}
		rows = append(rows, a)
	}

	n, err := s.activities.CreateActivities(ctx, rows)
	if err != nil {
		return 0, fmt.Errorf("error recording %d %s activities: %w", len(rows), template.Action, err)
	}
	return n, nil
}

func (s *activityService) List(ctx context.Context, filter models.ActivityFilter) (models.ListResponse[models.Activity], error) {
	filter.Page = filter.Page.Normalized()
	activities, total, err := s.activities.ListActivities(ctx, filter)
	if err != nil {
		return models.ListResponse[models.Activity]{}, err
	}
	return models.NewListResponse(activities, total, filter.Page), nil
}

// withActor fills the user id and request metadata from ctx when the
// activity does not carry them.
func withActor(ctx context.Context, a models.Activity) models.Activity {
	if a.UserID == nil {
		if userID, ok := utils.GetUserIDFromContext(ctx); ok {
			a.UserID = &userID
		}
	}
	if a.Metadata == (models.ActivityMetadata{}) {
		a.Metadata = utils.GetActivityMetadataFromContext(ctx)
	}
	return a
}

// recordQuietly writes a direct activity row. The primary operation already
// succeeded, so failures are only logged.
func recordQuietly(ctx context.Context, activities ActivityService, a models.Activity) {
	if activities == nil {
		return
	}
	if err := activities.Record(context.WithoutCancel(ctx), a); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "recordQuietly").Msg("activity not recorded")
	}
}

func int64Ref(v int64) *int64 {
	return &v
}
