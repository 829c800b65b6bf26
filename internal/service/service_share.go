package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/internal/validators"
	"github.com/Comraich/sortr-sub001/models"
)

type shareService struct {
	tx            store.Transactor
	shares        store.ShareRepository
	notifications store.NotificationRepository
	users         store.UserRepository
	resources     resourceResolver
	activities    ActivityService
	logger        *logger.Logger
}

func NewShareService(repos *store.Repositories, activities ActivityService, logger *logger.Logger) ShareService {
	return &shareService{
		tx:            repos.Transactor,
		shares:        repos.Shares,
		notifications: repos.Notifications,
		users:         repos.Users,
		resources:     newResourceResolver(repos),
		activities:    activities,
		logger:        logger,
	}
}

// Create shares a resource with another user, notifies the recipient and
// records the share in the activity log.
func (s *shareService) Create(ctx context.Context, actor models.Identity, in models.ShareInput) (models.Share, error) {
	recipient, err := s.users.FindUserByUsername(ctx, in.Username)
	if errors.Is(err, store.ErrNotFound) {
		return models.Share{}, &NotFoundError{Kind: "user", Name: in.Username}
	}
	if err != nil {
		return models.Share{}, err
	}
	if recipient.ID == actor.UserID {
		return models.Share{}, validators.NewValidationError(models.FieldError{
			Field:   "username",
			Rule:    "not_self",
			Message: "cannot share with yourself",
		})
	}

	name, err := s.resources.resolve(ctx, in.ResourceRef)
	if err != nil {
		return models.Share{}, err
	}

	permission := in.Permission
	if permission == "" {
		permission = models.PermissionView
	}

	var share models.Share
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		share, err = s.shares.CreateShare(ctx, models.Share{
			UserID:         recipient.ID,
			SharedByUserID: actor.UserID,
			ResourceRef:    in.ResourceRef,
			Permission:     permission,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrAlreadyShared
		}
		if err != nil {
			return err
		}

		ref := in.ResourceRef
		return s.notifications.CreateNotifications(ctx, models.Notification{
			UserID:      recipient.ID,
			Type:        models.NotificationShare,
			Message:     fmt.Sprintf("%s shared %s %q with you (%s)", actor.Username, ref.Kind, name, permission),
			ResourceRef: &ref,
		})
	})
	if err != nil {
		return models.Share{}, err
	}

	recordQuietly(ctx, s.activities, models.Activity{
		UserID:     int64Ref(actor.UserID),
		Action:     models.ActionUpdate,
		EntityType: in.Kind,
		EntityID:   int64Ref(in.ID),
		EntityName: name,
		Changes: models.ActivityChanges(map[string]any{
			"sharedWith": recipient.Username,
			"permission": permission,
		}),
	})

	return share, nil
}

func (s *shareService) ListReceived(ctx context.Context, userID int64, page models.Page) (models.ListResponse[models.Share], error) {
	page = page.Normalized()
	shares, total, err := s.shares.ListReceivedShares(ctx, userID, page)
	if err != nil {
		return models.ListResponse[models.Share]{}, err
	}
	return models.NewListResponse(shares, total, page), nil
}

func (s *shareService) ListSent(ctx context.Context, userID int64, page models.Page) (models.ListResponse[models.Share], error) {
	page = page.Normalized()
	shares, total, err := s.shares.ListSentShares(ctx, userID, page)
	if err != nil {
		return models.ListResponse[models.Share]{}, err
	}
	return models.NewListResponse(shares, total, page), nil
}

// Delete revokes a share. Only its two parties and admins may do so.
func (s *shareService) Delete(ctx context.Context, actor models.Identity, id int64) (models.Share, error) {
	share, err := s.shares.GetShare(ctx, id)
	if err != nil {
		return models.Share{}, notFoundOr(err, "share", id)
	}

	if !actor.IsAdmin && actor.UserID != share.UserID && actor.UserID != share.SharedByUserID {
		return models.Share{}, ErrForbidden
	}

	if err = s.shares.DeleteShare(ctx, id); err != nil {
		return models.Share{}, notFoundOr(err, "share", id)
	}
	return share, nil
}

func newResourceResolver(repos *store.Repositories) resourceResolver {
	return resourceResolver{
		users:     repos.Users,
		locations: repos.Locations,
		boxes:     repos.Boxes,
		items:     repos.Items,
	}
}
