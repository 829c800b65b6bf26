package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/models"
)

const notificationExcerptLength = 80

type commentService struct {
	tx            store.Transactor
	comments      store.CommentRepository
	shares        store.ShareRepository
	notifications store.NotificationRepository
	users         store.UserRepository
	resources     resourceResolver
	logger        *logger.Logger
}

func NewCommentService(repos *store.Repositories, logger *logger.Logger) CommentService {
	return &commentService{
		tx:            repos.Transactor,
		comments:      repos.Comments,
		shares:        repos.Shares,
		notifications: repos.Notifications,
		users:         repos.Users,
		resources:     newResourceResolver(repos),
		logger:        logger,
	}
}

func (s *commentService) List(ctx context.Context, ref models.ResourceRef, page models.Page) (models.ListResponse[models.Comment], error) {
	if _, err := s.resources.resolve(ctx, ref); err != nil {
		return models.ListResponse[models.Comment]{}, err
	}

	page = page.Normalized()
	comments, total, err := s.comments.ListComments(ctx, ref, page)
	if err != nil {
		return models.ListResponse[models.Comment]{}, err
	}
	return models.NewListResponse(comments, total, page), nil
}

// Create stores the comment and notifies, in the same transaction, the users
// mentioned with @username and the other participants of the resource's
// shares. A mentioned user gets only the mention.
func (s *commentService) Create(ctx context.Context, actor models.Identity, in models.CommentInput) (models.Comment, error) {
	name, err := s.resources.resolve(ctx, in.ResourceRef)
	if err != nil {
		return models.Comment{}, err
	}

	var comment models.Comment
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		comment, err = s.comments.CreateComment(ctx, models.Comment{
			UserID:      actor.UserID,
			ResourceRef: in.ResourceRef,
			Body:        strings.TrimSpace(in.Body),
		})
		if err != nil {
			return err
		}

		notifications, err := s.notificationsFor(ctx, actor, in, name)
		if err != nil {
			return err
		}
		return s.notifications.CreateNotifications(ctx, notifications...)
	})
	if err != nil {
		return models.Comment{}, err
	}

	return comment, nil
}

func (s *commentService) notificationsFor(ctx context.Context, actor models.Identity, in models.CommentInput, resourceName string) ([]models.Notification, error) {
	ref := in.ResourceRef
	excerpt := excerpt(in.Body)
	notified := map[int64]bool{actor.UserID: true}
	var out []models.Notification

	for _, username := range in.Mentions() {
		user, err := s.users.FindUserByUsername(ctx, username)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if notified[user.ID] {
			continue
		}
		notified[user.ID] = true
		out = append(out, models.Notification{
			UserID:      user.ID,
			Type:        models.NotificationMention,
			Message:     fmt.Sprintf("%s mentioned you on %s %q: %s", actor.Username, ref.Kind, resourceName, excerpt),
			ResourceRef: &ref,
		})
	}

	participants, err := s.shares.ListResourceParticipants(ctx, ref)
	if err != nil {
		return nil, err
	}
	for _, userID := range participants {
		if notified[userID] {
			continue
		}
		notified[userID] = true
		out = append(out, models.Notification{
			UserID:      userID,
			Type:        models.NotificationComment,
			Message:     fmt.Sprintf("%s commented on %s %q: %s", actor.Username, ref.Kind, resourceName, excerpt),
			ResourceRef: &ref,
		})
	}

	return out, nil
}

// Delete removes a comment. Only its author and admins may do so.
func (s *commentService) Delete(ctx context.Context, actor models.Identity, id int64) (models.Comment, error) {
	comment, err := s.comments.GetComment(ctx, id)
	if err != nil {
		return models.Comment{}, notFoundOr(err, "comment", id)
	}
	if !actor.IsAdmin && comment.UserID != actor.UserID {
		return models.Comment{}, ErrForbidden
	}

	if err = s.comments.DeleteComment(ctx, id); err != nil {
		return models.Comment{}, notFoundOr(err, "comment", id)
	}
	return comment, nil
}

func excerpt(body string) string {
	body = strings.Join(strings.Fields(body), " ")
	runes := []rune(body)
	if len(runes) <= notificationExcerptLength {
		return body
	}
	return string(runes[:notificationExcerptLength-1]) + "…"
}
