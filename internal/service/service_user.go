package service

import (
	"context"

	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/models"
)

type userService struct {
	users  store.UserRepository
	logger *logger.Logger
}

func NewUserService(users store.UserRepository, logger *logger.Logger) UserService {
	return &userService{users: users, logger: logger}
}

func (s *userService) List(ctx context.Context, page models.Page) (models.ListResponse[models.User], error) {
	page = page.Normalized()
	users, total, err := s.users.ListUsers(ctx, page)
	if err != nil {
		return models.ListResponse[models.User]{}, err
	}
	return models.NewListResponse(users, total, page), nil
}

// SetAdmin grants or revokes admin rights. An admin cannot change their own
// flag, which also keeps at least one admin in place.
func (s *userService) SetAdmin(ctx context.Context, actor models.Identity, id int64, isAdmin bool) (models.User, error) {
	if actor.UserID == id {
		return models.User{}, ErrSelfModification
	}

	user, err := s.users.SetAdmin(ctx, id, isAdmin)
	if err != nil {
		return models.User{}, notFoundOr(err, "user", id)
	}

	logger.FromContext(ctx).Info().
		Int64("actor_id", actor.UserID).
		Int64("user_id", id).
		Bool("is_admin", isAdmin).
		Msg("admin flag changed")
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor models.Identity, id int64) (models.User, error) {
	if actor.UserID == id {
		return models.User{}, ErrSelfModification
	}

	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, notFoundOr(err, "user", id)
	}
	if err = s.users.DeleteUser(ctx, id); err != nil {
		return models.User{}, notFoundOr(err, "user", id)
	}
	return user, nil
}
