package service

import (
	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/internal/validators"
	"github.com/Comraich/sortr-sub001/models"
)

// Services groups the server-side domain services handed to the HTTP layer.
type Services struct {
	AuthService         AuthService
	OAuthService        OAuthService
	LocationService     LocationService
	BoxService          BoxService
	ItemService         ItemService
	CategoryService     CategoryService
	ActivityService     ActivityService
	ShareService        ShareService
	NotificationService NotificationService
	CommentService      CommentService
	UserService         UserService
	TransferService     TransferService
	ImageService        ImageService
	AppInfoService      AppInfoService
}

func NewServices(repos *store.Repositories, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	validator := validators.NewStructValidator()

	appInfo, err := NewAppInfoService(buildInfo, cfg.App, logger)
	if err != nil {
		return nil, err
	}

	activities := NewActivityService(repos.Activities, logger)

	return &Services{
		AuthService:  NewAuthService(repos.Users, cfg.App, logger),
		OAuthService: NewOAuthService(repos.Users, NewProfileFetcher(cfg.OAuth, nil), cfg.App, logger),
		LocationService: NewLocationValidationService(validator).
			Wrap(NewLocationService(repos.Transactor, repos.Locations, repos.Boxes, logger)),
		BoxService: NewBoxValidationService(validator).
			Wrap(NewBoxService(repos.Transactor, repos.Boxes, repos.Locations, logger)),
		ItemService: NewItemValidationService(validator).
			Wrap(NewItemService(repos.Items, repos.Boxes, repos.Images, logger)),
		CategoryService:     NewCategoryService(repos.Categories, logger),
		ActivityService:     activities,
		ShareService:        NewShareService(repos, activities, logger),
		NotificationService: NewNotificationService(repos.Notifications, logger),
		CommentService:      NewCommentService(repos, logger),
		UserService:         NewUserService(repos.Users, logger),
		TransferService:     NewTransferService(repos, activities, validator, cfg.App, logger),
		ImageService:        NewImageService(repos.Items, repos.Images, activities, cfg.Storage.Files, logger),
		AppInfoService:      appInfo,
	}, nil
}
