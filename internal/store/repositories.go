package store

import (
	"context"
	"fmt"

	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/logger"
)

// Repositories groups the server-side storage components so they can be
// injected into the service layer as one value.
type Repositories struct {
	Transactor Transactor
	Pinger     Pinger

	Users         UserRepository
	Locations     LocationRepository
	Boxes         BoxRepository
	Items         ItemRepository
	Categories    CategoryRepository
	Activities    ActivityRepository
	Shares        ShareRepository
	Notifications NotificationRepository
	Comments      CommentRepository
	Images        ImageStorage

	db *DB
}

// NewRepositories connects to PostgreSQL, applies migrations and builds
// every repository plus the image storage.
func NewRepositories(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Repositories, error) {
	log.Info().Msg("creating new repositories...")

	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	images, err := NewImageFileStorage(cfg.Files, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	repos := newRepositories(db, log)
	repos.Images = images
	return repos, nil
}

func newRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		Transactor:    db,
		Pinger:        db,
		Users:         NewUserRepository(db, log),
		Locations:     NewLocationRepository(db, log),
		Boxes:         NewBoxRepository(db, log),
		Items:         NewItemRepository(db, log),
		Categories:    NewCategoryRepository(db, log),
		Activities:    NewActivityRepository(db, log),
		Shares:        NewShareRepository(db, log),
		Notifications: NewNotificationRepository(db, log),
		Comments:      NewCommentRepository(db, log),
		db:            db,
	}
}

// Close releases the database pool.
func (r *Repositories) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
