// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"io"

	"github.com/Comraich/sortr-sub001/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator decides whether a failed operation may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// Transactor runs fn inside a database transaction. Repository calls made
// with the context handed to fn take part in it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Pinger reports database reachability for health checks.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByProvider(ctx context.Context, provider models.OAuthProvider, subject string) (models.User, error)
	LinkProvider(ctx context.Context, userID int64, provider models.OAuthProvider, subject string) error
	UsernameExists(ctx context.Context, username string) (bool, error)
	ListUsers(ctx context.Context, page models.Page) ([]models.User, int, error)
	SetAdmin(ctx context.Context, userID int64, isAdmin bool) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type LocationRepository interface {
	CreateLocation(ctx context.Context, location models.Location) (models.Location, error)
	GetLocation(ctx context.Context, id int64) (models.Location, error)
	ListLocations(ctx context.Context, page models.Page) ([]models.Location, int, error)
	ListAllLocations(ctx context.Context) ([]models.Location, error)
	// LockLocationTree serializes parent changes within a transaction.
	LockLocationTree(ctx context.Context) error
	ListChildLocations(ctx context.Context, parentID int64) ([]models.Location, error)
	UpdateLocation(ctx context.Context, location models.Location) (models.Location, error)
	DeleteLocation(ctx context.Context, id int64) error
}

type BoxRepository interface {
	CreateBox(ctx context.Context, box models.Box) (models.Box, error)
	GetBox(ctx context.Context, id int64) (models.Box, error)
	ListBoxes(ctx context.Context, filter models.BoxFilter) ([]models.Box, int, error)
	ListAllBoxes(ctx context.Context) ([]models.Box, error)
	CountBoxesByLocation(ctx context.Context) (map[int64]int, error)
	UpdateBox(ctx context.Context, box models.Box) (models.Box, error)
	// DeleteBox removes the box and detaches its items, returning how many
	// items were orphaned. It must run inside a transaction.
	DeleteBox(ctx context.Context, id int64) (int64, error)
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	CreateItems(ctx context.Context, items []models.Item) ([]models.Item, error)
	GetItem(ctx context.Context, id int64) (models.Item, error)
	ListItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, int, error)
	ListAllItems(ctx context.Context) ([]models.Item, error)
	ListItemsForExport(ctx context.Context) ([]models.ItemExportRow, error)
	UpdateItem(ctx context.Context, item models.Item) (models.Item, error)
	SetItemImage(ctx context.Context, id int64, imagePath, thumbnailPath *string) (models.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category models.Category) (models.Category, error)
	GetCategory(ctx context.Context, id int64) (models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, category models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type ActivityRepository interface {
	CreateActivity(ctx context.Context, activity models.Activity) (models.Activity, error)
	CreateActivities(ctx context.Context, activities []models.Activity) (int64, error)
	ListActivities(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, int, error)
}

type ShareRepository interface {
	CreateShare(ctx context.Context, share models.Share) (models.Share, error)
	GetShare(ctx context.Context, id int64) (models.Share, error)
	ListReceivedShares(ctx context.Context, userID int64, page models.Page) ([]models.Share, int, error)
	ListSentShares(ctx context.Context, userID int64, page models.Page) ([]models.Share, int, error)
	// ListResourceParticipants returns the ids of users a resource was shared
	// with or by.
	ListResourceParticipants(ctx context.Context, ref models.ResourceRef) ([]int64, error)
	DeleteShare(ctx context.Context, id int64) error
}

type NotificationRepository interface {
	CreateNotifications(ctx context.Context, notifications ...models.Notification) error
	ListNotifications(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, id, userID int64) (models.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	GetComment(ctx context.Context, id int64) (models.Comment, error)
	ListComments(ctx context.Context, ref models.ResourceRef, page models.Page) ([]models.Comment, int, error)
	DeleteComment(ctx context.Context, id int64) error
}

// ImageStorage keeps uploaded item images on disk. Names are relative to
// the configured directory.
type ImageStorage interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, names ...string) error
}
