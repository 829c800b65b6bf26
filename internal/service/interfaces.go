// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=LocationServiceWrapper,BoxServiceWrapper,ItemServiceWrapper

import (
	"context"
	"io"

	"github.com/Comraich/sortr-sub001/models"
)

// AuthService registers users, checks passwords and issues bearer tokens.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)
	ParseToken(ctx context.Context, tokenString string) (models.Identity, error)
	Me(ctx context.Context, userID int64) (models.User, error)
}

// OAuthService signs users in with an access token obtained by a mobile
// client from Google, GitHub or Microsoft.
type OAuthService interface {
	SignIn(ctx context.Context, provider models.OAuthProvider, accessToken string) (models.AuthResponse, error)
}

// ProfileFetcher resolves a provider access token to the account behind it.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, provider models.OAuthProvider, accessToken string) (models.OAuthProfile, error)
}

type LocationService interface {
	Create(ctx context.Context, in models.LocationInput) (models.Location, error)
	Get(ctx context.Context, id int64) (models.Location, error)
	List(ctx context.Context, page models.Page) (models.ListResponse[models.Location], error)
	Tree(ctx context.Context) (models.LocationTree, error)
	Children(ctx context.Context, id int64) ([]models.Location, error)
	// Update applies only the fields present in in.
	Update(ctx context.Context, id int64, in models.LocationInput) (models.Updated[models.Location], error)
	// Replace treats absent optional fields as cleared.
	Replace(ctx context.Context, id int64, in models.LocationInput) (models.Updated[models.Location], error)
	Delete(ctx context.Context, id int64) (models.Location, error)
}

type BoxService interface {
	Create(ctx context.Context, in models.BoxInput) (models.Box, error)
	Get(ctx context.Context, id int64) (models.Box, error)
	List(ctx context.Context, filter models.BoxFilter) (models.ListResponse[models.Box], error)
	Update(ctx context.Context, id int64, in models.BoxInput) (models.Updated[models.Box], error)
	Replace(ctx context.Context, id int64, in models.BoxInput) (models.Updated[models.Box], error)
	// Delete removes the box and orphans its items in one transaction.
	Delete(ctx context.Context, id int64) (models.Box, error)
}

type ItemService interface {
	Create(ctx context.Context, in models.ItemInput) (models.Item, error)
	Get(ctx context.Context, id int64) (models.Item, error)
	List(ctx context.Context, filter models.ItemFilter) (models.ListResponse[models.Item], error)
	Update(ctx context.Context, id int64, in models.ItemInput) (models.Updated[models.Item], error)
	Replace(ctx context.Context, id int64, in models.ItemInput) (models.Updated[models.Item], error)
	Delete(ctx context.Context, id int64) (models.Item, error)
}

type CategoryService interface {
	Create(ctx context.Context, in models.CategoryInput) (models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, id int64, in models.CategoryInput) (models.Category, error)
	Delete(ctx context.Context, id int64) (models.Category, error)
}

// ActivityService writes and reads the audit log.
type ActivityService interface {
	// Record stores one fully formed row. The user and request metadata are
	// taken from ctx when the activity does not carry them.
	Record(ctx context.Context, activity models.Activity) error
	// RecordBulk stores one row per entity, copying everything else from
	// template, in a single statement.
	RecordBulk(ctx context.Context, template models.Activity, entities []models.ActivityEntity) (int64, error)
	List(ctx context.Context, filter models.ActivityFilter) (models.ListResponse[models.Activity], error)
}

type ShareService interface {
	Create(ctx context.Context, actor models.Identity, in models.ShareInput) (models.Share, error)
	ListReceived(ctx context.Context, userID int64, page models.Page) (models.ListResponse[models.Share], error)
	ListSent(ctx context.Context, userID int64, page models.Page) (models.ListResponse[models.Share], error)
	Delete(ctx context.Context, actor models.Identity, id int64) (models.Share, error)
}

type NotificationService interface {
	List(ctx context.Context, filter models.NotificationFilter) (models.ListResponse[models.Notification], error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, userID, id int64) (models.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

type CommentService interface {
	List(ctx context.Context, ref models.ResourceRef, page models.Page) (models.ListResponse[models.Comment], error)
	Create(ctx context.Context, actor models.Identity, in models.CommentInput) (models.Comment, error)
	Delete(ctx context.Context, actor models.Identity, id int64) (models.Comment, error)
}

// UserService is the admin view of accounts.
type UserService interface {
	List(ctx context.Context, page models.Page) (models.ListResponse[models.User], error)
	SetAdmin(ctx context.Context, actor models.Identity, id int64, isAdmin bool) (models.User, error)
	Delete(ctx context.Context, actor models.Identity, id int64) (models.User, error)
}

// TransferService moves inventory in and out as CSV and JSON.
type TransferService interface {
	ExportItemsCSV(ctx context.Context, w io.Writer) error
	PreviewImport(ctx context.Context, r io.Reader) (models.ImportPreview, error)
	Import(ctx context.Context, r io.Reader) (models.ImportResult, error)
	Backup(ctx context.Context) (models.Backup, error)
	Restore(ctx context.Context, backup models.Backup) (models.RestoreResult, error)
}

type ImageService interface {
	Upload(ctx context.Context, itemID int64, r io.Reader) (models.Item, error)
	// Open returns the stored image or its thumbnail and its content type.
	Open(ctx context.Context, itemID int64, thumbnail bool) (io.ReadCloser, string, error)
	Delete(ctx context.Context, itemID int64) (models.Item, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.AppBuildInfo
}

// LocationServiceWrapper decorates a LocationService, e.g. with validation.
type LocationServiceWrapper interface {
	Wrap(LocationService) LocationService
}

type BoxServiceWrapper interface {
	Wrap(BoxService) BoxService
}

type ItemServiceWrapper interface {
	Wrap(ItemService) ItemService
}
