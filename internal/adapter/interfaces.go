// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer the terminal client uses to
// talk to the Sortr server.
//
// [ServerAdapter] decouples the client repository from HTTP. Every non-2xx
// response is returned as an [*APIError] that wraps one of the sentinel
// errors in errors.go, so callers can branch with [errors.Is] (e.g.
// [ErrUnauthorized] for 401) and still show the server's message.
package adapter

import (
	"context"

	"github.com/Comraich/sortr-sub001/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the client's view of the Sortr REST API.
type ServerAdapter interface {
	// SetBaseURL points the adapter at another server. The address is
	// normalised; a missing scheme defaults to http.
	SetBaseURL(raw string) error
	BaseURL() string

	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)
	Token() string

	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)
	// OAuthSignIn exchanges an access token obtained from provider for a
	// Sortr session.
	OAuthSignIn(ctx context.Context, provider models.OAuthProvider, accessToken string) (models.AuthResponse, error)
	Me(ctx context.Context) (models.User, error)

	ListLocations(ctx context.Context, page models.Page) (models.ListResponse[models.Location], error)
	LocationTree(ctx context.Context) (models.LocationTree, error)
	GetLocation(ctx context.Context, id int64) (models.Location, error)
	CreateLocation(ctx context.Context, in models.LocationInput) (models.Location, error)
	UpdateLocation(ctx context.Context, id int64, in models.LocationInput) (models.Location, error)
	DeleteLocation(ctx context.Context, id int64) error

	ListBoxes(ctx context.Context, filter models.BoxFilter) (models.ListResponse[models.Box], error)
	GetBox(ctx context.Context, id int64) (models.Box, error)
	CreateBox(ctx context.Context, in models.BoxInput) (models.Box, error)
	UpdateBox(ctx context.Context, id int64, in models.BoxInput) (models.Box, error)
	DeleteBox(ctx context.Context, id int64) error

	ListItems(ctx context.Context, filter models.ItemFilter) (models.ListResponse[models.Item], error)
	GetItem(ctx context.Context, id int64) (models.Item, error)
	CreateItem(ctx context.Context, in models.ItemInput) (models.Item, error)
	UpdateItem(ctx context.Context, id int64, in models.ItemInput) (models.Item, error)
	DeleteItem(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]models.Category, error)

	ListNotifications(ctx context.Context, unreadOnly bool, page models.Page) (models.ListResponse[models.Notification], error)
	UnreadCount(ctx context.Context) (int, error)
	MarkNotificationRead(ctx context.Context, id int64) (models.Notification, error)

	ListComments(ctx context.Context, ref models.ResourceRef, page models.Page) (models.ListResponse[models.Comment], error)
	CreateComment(ctx context.Context, in models.CommentInput) (models.Comment, error)

	ListActivities(ctx context.Context, filter models.ActivityFilter) (models.ListResponse[models.Activity], error)

	Version(ctx context.Context) (models.AppBuildInfo, error)
}
