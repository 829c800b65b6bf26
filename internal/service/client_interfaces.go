package service

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

import (
	"context"

	"github.com/Comraich/sortr-sub001/models"
)

// ClientSession owns the terminal client's sign-in state: the bearer token
// held by the adapter, the sealed copy in the local database and the server
// address override.
type ClientSession interface {
	// Restore loads a previously persisted session and checks it against
	// the server. A missing or unreadable credential is not an error; the
	// result is simply not OK.
	Restore(ctx context.Context) models.Result[models.Session]

	Login(ctx context.Context, creds models.Credentials) models.Result[models.Session]
	Register(ctx context.Context, req models.RegisterRequest) models.Result[models.Session]
	// OAuthSignIn finishes a provider sign-in with the access token the
	// provider returned. Failures always produce a message.
	OAuthSignIn(ctx context.Context, provider models.OAuthProvider, accessToken string) models.Result[models.Session]

	// Logout forgets the session locally.
	Logout(ctx context.Context) models.Result[struct{}]
	// Expire is Logout triggered by a 401; subscribers receive
	// models.SessionExpired.
	Expire(ctx context.Context)

	Current() (models.Session, bool)

	// SetServerURL validates, applies and persists a server address.
	// An empty raw value removes the override.
	SetServerURL(ctx context.Context, raw string) models.Result[string]
	ServerURL() string

	// Subscribe registers for session events. The returned function
	// unsubscribes and closes the channel.
	Subscribe() (<-chan models.SessionEvent, func())
}

// ClientRepository is the data layer of the terminal client. Every call
// returns a models.Result; a 401 from the server ends the session.
type ClientRepository interface {
	ListLocations(ctx context.Context, page models.Page) models.Result[models.ListResponse[models.Location]]
	LocationTree(ctx context.Context) models.Result[models.LocationTree]
	GetLocation(ctx context.Context, id int64) models.Result[models.Location]
	CreateLocation(ctx context.Context, in models.LocationInput) models.Result[models.Location]
	UpdateLocation(ctx context.Context, id int64, in models.LocationInput) models.Result[models.Location]
	DeleteLocation(ctx context.Context, id int64) models.Result[struct{}]

	ListBoxes(ctx context.Context, filter models.BoxFilter) models.Result[models.ListResponse[models.Box]]
	GetBox(ctx context.Context, id int64) models.Result[models.Box]
	CreateBox(ctx context.Context, in models.BoxInput) models.Result[models.Box]
	UpdateBox(ctx context.Context, id int64, in models.BoxInput) models.Result[models.Box]
	DeleteBox(ctx context.Context, id int64) models.Result[struct{}]

	ListItems(ctx context.Context, filter models.ItemFilter) models.Result[models.ListResponse[models.Item]]
	GetItem(ctx context.Context, id int64) models.Result[models.Item]
	CreateItem(ctx context.Context, in models.ItemInput) models.Result[models.Item]
	UpdateItem(ctx context.Context, id int64, in models.ItemInput) models.Result[models.Item]
	DeleteItem(ctx context.Context, id int64) models.Result[struct{}]

	ListCategories(ctx context.Context) models.Result[[]models.Category]

	ListNotifications(ctx context.Context, unreadOnly bool, page models.Page) models.Result[models.ListResponse[models.Notification]]
	UnreadCount(ctx context.Context) models.Result[int]
	MarkNotificationRead(ctx context.Context, id int64) models.Result[models.Notification]

	ListComments(ctx context.Context, ref models.ResourceRef, page models.Page) models.Result[models.ListResponse[models.Comment]]
	CreateComment(ctx context.Context, in models.CommentInput) models.Result[models.Comment]

	// History lists the audit trail of one resource, newest first.
	History(ctx context.Context, ref models.ResourceRef, page models.Page) models.Result[models.ListResponse[models.Activity]]
}
