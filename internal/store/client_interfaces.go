package store

import (
	"context"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// CredentialRepository persists the sealed session credential of the
// terminal client. There is at most one.
type CredentialRepository interface {
	SaveCredential(ctx context.Context, sealed []byte) error
	LoadCredential(ctx context.Context) ([]byte, error)
	ClearCredential(ctx context.Context) error
}

// SettingsRepository is a small key/value table for client preferences
// such as the server base URL override.
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error
}
