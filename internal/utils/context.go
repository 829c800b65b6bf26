// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and other common operations.
package utils

import (
	"context"

	"github.com/Comraich/sortr-sub001/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey is the key used to store the authenticated caller in the
// context. Use WithIdentity and GetIdentityFromContext rather than reading
// it directly.
var IdentityCtxKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, identity)
}

// GetIdentityFromContext retrieves the authenticated caller from the context.
//
// Returns the identity and an ok flag:
//   - ok == true : value is found and has the correct type
//   - ok == false: value is missing or has an unexpected type
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	return identity, ok
}

// GetUserIDFromContext is a shortcut returning only the caller's user id.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	identity, ok := GetIdentityFromContext(ctx)
	return identity.UserID, ok
}

// ActivityMetadataCtxKey stores the caller's IP and User-Agent for audit rows.
var ActivityMetadataCtxKey = contextKey("activity_metadata")

// WithActivityMetadata returns a copy of ctx carrying meta.
func WithActivityMetadata(ctx context.Context, meta models.ActivityMetadata) context.Context {
	return context.WithValue(ctx, ActivityMetadataCtxKey, meta)
}

// GetActivityMetadataFromContext returns the metadata stored by
// WithActivityMetadata, or the zero value.
func GetActivityMetadataFromContext(ctx context.Context) models.ActivityMetadata {
	meta, _ := ctx.Value(ActivityMetadataCtxKey).(models.ActivityMetadata)
	return meta
}
