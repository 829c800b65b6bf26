package models

import "time"

// User represents an account. A user can log in with a password, with one
// of the OAuth providers, or both; at least one of them must be present.
type User struct {
	// ID is the server-assigned identifier.
	ID int64 `json:"id"`

	// Username is unique across all accounts.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the password. Nil for OAuth-only
	// accounts. Never serialized.
	PasswordHash *string `json:"-"`

	GoogleID    *string `json:"-"`
	GithubID    *string `json:"-"`
	MicrosoftID *string `json:"-"`

	// Email is unique when present.
	Email *string `json:"email,omitempty"`

	// DisplayName is shown in the UI and in notification messages.
	DisplayName string `json:"displayName"`

	IsAdmin bool `json:"isAdmin"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CanLogin reports whether the account has at least one usable credential.
func (u User) CanLogin() bool {
	return u.PasswordHash != nil || u.GoogleID != nil || u.GithubID != nil || u.MicrosoftID != nil
}

// Identity returns the claims carried by the user's bearer token.
func (u User) Identity() Identity {
	return Identity{UserID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}

// Ref returns the activity reference of the account.
func (u User) Ref() ResourceRef {
	return ResourceRef{Kind: ResourceUser, ID: u.ID}
}

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Credentials is the body of POST /api/login.
type Credentials struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=64,alphanumunicode"`
	Password    string  `json:"password" validate:"required,min=6,max=128"`
	Email       *string `json:"email" validate:"omitempty,email,max=254"`
	DisplayName string  `json:"displayName" validate:"omitempty,max=128"`
}

// OAuthMobileRequest is the body of POST /api/auth/{provider}-mobile. Token
// is the access token (or Google id token) obtained by the native SDK.
type OAuthMobileRequest struct {
	Token string `json:"token" validate:"required"`
}

// AuthResponse is returned by every successful authentication.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SetAdminRequest is the body of PATCH /api/users/{id}/admin.
type SetAdminRequest struct {
	IsAdmin *bool `json:"isAdmin" validate:"required"`
}
