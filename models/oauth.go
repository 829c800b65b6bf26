package models

import (
	"errors"
	"fmt"
	"strings"
)

// OAuthProvider names an external identity provider accepted by the mobile
// sign-in endpoints.
type OAuthProvider string

const (
	ProviderGoogle    OAuthProvider = "google"
	ProviderGithub    OAuthProvider = "github"
	ProviderMicrosoft OAuthProvider = "microsoft"
)

var ErrUnknownProvider = errors.New("unknown oauth provider")

// ParseOAuthProvider accepts both "google" and the path form "google-mobile".
func ParseOAuthProvider(s string) (OAuthProvider, error) {
	switch p := OAuthProvider(strings.TrimSuffix(strings.ToLower(s), "-mobile")); p {
	case ProviderGoogle, ProviderGithub, ProviderMicrosoft:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
}

// OAuthProfile is what a provider tells us about the token holder.
type OAuthProfile struct {
	Provider OAuthProvider
	// Subject is the provider's stable account id.
	Subject string
	Email   *string
	// Login is a provider username hint (GitHub login, email local part).
	Login string
	Name  string
}
