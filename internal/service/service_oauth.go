package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/internal/utils"
	"github.com/Comraich/sortr-sub001/models"
	"golang.org/x/oauth2"
)

const (
	providerTimeout     = 10 * time.Second
	maxUsernameAttempts = 50
	minUsernameLength   = 3
	maxUsernameLength   = 64
)

var usernameJunk = regexp.MustCompile(`[^\p{L}\p{N}]+`)

type oauthService struct {
	users   store.UserRepository
	fetcher ProfileFetcher
	tokens  tokenIssuer
	logger  *logger.Logger
}

func NewOAuthService(users store.UserRepository, fetcher ProfileFetcher, cfg config.App, logger *logger.Logger) OAuthService {
	return &oauthService{
		users:   users,
		fetcher: fetcher,
		tokens:  newTokenIssuer(cfg),
		logger:  logger,
	}
}

// SignIn resolves the provider account and signs in the matching user.
// Lookup order: linked provider id, then verified email (linking the
// provider to that account), otherwise a new account is created.
func (s *oauthService) SignIn(ctx context.Context, provider models.OAuthProvider, accessToken string) (models.AuthResponse, error) {
	log := logger.FromContext(ctx).With().Str("provider", string(provider)).Logger()

	profile, err := s.fetcher.FetchProfile(ctx, provider, accessToken)
	if err != nil {
		log.Warn().Err(err).Msg("provider profile lookup failed")
		return models.AuthResponse{}, err
	}

	user, err := s.users.FindUserByProvider(ctx, provider, profile.Subject)
	if err == nil {
		return s.tokens.respond(user)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.AuthResponse{}, fmt.Errorf("user search by provider failed: %w", err)
	}

	if profile.Email != nil {
		user, err = s.users.FindUserByEmail(ctx, *profile.Email)
		switch {
		case err == nil:
			if err = s.users.LinkProvider(ctx, user.ID, provider, profile.Subject); err != nil {
				return models.AuthResponse{}, fmt.Errorf("linking provider failed: %w", err)
			}
			log.Info().Int64("user_id", user.ID).Msg("provider linked to existing account")
			return s.tokens.respond(user)
		case !errors.Is(err, store.ErrNotFound):
			return models.AuthResponse{}, fmt.Errorf("user search by email failed: %w", err)
		}
	}

	username, err := s.freeUsername(ctx, profile)
	if err != nil {
		return models.AuthResponse{}, err
	}

	newUser := models.User{
		Username:    username,
		Email:       profile.Email,
		DisplayName: profile.Name,
	}
	if newUser.DisplayName == "" {
		newUser.DisplayName = username
	}
	setProviderID(&newUser, provider, profile.Subject)

	user, err = s.users.CreateUser(ctx, newUser)
	if err != nil {
		log.Err(err).Str("username", username).Msg("oauth user creation failed")
		return models.AuthResponse{}, fmt.Errorf("oauth user creation failed: %w", err)
	}

	return s.tokens.respond(user)
}

// freeUsername derives a username from the profile and appends a counter
// until it is unused.
func (s *oauthService) freeUsername(ctx context.Context, profile models.OAuthProfile) (string, error) {
	base := usernameBase(profile)

	for i := 1; i <= maxUsernameAttempts; i++ {
		candidate := base
		if i > 1 {
			suffix := strconv.Itoa(i)
			if len(candidate)+len(suffix) > maxUsernameLength {
				candidate = candidate[:maxUsernameLength-len(suffix)]
			}
			candidate += suffix
		}

		exists, err := s.users.UsernameExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("username lookup failed: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: no free username for %q", ErrUsernameTaken, base)
}

func usernameBase(profile models.OAuthProfile) string {
	for _, hint := range []string{profile.Login, emailLocalPart(profile.Email), profile.Name} {
		name := usernameJunk.ReplaceAllString(hint, "")
		if len(name) > maxUsernameLength {
			name = name[:maxUsernameLength]
		}
		if len(name) >= minUsernameLength {
			return strings.ToLower(name)
		}
	}
	return string(profile.Provider) + "user"
}

func emailLocalPart(email *string) string {
	if email == nil {
		return ""
	}
	local, _, _ := strings.Cut(*email, "@")
	return local
}

func setProviderID(user *models.User, provider models.OAuthProvider, subject string) {
	switch provider {
	case models.ProviderGoogle:
		user.GoogleID = &subject
	case models.ProviderGithub:
		user.GithubID = &subject
	case models.ProviderMicrosoft:
		user.MicrosoftID = &subject
	}
}

// oauthProfileClient calls the provider user-info endpoints with the access
// token handed over by the client.
type oauthProfileClient struct {
	endpoints map[models.OAuthProvider]string
	base      *http.Client
}

// NewProfileFetcher returns a ProfileFetcher using the user-info endpoints
// from cfg. base may be nil.
func NewProfileFetcher(cfg config.OAuth, base *http.Client) ProfileFetcher {
	return &oauthProfileClient{
		endpoints: map[models.OAuthProvider]string{
			models.ProviderGoogle:    cfg.GoogleUserInfoURL,
			models.ProviderGithub:    cfg.GithubUserInfoURL,
			models.ProviderMicrosoft: cfg.MicrosoftUserInfoURL,
		},
		base: base,
	}
}

// userInfo covers the fields of the Google OIDC, GitHub and Microsoft Graph
// user documents.
type userInfo struct {
	Sub               string     `json:"sub"`
	ID                flexibleID `json:"id"`
	Email             string     `json:"email"`
	EmailVerified     *bool      `json:"email_verified"`
	Mail              string     `json:"mail"`
	UserPrincipalName string     `json:"userPrincipalName"`
	Login             string     `json:"login"`
	Name              string     `json:"name"`
	DisplayName       string     `json:"displayName"`
}

// flexibleID accepts both numeric (GitHub) and string (Microsoft) ids.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

func (c *oauthProfileClient) FetchProfile(ctx context.Context, provider models.OAuthProvider, accessToken string) (models.OAuthProfile, error) {
	endpoint, ok := c.endpoints[provider]
	if !ok || endpoint == "" {
		return models.OAuthProfile{}, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}

	if c.base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.base)
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	client := utils.NewHTTPClientWith(oauth2.NewClient(ctx, src), providerTimeout)

	var info userInfo
	resp, err := client.R().SetContext(ctx).SetResult(&info).Get(endpoint)
	if err != nil {
		return models.OAuthProfile{}, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	switch {
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return models.OAuthProfile{}, fmt.Errorf("%w: status %d", ErrProviderRejected, resp.StatusCode())
	case resp.IsError():
		return models.OAuthProfile{}, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode())
	}

	profile := info.profile(provider)
	if profile.Subject == "" {
		return models.OAuthProfile{}, fmt.Errorf("%w: no account id in user info", ErrProviderRejected)
	}
	return profile, nil
}

func (u userInfo) profile(provider models.OAuthProvider) models.OAuthProfile {
	p := models.OAuthProfile{Provider: provider}

	var email string
	switch provider {
	case models.ProviderGoogle:
		p.Subject = u.Sub
		p.Name = u.Name
		// unverified Google addresses must not be linked to existing accounts
		if u.EmailVerified == nil || *u.EmailVerified {
			email = u.Email
		}
	case models.ProviderGithub:
		p.Subject = string(u.ID)
		p.Login = u.Login
		p.Name = u.Name
		email = u.Email
	case models.ProviderMicrosoft:
		p.Subject = string(u.ID)
		if p.Subject == "" {
			p.Subject = u.Sub
		}
		p.Name = u.DisplayName
		email = u.Mail
		if email == "" {
			email = u.UserPrincipalName
		}
	}

	p.Email = normalizeEmail(&email)
	return p
}
