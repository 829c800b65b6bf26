package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/internal/utils"
	"github.com/Comraich/sortr-sub001/models"
)

// tokenIssuer signs bearer tokens for authenticated users. It is shared by
// the password and OAuth sign-in paths.
type tokenIssuer struct {
	signKey  string
	issuer   string
	duration time.Duration
}

func newTokenIssuer(cfg config.App) tokenIssuer {
	return tokenIssuer{signKey: cfg.TokenSignKey, issuer: cfg.TokenIssuer, duration: cfg.TokenDuration}
}

func (t tokenIssuer) respond(user models.User) (models.AuthResponse, error) {
	token, err := utils.GenerateJWTToken(t.issuer, user.Identity(), t.duration, t.signKey)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("error issuing token: %w", err)
	}
	return models.AuthResponse{Token: token.SignedString, User: user}, nil
}

// authService is the concrete implementation of AuthService.
// Passwords are stored as bcrypt hashes; tokens are HS256 JWTs carrying the
// caller identity so that authenticating a request needs no database access.
type authService struct {
	users  store.UserRepository
	tokens tokenIssuer
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to users and populated with
// token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(users store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: newTokenIssuer(cfg),
		logger: logger,
	}
}

// Register creates a password account and signs the new user in.
//
// Returns ErrUsernameTaken or ErrEmailTaken when the unique columns collide.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("password hashing failed")
		return models.AuthResponse{}, err
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = req.Username
	}

	user, err := a.users.CreateUser(ctx, models.User{
		Username:     req.Username,
		PasswordHash: &hash,
		Email:        normalizeEmail(req.Email),
		DisplayName:  displayName,
	})
	switch {
	case errors.Is(err, store.ErrUsernameTaken):
		return models.AuthResponse{}, ErrUsernameTaken
	case errors.Is(err, store.ErrEmailTaken):
		return models.AuthResponse{}, ErrEmailTaken
	case err != nil:
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.AuthResponse{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return a.tokens.respond(user)
}

// Login verifies a username and password. Unknown users, OAuth-only users and
// wrong passwords all yield ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	user, err := a.users.FindUserByUsername(ctx, creds.Username)
	if errors.Is(err, store.ErrNotFound) {
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("username", creds.Username).Msg("user search by username failed")
		return models.AuthResponse{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if user.PasswordHash == nil {
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	if err = utils.CheckPassword(*user.PasswordHash, creds.Password); err != nil {
		if !errors.Is(err, utils.ErrPasswordMismatch) {
			log.Err(err).Int64("id", user.ID).Msg("password check failed")
		}
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	return a.tokens.respond(user)
}

// ParseToken validates a raw bearer token. Any failure (signature, issuer,
// expiry, malformed subject) is reported as ErrInvalidToken.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Identity, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokens.signKey, a.tokens.issuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Identity{}, ErrInvalidToken
	}

	return token.Identity, nil
}

func (a *authService) Me(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.users.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, notFoundOr(err, "user", userID)
	}
	return user, nil
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	e := strings.ToLower(strings.TrimSpace(*email))
	if e == "" {
		return nil
	}
	return &e
}
