// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/mock"
	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/internal/utils"
	"github.com/Comraich/sortr-sub001/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testAppConfig = config.App{
	TokenSignKey:  "test-secret",
	TokenIssuer:   "sortr-test",
	TokenDuration: time.Hour,
}

func newTestAuthSvc(t *testing.T) (AuthService, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	return NewAuthService(users, testAppConfig, logger.Nop()), users
}

// ── Register ──

func TestAuthService_Register_HashesPasswordAndIssuesToken(t *testing.T) {
	svc, users := newTestAuthSvc(t)
	ctx := context.Background()

	users.EXPECT().CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
			require.NotNil(t, u.PasswordHash)
			assert.NotEqual(t, "hunter22", *u.PasswordHash)
			require.NoError(t, utils.CheckPassword(*u.PasswordHash, "hunter22"))
			assert.Equal(t, "alice", u.DisplayName)
			require.NotNil(t, u.Email)
			assert.Equal(t, "alice@example.com", *u.Email)
			u.ID = 7
			return u, nil
		})

	resp, err := svc.Register(ctx, models.RegisterRequest{
		Username: "alice",
		Password: "hunter22",
		Email:    ptr(" Alice@Example.com "),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.User.ID)

	identity, err := svc.ParseToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{UserID: 7, Username: "alice"}, identity)
}

func TestAuthService_Register_Conflicts(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		want     error
	}{
		{name: "username", storeErr: store.ErrUsernameTaken, want: ErrUsernameTaken},
		{name: "email", storeErr: store.ErrEmailTaken, want: ErrEmailTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users := newTestAuthSvc(t)
			users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, tt.storeErr)

			_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "alice", Password: "hunter22"})

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// ── Login ──

func TestAuthService_Login(t *testing.T) {
	hash, err := utils.HashPassword("hunter22")
	require.NoError(t, err)
	alice := models.User{ID: 7, Username: "alice", PasswordHash: &hash, IsAdmin: true}

	tests := []struct {
		name    string
		user    models.User
		findErr error
		pass    string
		wantErr error
	}{
		{name: "correct password", user: alice, pass: "hunter22"},
		{name: "wrong password", user: alice, pass: "hunter23", wantErr: ErrInvalidCredentials},
		{name: "unknown user", findErr: store.ErrNotFound, pass: "hunter22", wantErr: ErrInvalidCredentials},
		{name: "oauth only account", user: models.User{ID: 8, Username: "alice"}, pass: "hunter22", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users := newTestAuthSvc(t)
			ctx := context.Background()
			users.EXPECT().FindUserByUsername(ctx, "alice").Return(tt.user, tt.findErr)

			resp, err := svc.Login(ctx, models.Credentials{Username: "alice", Password: tt.pass})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			identity, err := svc.ParseToken(ctx, resp.Token)
			require.NoError(t, err)
			assert.True(t, identity.IsAdmin)
		})
	}
}

// ── ParseToken ──

func TestAuthService_ParseToken_Rejects(t *testing.T) {
	svc, _ := newTestAuthSvc(t)
	identity := models.Identity{UserID: 1, Username: "alice"}

	wrongKey, err := utils.GenerateJWTToken(testAppConfig.TokenIssuer, identity, time.Hour, "other-secret")
	require.NoError(t, err)
	expired, err := utils.GenerateJWTToken(testAppConfig.TokenIssuer, identity, -time.Minute, testAppConfig.TokenSignKey)
	require.NoError(t, err)
	wrongIssuer, err := utils.GenerateJWTToken("someone-else", identity, time.Hour, testAppConfig.TokenSignKey)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong secret": wrongKey.SignedString,
		"expired":      expired.SignedString,
		"wrong issuer": wrongIssuer.SignedString,
		"garbage":      "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ParseToken(context.Background(), token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestAuthService_Me_Unknown(t *testing.T) {
	svc, users := newTestAuthSvc(t)
	users.EXPECT().FindUserByID(gomock.Any(), int64(3)).Return(models.User{}, store.ErrNotFound)

	_, err := svc.Me(context.Background(), 3)

	assert.ErrorIs(t, err, ErrNotFound)
}

// ── OAuth SignIn ──

func newTestOAuthSvc(t *testing.T) (OAuthService, *mock.MockUserRepository, *mock.MockProfileFetcher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	fetcher := mock.NewMockProfileFetcher(ctrl)
	return NewOAuthService(users, fetcher, testAppConfig, logger.Nop()), users, fetcher
}

func TestOAuthService_SignIn_LinkedAccount(t *testing.T) {
	svc, users, fetcher := newTestOAuthSvc(t)
	ctx := context.Background()

	fetcher.EXPECT().FetchProfile(ctx, models.ProviderGithub, "tok").
		Return(models.OAuthProfile{Provider: models.ProviderGithub, Subject: "42", Login: "octo"}, nil)
	users.EXPECT().FindUserByProvider(ctx, models.ProviderGithub, "42").Return(models.User{ID: 5, Username: "octo"}, nil)

	resp, err := svc.SignIn(ctx, models.ProviderGithub, "tok")

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.User.ID)
	assert.NotEmpty(t, resp.Token)
}

func TestOAuthService_SignIn_LinksByEmail(t *testing.T) {
	svc, users, fetcher := newTestOAuthSvc(t)
	ctx := context.Background()

	fetcher.EXPECT().FetchProfile(ctx, models.ProviderGoogle, "tok").
		Return(models.OAuthProfile{Provider: models.ProviderGoogle, Subject: "g-1", Email: ptr("alice@example.com")}, nil)

	gomock.InOrder(
		users.EXPECT().FindUserByProvider(ctx, models.ProviderGoogle, "g-1").Return(models.User{}, store.ErrNotFound),
		users.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(models.User{ID: 7, Username: "alice"}, nil),
		users.EXPECT().LinkProvider(ctx, int64(7), models.ProviderGoogle, "g-1").Return(nil),
	)

	resp, err := svc.SignIn(ctx, models.ProviderGoogle, "tok")

	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
}

func TestOAuthService_SignIn_CreatesUserWithFreeUsername(t *testing.T) {
	svc, users, fetcher := newTestOAuthSvc(t)
	ctx := context.Background()

	fetcher.EXPECT().FetchProfile(ctx, models.ProviderMicrosoft, "tok").
		Return(models.OAuthProfile{Provider: models.ProviderMicrosoft, Subject: "ms-9", Name: "Bob Builder"}, nil)
	users.EXPECT().FindUserByProvider(ctx, models.ProviderMicrosoft, "ms-9").Return(models.User{}, store.ErrNotFound)
	users.EXPECT().UsernameExists(ctx, "bobbuilder").Return(true, nil)
	users.EXPECT().UsernameExists(ctx, "bobbuilder2").Return(false, nil)
	users.EXPECT().CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "bobbuilder2", u.Username)
			assert.Equal(t, "Bob Builder", u.DisplayName)
			require.NotNil(t, u.MicrosoftID)
			assert.Equal(t, "ms-9", *u.MicrosoftID)
			assert.Nil(t, u.PasswordHash)
			u.ID = 11
			return u, nil
		})

	resp, err := svc.SignIn(ctx, models.ProviderMicrosoft, "tok")

	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.User.ID)
}

func TestOAuthService_SignIn_ProviderFailureSurfaces(t *testing.T) {
	svc, _, fetcher := newTestOAuthSvc(t)

	fetcher.EXPECT().FetchProfile(gomock.Any(), models.ProviderGoogle, "bad").Return(models.OAuthProfile{}, ErrProviderRejected)

	_, err := svc.SignIn(context.Background(), models.ProviderGoogle, "bad")

	assert.ErrorIs(t, err, ErrProviderRejected)
}

// ── FetchProfile ──

func newUserInfoServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProfileFetcher_Providers(t *testing.T) {
	tests := []struct {
		name     string
		provider models.OAuthProvider
		body     string
		want     models.OAuthProfile
	}{
		{
			name:     "google verified",
			provider: models.ProviderGoogle,
			body:     `{"sub":"g-1","email":"Alice@Example.com","email_verified":true,"name":"Alice"}`,
			want:     models.OAuthProfile{Provider: models.ProviderGoogle, Subject: "g-1", Email: ptr("alice@example.com"), Name: "Alice"},
		},
		{
			name:     "google unverified email dropped",
			provider: models.ProviderGoogle,
			body:     `{"sub":"g-2","email":"eve@example.com","email_verified":false}`,
			want:     models.OAuthProfile{Provider: models.ProviderGoogle, Subject: "g-2"},
		},
		{
			name:     "github numeric id",
			provider: models.ProviderGithub,
			body:     `{"id":583231,"login":"octocat","name":"The Octocat","email":null}`,
			want:     models.OAuthProfile{Provider: models.ProviderGithub, Subject: "583231", Login: "octocat", Name: "The Octocat"},
		},
		{
			name:     "microsoft string id",
			provider: models.ProviderMicrosoft,
			body:     `{"id":"ms-9","displayName":"Bob","mail":null,"userPrincipalName":"bob@contoso.com"}`,
			want:     models.OAuthProfile{Provider: models.ProviderMicrosoft, Subject: "ms-9", Name: "Bob", Email: ptr("bob@contoso.com")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newUserInfoServer(t, http.StatusOK, tt.body)
			fetcher := NewProfileFetcher(config.OAuth{
				GoogleUserInfoURL:    srv.URL,
				GithubUserInfoURL:    srv.URL,
				MicrosoftUserInfoURL: srv.URL,
			}, srv.Client())

			got, err := fetcher.FetchProfile(context.Background(), tt.provider, "tok")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProfileFetcher_Errors(t *testing.T) {
	rejected := newUserInfoServer(t, http.StatusOK, `{}`)
	broken := newUserInfoServer(t, http.StatusBadGateway, `{}`)

	tests := []struct {
		name  string
		url   string
		token string
		want  error
	}{
		{name: "token refused", url: rejected.URL, token: "expired", want: ErrProviderRejected},
		{name: "no subject", url: rejected.URL, token: "tok", want: ErrProviderRejected},
		{name: "provider down", url: broken.URL, token: "tok", want: ErrProviderUnavailable},
		{name: "not configured", url: "", token: "tok", want: ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := NewProfileFetcher(config.OAuth{GithubUserInfoURL: tt.url}, nil)

			_, err := fetcher.FetchProfile(context.Background(), models.ProviderGithub, tt.token)

			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}
