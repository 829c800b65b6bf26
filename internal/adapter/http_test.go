// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(config.ClientAdapter{Address: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── auth ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, models.Credentials{Username: "alice", Password: "secret1"}, creds)

		writeJSON(t, w, http.StatusOK, models.AuthResponse{Token: "tok", User: models.User{ID: 1, Username: "alice"}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Login(context.Background(), models.Credentials{Username: "alice", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, int64(1), got.User.ID)
}

func TestLogin_ErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     error
		wantMessage string
	}{
		{
			name:        "server message",
			status:      http.StatusUnauthorized,
			body:        `{"error":"invalid username or password","code":"Unauthenticated"}`,
			wantErr:     ErrUnauthorized,
			wantMessage: "invalid username or password",
		},
		{
			name:        "message field",
			status:      http.StatusBadRequest,
			body:        `{"message":"Name is required"}`,
			wantErr:     ErrBadRequest,
			wantMessage: "Name is required",
		},
		{
			name:        "html from a proxy",
			status:      http.StatusBadGateway,
			body:        `<html>bad gateway</html>`,
			wantErr:     ErrInternalServerError,
			wantMessage: "The server failed to process the request. Please try again later.",
		},
		{
			name:        "empty body",
			status:      http.StatusTeapot,
			wantErr:     ErrUnexpectedStatus,
			wantMessage: "Request failed with status 418.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			_, err := a.Login(context.Background(), models.Credentials{Username: "alice", Password: "x"})

			require.ErrorIs(t, err, tt.wantErr)
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, Message(err))
		})
	}
}

func TestRegister_ValidationFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/register", r.URL.Path)
		writeJSON(t, w, http.StatusBadRequest, models.ErrorResponse{
			Error:  "validation failed",
			Code:   models.CodeValidationFailed,
			Fields: []models.FieldError{{Field: "username", Rule: "min", Message: "must be at least 3 characters"}},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.RegisterRequest{Username: "al", Password: "secret1"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, models.CodeValidationFailed, apiErr.Code)
	require.Len(t, apiErr.Fields, 1)
	assert.Equal(t, "username", apiErr.Fields[0].Field)
}

func TestLogin_TooManyRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "540")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.Credentials{Username: "alice", Password: "secret1"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.ErrorIs(t, err, ErrTooManyRequests)
	assert.Equal(t, 540, apiErr.RetryAfter)
}

func TestOAuthSignIn_Path(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/github-mobile", r.URL.Path)

		var body models.OAuthMobileRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gh-token", body.Token)

		writeJSON(t, w, http.StatusOK, models.AuthResponse{Token: "tok"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.OAuthSignIn(context.Background(), models.ProviderGithub, "gh-token")

	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
}

// ── inventory ───────────────────────────────────────────────────────────────

func TestListItems_SendsFiltersAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/items", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "4", q.Get("boxId"))
		assert.Equal(t, "Tools", q.Get("category"))
		assert.Equal(t, "dri", q.Get("q"))
		assert.Equal(t, "20", q.Get("limit"))
		assert.False(t, q.Has("offset"))

		writeJSON(t, w, http.StatusOK, models.NewListResponse([]models.Item{{ID: 1, Name: "Drill"}}, 1, models.Page{Limit: 20}))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(" tok ")
	boxID := int64(4)

	got, err := a.ListItems(context.Background(), models.ItemFilter{BoxID: &boxID, Category: "Tools", Query: "dri", Page: models.Page{Limit: 20}})

	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, "Drill", got.Data[0].Name)
}

func TestUpdateItem_SendsOnlyPresentFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/items/7", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"boxId":null}`, string(body))

		writeJSON(t, w, http.StatusOK, models.Item{ID: 7, Name: "Drill"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.UpdateItem(context.Background(), 7, models.ItemInput{BoxID: models.NullID()})

	require.NoError(t, err)
	assert.True(t, got.Orphaned())
}

func TestDeleteLocation_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/locations/3", r.URL.Path)
		writeJSON(t, w, http.StatusConflict, models.ErrorResponse{Error: "location still contains boxes", Code: models.CodeConflict})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.DeleteLocation(context.Background(), 3)

	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "location still contains boxes", Message(err))
}

func TestGetBox_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, models.ErrorResponse{Error: "box 9 not found", Code: models.CodeNotFound})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.GetBox(context.Background(), 9)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "not found: box 9 not found", err.Error())
}

func TestListComments_Path(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/comments/box/5", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.NewListResponse[models.Comment](nil, 0, models.DefaultPage()))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.ListComments(context.Background(), models.ResourceRef{Kind: models.ResourceBox, ID: 5}, models.Page{})

	require.NoError(t, err)
	assert.Empty(t, got.Data)
}

func TestUnreadCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notifications/unread-count", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.UnreadCount{Count: 3})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.UnreadCount(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	a := newTestAdapter(t, url)
	_, err := a.Me(context.Background())

	require.ErrorIs(t, err, ErrUnreachable)
	assert.Contains(t, Message(err), "Cannot reach the server")
}

// ── base URL ────────────────────────────────────────────────────────────────

func TestSetBaseURL_SwitchesServer(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		writeJSON(t, w, http.StatusOK, models.AppBuildInfo{Version: "1.2.0"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, "http://127.0.0.1:1")
	require.NoError(t, a.SetBaseURL(srv.URL+"/"))
	assert.Equal(t, srv.URL, a.BaseURL())

	got, err := a.Version(context.Background())

	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "1.2.0", got.Version)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"https with path", "https://sortr.example.com/", "https://sortr.example.com", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"empty", "  ", "", true},
		{"no host", "http://", "", true},
		{"ftp", "ftp://files.example.com", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
