package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Comraich/sortr-sub001/internal/service"
	"github.com/Comraich/sortr-sub001/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestIsMove(t *testing.T) {
	tests := []struct {
		name    string
		changes models.FieldChanges
		want    bool
	}{
		{name: "nothing changed", changes: nil, want: false},
		{name: "box only", changes: models.FieldChanges{"boxId": {}}, want: true},
		{name: "parent only", changes: models.FieldChanges{"parentId": {}}, want: true},
		{name: "location only", changes: models.FieldChanges{"locationId": {}}, want: true},
		{name: "box and name", changes: models.FieldChanges{"boxId": {}, "name": {}}, want: false},
		{name: "name only", changes: models.FieldChanges{"name": {}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isMove(tt.changes))
		})
	}
}

func TestBuildActivity_FallsBackToRequest(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "7")
	req := httptest.NewRequest(http.MethodPatch, "/api/categories/7", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	note := &activityNote{action: models.ActionUpdate}
	a := buildActivity(req, note, models.ResourceItem, []byte(`{"quantity":3,"description":"x"}`), []byte(`{"ok":true}`))

	require.NotNil(t, a.EntityID)
	assert.Equal(t, int64(7), *a.EntityID)
	assert.Empty(t, a.EntityName)
	assert.JSONEq(t, `["description","quantity"]`, string(a.Changes))
}

func TestBuildActivity_NoteWins(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/api/users/2", nil)
	id := int64(2)
	note := &activityNote{action: models.ActionDelete, entityID: &id, entityName: "bob", changes: map[string]string{"username": "bob"}}

	a := buildActivity(req, note, models.ResourceUser, nil, []byte(`{"id":99,"name":"ignored"}`))

	assert.Equal(t, int64(2), *a.EntityID)
	assert.Equal(t, "bob", a.EntityName)
	assert.JSONEq(t, `{"username":"bob"}`, string(a.Changes))
}

func TestObserve_FailedMutationIsNotRecorded(t *testing.T) {
	env := newTestEnv(t)
	env.items.EXPECT().Delete(gomock.Any(), int64(4)).Return(models.Item{}, &service.NotFoundError{Kind: "item", ID: 4})

	rec := env.do(t, http.MethodDelete, "/api/items/4", "", &alice)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, env.activities.recorded())
}

func TestGzip_CompressesJSONWhenAccepted(t *testing.T) {
	env := newTestEnv(t)
	env.boxes.EXPECT().Get(gomock.Any(), int64(2)).Return(models.Box{ID: 2, Name: "Tools", LocationID: 1}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/boxes/2", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, alice))
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(plain), `"name":"Tools"`)
}

func TestGzip_InflatesRequestBody(t *testing.T) {
	env := newTestEnv(t)
	env.locations.EXPECT().Create(gomock.Any(), models.LocationInput{Name: ptr("Attic")}).
		Return(models.Location{ID: 5, Name: "Attic"}, nil)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(`{"name":"Attic"}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/locations", &buf)
	req.Header.Set("Authorization", "Bearer "+token(t, alice))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rows := env.activities.recorded()
	require.Len(t, rows, 1)
	assert.Equal(t, "Attic", rows[0].EntityName)
}

func TestGzip_BadRequestBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/locations", bytes.NewReader([]byte("not gzip")))
	req.Header.Set("Authorization", "Bearer "+token(t, alice))
	req.Header.Set("Content-Encoding", "gzip")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
