package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Comraich/sortr-sub001/internal/config"
	"github.com/Comraich/sortr-sub001/internal/logger"
	"github.com/Comraich/sortr-sub001/internal/mock"
	"github.com/Comraich/sortr-sub001/internal/service"
	"github.com/Comraich/sortr-sub001/internal/utils"
	"github.com/Comraich/sortr-sub001/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testSignKey = "handler-test-sign-key"
	testIssuer  = "sortr"
)

// ─────────────────────────────────────────────
// Fake ActivityService
// ─────────────────────────────────────────────

// fakeActivities keeps recorded rows in memory. Setting err makes every
// write fail.
type fakeActivities struct {
	mu   sync.Mutex
	rows []models.Activity
	err  error
}

func (f *fakeActivities) Record(_ context.Context, a models.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, a)
	return nil
}

func (f *fakeActivities) RecordBulk(_ context.Context, template models.Activity, entities []models.ActivityEntity) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	for _, e := range entities {
		row := template
		row.EntityID, row.EntityName, row.Changes = e.ID, e.Name, e.Changes
		f.rows = append(f.rows, row)
	}
	return int64(len(entities)), nil
}

func (f *fakeActivities) List(_ context.Context, filter models.ActivityFilter) (models.ListResponse[models.Activity], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.NewListResponse(append([]models.Activity(nil), f.rows...), len(f.rows), filter.Page.Normalized()), nil
}

func (f *fakeActivities) recorded() []models.Activity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Activity(nil), f.rows...)
}

// ─────────────────────────────────────────────
// Test environment
// ─────────────────────────────────────────────

type testEnv struct {
	handler *Handler
	router  http.Handler

	users         *mock.MockUserRepository
	locations     *mock.MockLocationService
	boxes         *mock.MockBoxService
	items         *mock.MockItemService
	categories    *mock.MockCategoryService
	userAdmin     *mock.MockUserService
	notifications *mock.MockNotificationService
	transfer      *mock.MockTransferService
	activities    *fakeActivities
}

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			TokenSignKey:  testSignKey,
			TokenIssuer:   testIssuer,
			TokenDuration: time.Hour,
			Profile:       config.ProfileTest,
		},
		Storage: config.Storage{
			Files: config.Files{MaxImageBytes: 1 << 20},
		},
		RateLimit: config.RateLimit{
			AuthAttempts: 5,
			AuthWindow:   15 * time.Minute,
		},
	}
}

// newTestEnv wires a router over mocked services. Authentication uses the
// real AuthService so tokens are verified exactly as in production.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	cfg := testConfig()

	env := &testEnv{
		users:         mock.NewMockUserRepository(ctrl),
		locations:     mock.NewMockLocationService(ctrl),
		boxes:         mock.NewMockBoxService(ctrl),
		items:         mock.NewMockItemService(ctrl),
		categories:    mock.NewMockCategoryService(ctrl),
		userAdmin:     mock.NewMockUserService(ctrl),
		notifications: mock.NewMockNotificationService(ctrl),
		transfer:      mock.NewMockTransferService(ctrl),
		activities:    &fakeActivities{},
	}

	appInfo := mock.NewMockAppInfoService(ctrl)
	appInfo.EXPECT().GetAppVersion(gomock.Any()).Return(models.NewAppBuildInfo("1.2.3", "", "")).AnyTimes()

	services := &service.Services{
		AuthService:         service.NewAuthService(env.users, cfg.App, logger.Nop()),
		LocationService:     env.locations,
		BoxService:          env.boxes,
		ItemService:         env.items,
		CategoryService:     env.categories,
		UserService:         env.userAdmin,
		NotificationService: env.notifications,
		TransferService:     env.transfer,
		ActivityService:     env.activities,
		AppInfoService:      appInfo,
	}

	env.handler = NewHandler(services, cfg, logger.Nop())
	env.router = env.handler.Init()
	return env
}

// token signs a token for id with the test key.
func token(t *testing.T, id models.Identity) string {
	t.Helper()
	tok, err := utils.GenerateJWTToken(testIssuer, id, time.Hour, testSignKey)
	require.NoError(t, err)
	return tok.SignedString
}

var (
	alice = models.Identity{UserID: 1, Username: "alice"}
	admin = models.Identity{UserID: 9, Username: "root", IsAdmin: true}
)

func (e *testEnv) do(t *testing.T, method, path, body string, as *models.Identity) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+token(t, *as))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func ptr[T any](v T) *T {
	return &v
}

// ─────────────────────────────────────────────
// Init: route registration
// ─────────────────────────────────────────────

func TestNewHandler_TestProfileDisablesLimiter(t *testing.T) {
	h := NewHandler(&service.Services{}, testConfig(), logger.Nop())
	assert.Nil(t, h.Limiter())

	cfg := testConfig()
	cfg.App.Profile = ""
	h = NewHandler(&service.Services{}, cfg, logger.Nop())
	assert.NotNil(t, h.Limiter())
}

type routeCase struct {
	method string
	path   string
}

// protectedRoutes must all exist behind auth: without a token they answer
// 401, never 404 or 405.
var protectedRoutes = []routeCase{
	{http.MethodGet, "/api/me"},
	{http.MethodGet, "/api/users"},
	{http.MethodPatch, "/api/users/2/admin"},
	{http.MethodDelete, "/api/users/2"},
	{http.MethodGet, "/api/locations"},
	{http.MethodPost, "/api/locations"},
	{http.MethodGet, "/api/locations/tree"},
	{http.MethodGet, "/api/locations/1"},
	{http.MethodGet, "/api/locations/1/children"},
	{http.MethodPut, "/api/locations/1"},
	{http.MethodPatch, "/api/locations/1"},
	{http.MethodDelete, "/api/locations/1"},
	{http.MethodGet, "/api/boxes"},
	{http.MethodPost, "/api/boxes"},
	{http.MethodGet, "/api/boxes/1"},
	{http.MethodPut, "/api/boxes/1"},
	{http.MethodPatch, "/api/boxes/1"},
	{http.MethodDelete, "/api/boxes/1"},
	{http.MethodGet, "/api/items"},
	{http.MethodPost, "/api/items"},
	{http.MethodGet, "/api/items/1"},
	{http.MethodPut, "/api/items/1"},
	{http.MethodPatch, "/api/items/1"},
	{http.MethodDelete, "/api/items/1"},
	{http.MethodPost, "/api/items/1/image"},
	{http.MethodGet, "/api/items/1/image"},
	{http.MethodDelete, "/api/items/1/image"},
	{http.MethodGet, "/api/categories"},
	{http.MethodPost, "/api/categories"},
	{http.MethodPut, "/api/categories/1"},
	{http.MethodDelete, "/api/categories/1"},
	{http.MethodGet, "/api/activities"},
	{http.MethodGet, "/api/activities/item/1"},
	{http.MethodGet, "/api/shares"},
	{http.MethodGet, "/api/shares/sent"},
	{http.MethodPost, "/api/shares"},
	{http.MethodDelete, "/api/shares/1"},
	{http.MethodGet, "/api/notifications"},
	{http.MethodGet, "/api/notifications/unread-count"},
	{http.MethodPatch, "/api/notifications/1/read"},
	{http.MethodPatch, "/api/notifications/read-all"},
	{http.MethodGet, "/api/comments/box/1"},
	{http.MethodPost, "/api/comments"},
	{http.MethodDelete, "/api/comments/1"},
	{http.MethodGet, "/api/export/items.csv"},
	{http.MethodPost, "/api/import/items/preview"},
	{http.MethodPost, "/api/import/items"},
	{http.MethodGet, "/api/backup"},
	{http.MethodPost, "/api/backup/restore"},
}

func TestInit_ProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range protectedRoutes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := env.do(t, tc.method, tc.path, "", nil)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decodeBody[models.ErrorResponse](t, rec)
			assert.Equal(t, models.CodeUnauthenticated, body.Code)
		})
	}
}

func TestInit_Version(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/version", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	info := decodeBody[models.AppBuildInfo](t, rec)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "N/A", info.Commit)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/nonexistent", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, models.CodeNotFound, decodeBody[models.ErrorResponse](t, rec).Code)
}

func TestInit_WrongMethodReturns405WithAllow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodDelete, "/api/version", "", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET", rec.Header().Get("Allow"))
}

func TestInit_TraceIDIsPropagated(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(traceIDHeader, "trace-123")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, "trace-123", rec.Header().Get(traceIDHeader))
}
