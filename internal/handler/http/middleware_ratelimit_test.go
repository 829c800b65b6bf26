package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Comraich/sortr-sub001/internal/store"
	"github.com/Comraich/sortr-sub001/internal/utils"
	"github.com/Comraich/sortr-sub001/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func loginFrom(env *testEnv, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"wrong-password"}`))
	req.RemoteAddr = ip + ":52100"
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func TestAuthRateLimit_SixthLoginIsRejectedUntilWindowPasses(t *testing.T) {
	env := newTestEnv(t)
	clock := newFakeClock()
	env.handler.limiter = NewRateLimiter(5, 15*time.Minute, clock.Now)

	env.users.EXPECT().FindUserByUsername(gomock.Any(), "alice").
		Return(models.User{}, store.ErrNotFound).
		Times(10)

	for i := range 5 {
		rec := loginFrom(env, "203.0.113.7")
		require.Equal(t, http.StatusUnauthorized, rec.Code, "attempt %d", i+1)
	}

	rec := loginFrom(env, "203.0.113.7")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	body := decodeBody[models.ErrorResponse](t, rec)
	assert.Equal(t, models.CodeTooManyRequests, body.Code)
	assert.Equal(t, 900, body.RetryAfter)
	assert.Equal(t, "900", rec.Header().Get("Retry-After"))

	// another client is unaffected
	assert.Equal(t, http.StatusUnauthorized, loginFrom(env, "198.51.100.1").Code)

	clock.Advance(15 * time.Minute)
	for i := range 4 {
		rec := loginFrom(env, "203.0.113.7")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "attempt %d after reset", i+1)
	}
}

func TestAuthRateLimit_DisabledUnderTestProfile(t *testing.T) {
	env := newTestEnv(t)
	require.Nil(t, env.handler.Limiter())

	env.users.EXPECT().FindUserByUsername(gomock.Any(), "alice").
		Return(models.User{}, store.ErrNotFound).
		Times(8)

	for range 8 {
		assert.Equal(t, http.StatusUnauthorized, loginFrom(env, "203.0.113.7").Code)
	}
}

func TestRateLimiter_WindowIsRolling(t *testing.T) {
	clock := newFakeClock()
	l := NewRateLimiter(5, 15*time.Minute, clock.Now)

	for range 5 {
		ok, _ := l.Allow("a")
		require.True(t, ok)
	}

	ok, wait := l.Allow("a")
	require.False(t, ok)
	assert.Equal(t, 15*time.Minute, wait)

	clock.Advance(3 * time.Minute)
	ok, wait = l.Allow("a")
	assert.False(t, ok, "still rejected at +3m")
	assert.Equal(t, 12*time.Minute, wait)

	clock.Advance(11 * time.Minute)
	ok, wait = l.Allow("a")
	assert.False(t, ok, "still rejected at +14m")
	assert.Equal(t, time.Minute, wait)

	clock.Advance(time.Minute)
	ok, _ = l.Allow("a")
	assert.True(t, ok, "the first attempts left the window at +15m")
}

func TestRateLimiter_SpacedAttemptsStayWithinBound(t *testing.T) {
	clock := newFakeClock()
	l := NewRateLimiter(5, 15*time.Minute, clock.Now)

	allowed := 0
	for range 15 {
		if ok, _ := l.Allow("a"); ok {
			allowed++
		}
		clock.Advance(time.Minute)
	}
	assert.Equal(t, 5, allowed)

	// attempts at minutes 0..4 have all left the window by minute 19
	clock.Advance(4 * time.Minute)
	for range 5 {
		ok, _ := l.Allow("a")
		assert.True(t, ok)
	}
	ok, wait := l.Allow("a")
	assert.False(t, ok)
	assert.Equal(t, 15*time.Minute, wait)
}

func TestRateLimiter_RetryAfterFollowsOldestAttempt(t *testing.T) {
	clock := newFakeClock()
	l := NewRateLimiter(2, 10*time.Minute, clock.Now)

	l.Allow("a")
	clock.Advance(4 * time.Minute)
	l.Allow("a")
	clock.Advance(time.Minute)

	ok, wait := l.Allow("a")
	require.False(t, ok)
	assert.Equal(t, 5*time.Minute, wait)

	clock.Advance(5 * time.Minute)
	ok, _ = l.Allow("a")
	assert.True(t, ok)
	ok, wait = l.Allow("a")
	assert.False(t, ok)
	assert.Equal(t, 4*time.Minute, wait)
}

func TestAuthRateLimit_ForwardedHeadersFromUntrustedPeerAreIgnored(t *testing.T) {
	env := newTestEnv(t)
	clock := newFakeClock()
	env.handler.limiter = NewRateLimiter(5, 15*time.Minute, clock.Now)

	env.users.EXPECT().FindUserByUsername(gomock.Any(), "alice").
		Return(models.User{}, store.ErrNotFound).
		Times(5)

	codes := make([]int, 0, 10)
	for i := range 10 {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"wrong-password"}`))
		req.RemoteAddr = "203.0.113.7:52100"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i+1))
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.1.%d", i+1))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{401, 401, 401, 401, 401, 429, 429, 429, 429, 429}, codes)
}

func TestAuthRateLimit_TrustedProxyNamesTheClient(t *testing.T) {
	env := newTestEnv(t)
	clock := newFakeClock()
	env.handler.limiter = NewRateLimiter(1, 15*time.Minute, clock.Now)
	proxies, err := utils.ParseTrustedProxies([]string{"192.0.2.0/24"})
	require.NoError(t, err)
	env.handler.proxies = proxies

	env.users.EXPECT().FindUserByUsername(gomock.Any(), "alice").
		Return(models.User{}, store.ErrNotFound).
		Times(2)

	login := func(forwardedFor string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"alice","password":"wrong-password"}`))
		req.RemoteAddr = "192.0.2.5:443"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, login("198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, login("198.51.100.1"))
	assert.Equal(t, http.StatusUnauthorized, login("198.51.100.2"), "each forwarded client has its own window")
}

func TestRateLimiter_Sweep(t *testing.T) {
	clock := newFakeClock()
	l := NewRateLimiter(5, 15*time.Minute, clock.Now)

	l.Allow("idle")
	clock.Advance(10 * time.Minute)
	l.Allow("active")

	assert.Equal(t, 0, l.Sweep())

	clock.Advance(5 * time.Minute)
	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Len())
}
