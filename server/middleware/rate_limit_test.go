package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowPerKey(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	// Other keys have their own bucket.
	assert.True(t, rl.Allow("b"))
	assert.Equal(t, 2, rl.Keys())
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	require.True(t, rl.Allow("a"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, rl.Wait(ctx, "a"))
}

func TestRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	for i := 0; i < 20; i++ {
		assert.True(t, rl.Allow("a"), "request %d", i)
	}
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiter_Middleware(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(1, 1)
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, rl.Middleware())

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)

	rec := do("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")

	assert.Equal(t, http.StatusOK, do("10.0.0.2").Code)
}
