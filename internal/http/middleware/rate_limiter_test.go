package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"asset-service/internal/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, 2) // 2 req/sec, burst of 2

	// Burst of two is admitted, the third call in the same window is not
	assert.True(t, rl.Allow("ip:198.51.100.7"))
	assert.True(t, rl.Allow("ip:198.51.100.7"))
	assert.False(t, rl.Allow("ip:198.51.100.7"))
}

func TestRateLimiter_Middleware(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(2, 2)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	limited := rl.Middleware()(handler)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/devices", nil)
		rec := httptest.NewRecorder()
		assert.NoError(t, limited(e.NewContext(req, rec)))
		return rec
	}

	rec := send()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))

	rec = send()
	assert.Equal(t, http.StatusOK, rec.Code)

	// Burst exhausted
	rec = send()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_DifferentKeys(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	// Each key holds its own bucket
	assert.True(t, rl.Allow("account:41"))
	assert.True(t, rl.Allow("account:42"))

	assert.False(t, rl.Allow("account:41"))
	assert.False(t, rl.Allow("account:42"))
}

func TestRateLimiter_MiddlewareKeysByAccount(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(1, 1)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	limited := rl.Middleware()(handler)

	// Same source IP, different authenticated accounts
	send := func(p *auth.Principal) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/devices", nil)
		req.Header.Set(echo.HeaderXRealIP, "203.0.113.9")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(auth.ContextKeyPrincipal, p)
		assert.NoError(t, limited(c))
		return rec
	}

	alice := &auth.Principal{AccountID: 1, Username: "alice", Role: auth.RoleUser}
	bob := &auth.Principal{AccountID: 2, Username: "bob", Role: auth.RoleUser}

	assert.Equal(t, http.StatusOK, send(alice).Code)
	assert.Equal(t, http.StatusTooManyRequests, send(alice).Code)

	// A different account is not starved by alice's bucket
	assert.Equal(t, http.StatusOK, send(bob).Code)
}
