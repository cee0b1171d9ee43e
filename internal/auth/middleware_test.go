package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"asset-service/internal/domain/account"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAccounts struct {
	account *account.Account
	err     error
}

func (s *stubAccounts) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	return s.account, s.err
}

func newTestContext(authorization string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireJWT_ValidToken(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)
	employeeID := 7
	accounts := &stubAccounts{account: &account.Account{
		ID:         3,
		Username:   "alice",
		RoleName:   "User",
		EmployeeID: &employeeID,
	}}

	token, err := svc.Generate("alice", RoleUser)
	require.NoError(t, err)

	c, rec := newTestContext("Bearer " + token)
	mw := NewMiddleware(svc, accounts).RequireJWT()

	called := false
	err = mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)

	principal, err := GetPrincipal(c)
	require.NoError(t, err)
	assert.Equal(t, 3, principal.AccountID)
	assert.Equal(t, "alice", principal.Username)
	assert.Equal(t, RoleUser, principal.Role)
	require.NotNil(t, principal.EmployeeID)
	assert.Equal(t, 7, *principal.EmployeeID)
}

func TestRequireJWT_MissingHeader(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)
	c, rec := newTestContext("")
	mw := NewMiddleware(svc, &stubAccounts{}).RequireJWT()

	err := mw(func(c echo.Context) error {
		t.Fatal("next should not run")
		return nil
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireJWT_MalformedHeader(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	for _, header := range []string{"Bearer", "Basic abc", "Bearer a b"} {
		c, rec := newTestContext(header)
		mw := NewMiddleware(svc, &stubAccounts{}).RequireJWT()

		err := mw(func(c echo.Context) error { return nil })(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestRequireJWT_InvalidToken(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)
	c, rec := newTestContext("Bearer garbage")
	mw := NewMiddleware(svc, &stubAccounts{}).RequireJWT()

	err := mw(func(c echo.Context) error { return nil })(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireJWT_UnknownAccount(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)
	accounts := &stubAccounts{err: errors.New("account not found")}

	token, err := svc.Generate("ghost", RoleUser)
	require.NoError(t, err)

	c, rec := newTestContext("Bearer " + token)
	mw := NewMiddleware(svc, accounts).RequireJWT()

	err = mw(func(c echo.Context) error { return nil })(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetPrincipal_NotSet(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := GetPrincipal(c)
	assert.Error(t, err)
}
