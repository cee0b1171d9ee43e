package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"asset-service/internal/audit"
	"asset-service/internal/auth"
	"asset-service/internal/domain/account"
	apperrors "asset-service/pkg/errors"
	"asset-service/pkg/password"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "handler-test-secret-that-is-long-enough"

type recordedEvent struct {
	resourceType audit.ResourceType
	resourceID   *int
	action       audit.Action
	status       audit.Status
}

// recordingAuditLog captures audit calls so tests can assert what the
// handlers record without a database.
type recordingAuditLog struct {
	events []recordedEvent
}

func (r *recordingAuditLog) LogFromContext(c echo.Context, resourceType audit.ResourceType, resourceID *int, action audit.Action, status audit.Status, metadata map[string]any) error {
	r.events = append(r.events, recordedEvent{resourceType, resourceID, action, status})
	return nil
}

func (r *recordingAuditLog) LogError(c echo.Context, resourceType audit.ResourceType, resourceID *int, action audit.Action, err error) error {
	r.events = append(r.events, recordedEvent{resourceType, resourceID, action, audit.StatusFailure})
	return nil
}

type stubAccountStore struct {
	byUsername map[string]*account.Account
}

func (s *stubAccountStore) Create(ctx context.Context, input account.CreateAccountInput) (*account.Account, error) {
	return nil, apperrors.InternalServer("not implemented", nil)
}

func (s *stubAccountStore) GetByID(ctx context.Context, id int) (*account.Account, error) {
	return nil, apperrors.NotFound("account not found")
}

func (s *stubAccountStore) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	if a, ok := s.byUsername[username]; ok {
		return a, nil
	}
	return nil, apperrors.NotFound("account not found")
}

func (s *stubAccountStore) List(ctx context.Context) ([]*account.Account, error) {
	return nil, nil
}

func (s *stubAccountStore) Update(ctx context.Context, id int, input account.UpdateAccountInput) error {
	return nil
}

func (s *stubAccountStore) Delete(ctx context.Context, id int) error {
	return nil
}

func (s *stubAccountStore) UsernameTaken(ctx context.Context, username string, excludeID int) (bool, error) {
	return false, nil
}

func (s *stubAccountStore) RoleExists(ctx context.Context, roleID int) (bool, error) {
	return true, nil
}

func loginRequest(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login(t *testing.T) {
	hash, err := password.Hash("Corr3ct!horse&battery")
	require.NoError(t, err)

	store := &stubAccountStore{byUsername: map[string]*account.Account{
		"alice": {ID: 1, Username: "alice", PasswordHash: hash, RoleName: "User"},
	}}
	jwtService := auth.NewJWTService(testJWTSecret, time.Hour)
	auditLog := &recordingAuditLog{}
	h := NewAuthHandler(store, jwtService, auditLog)

	c, rec := loginRequest(t, `{"username": "alice", "password": "Corr3ct!horse&battery"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, auditLog.events, 1)
	assert.Equal(t, audit.ActionLogin, auditLog.events[0].action)
	assert.Equal(t, audit.StatusSuccess, auditLog.events[0].status)
	require.NotNil(t, auditLog.events[0].resourceID)
	assert.Equal(t, 1, *auditLog.events[0].resourceID)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	claims, err := jwtService.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "User", claims.Role)
}

func TestAuthHandler_LoginFailures(t *testing.T) {
	hash, err := password.Hash("Corr3ct!horse&battery")
	require.NoError(t, err)

	store := &stubAccountStore{byUsername: map[string]*account.Account{
		"alice": {ID: 1, Username: "alice", PasswordHash: hash, RoleName: "User"},
	}}
	jwtService := auth.NewJWTService(testJWTSecret, time.Hour)

	tests := []struct {
		name        string
		body        string
		want        int
		wantAudited bool
	}{
		{"wrong password", `{"username": "alice", "password": "Wr0ng!password99"}`, http.StatusUnauthorized, true},
		{"unknown user", `{"username": "bob", "password": "Corr3ct!horse&battery"}`, http.StatusUnauthorized, true},
		{"empty username", `{"username": "", "password": "x"}`, http.StatusUnauthorized, false},
		{"empty password", `{"username": "alice", "password": ""}`, http.StatusUnauthorized, false},
		{"malformed body", `{"username": `, http.StatusBadRequest, false},
		{"unknown field", `{"username": "alice", "password": "x", "extra": true}`, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auditLog := &recordingAuditLog{}
			h := NewAuthHandler(store, jwtService, auditLog)

			c, rec := loginRequest(t, tt.body)
			require.NoError(t, h.Login(c))
			assert.Equal(t, tt.want, rec.Code)

			if tt.wantAudited {
				require.Len(t, auditLog.events, 1)
				assert.Equal(t, audit.ActionLogin, auditLog.events[0].action)
				assert.Equal(t, audit.StatusFailure, auditLog.events[0].status)
			} else {
				assert.Empty(t, auditLog.events)
			}
		})
	}
}

func TestAuthHandler_LoginRequiresJSONContentType(t *testing.T) {
	h := NewAuthHandler(&stubAccountStore{}, auth.NewJWTService(testJWTSecret, time.Hour), &recordingAuditLog{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(`{"username": "a", "password": "b"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Login(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
