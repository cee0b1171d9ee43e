package admission

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"asset-service/internal/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAuditor struct {
	reasons []string
}

func (r *recordingAuditor) DeniedRequest(c echo.Context, reason, detail string) {
	r.reasons = append(r.reasons, reason)
}

func testGate(t *testing.T, assignments AssignmentLookup, auditor DenialAuditor) *Gate {
	t.Helper()

	store, err := ParseRuleStore([]byte(`[
		{"type": "Laptop", "rules": [
			{"paramName": "serialNumber", "regex": "^[A-Z]{2}\\d{6}$"}
		]}
	]`))
	require.NoError(t, err)

	return NewGate(store, assignments, auditor)
}

func newContext(t *testing.T, method, path, body string, principal *auth.Principal) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(auth.ContextKeyPrincipal, principal)
	}
	return c, rec
}

func TestGate_AdmitDeniesUnauthenticated(t *testing.T) {
	g := testGate(t, &stubAssignments{}, nil)

	c, _ := newContext(t, http.MethodGet, "/api/devices", "", nil)
	verdict := g.Admit(c, AdminOnly())

	assert.False(t, verdict.Allowed)
	assert.Equal(t, ReasonUnauthenticated, verdict.Reason)
}

func TestGate_AccessDenialShortCircuitsBodyValidation(t *testing.T) {
	g := testGate(t, &stubAssignments{}, nil)

	// Body would also fail validation; the access denial reports first.
	c, _ := newContext(t, http.MethodPost, "/api/devices", `{"isEnabled": false}`, userPrincipal(2, nil))
	verdict := g.Admit(c, AdminOnly())

	assert.False(t, verdict.Allowed)
	assert.Equal(t, ReasonForbidden, verdict.Reason)
}

func TestGate_OutOfScopeSkipsBodyValidation(t *testing.T) {
	g := testGate(t, &stubAssignments{}, nil)

	// GET requests and non-device routes never reach the engine.
	c, _ := newContext(t, http.MethodGet, "/api/devices/3", "", adminPrincipal())
	assert.True(t, g.Admit(c, AdminOnly()).Allowed)

	c, _ = newContext(t, http.MethodPut, "/api/accounts/3", `{"username": "x"}`, adminPrincipal())
	assert.True(t, g.Admit(c, SelfOrAdmin(3)).Allowed)
}

func TestGate_InScopeBodyValidated(t *testing.T) {
	g := testGate(t, &stubAssignments{}, nil)

	body := `{"isEnabled": true, "deviceTypeName": "Laptop", "additionalProperties": {"serialNumber": "XX000000"}}`
	c, _ := newContext(t, http.MethodPost, "/api/devices", body, adminPrincipal())
	assert.True(t, g.Admit(c, AdminOnly()).Allowed)

	bad := `{"isEnabled": true, "deviceTypeName": "Laptop", "additionalProperties": {"serialNumber": "bad"}}`
	c, _ = newContext(t, http.MethodPost, "/api/devices", bad, adminPrincipal())
	verdict := g.Admit(c, AdminOnly())
	assert.False(t, verdict.Allowed)
	assert.Equal(t, ReasonPatternMismatch, verdict.Reason)
}

func TestGate_MalformedBodyDenied(t *testing.T) {
	g := testGate(t, &stubAssignments{}, nil)

	c, _ := newContext(t, http.MethodPost, "/api/devices", `{not json`, adminPrincipal())
	verdict := g.Admit(c, AdminOnly())

	assert.False(t, verdict.Allowed)
	assert.Equal(t, ReasonMalformedBody, verdict.Reason)
	assert.Equal(t, http.StatusBadRequest, verdict.StatusCode())
}

func TestGate_BodyReplayedForHandler(t *testing.T) {
	g := testGate(t, &stubAssignments{}, nil)

	body := `{"isEnabled": true, "deviceTypeName": "Monitor"}`
	c, _ := newContext(t, http.MethodPost, "/api/devices", body, adminPrincipal())

	require.True(t, g.Admit(c, AdminOnly()).Allowed)

	// The handler still reads the original, unmodified body.
	replayed, err := io.ReadAll(c.Request().Body)
	require.NoError(t, err)
	assert.Equal(t, body, string(replayed))
}

func TestGate_RequireAdminMiddleware(t *testing.T) {
	auditor := &recordingAuditor{}
	g := testGate(t, &stubAssignments{}, auditor)

	next := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	mw := g.RequireAdmin()(next)

	c, rec := newContext(t, http.MethodGet, "/api/employees", "", adminPrincipal())
	require.NoError(t, mw(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext(t, http.MethodGet, "/api/employees", "", userPrincipal(2, nil))
	require.NoError(t, mw(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, []string{string(ReasonForbidden)}, auditor.reasons)
}

func TestGate_RequireDeviceOwnerMiddleware(t *testing.T) {
	g := testGate(t, &stubAssignments{assigned: true}, nil)

	next := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	mw := g.RequireDeviceOwner()(next)

	c, rec := newContext(t, http.MethodGet, "/api/devices/mine/4", "", userPrincipal(2, intPtr(7)))
	c.SetParamNames("id")
	c.SetParamValues("4")

	require.NoError(t, mw(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGate_RequireDeviceOwnerRejectsBadID(t *testing.T) {
	g := testGate(t, &stubAssignments{assigned: true}, nil)

	next := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	mw := g.RequireDeviceOwner()(next)

	c, rec := newContext(t, http.MethodGet, "/api/devices/mine/abc", "", userPrincipal(2, intPtr(7)))
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, mw(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGate_EmptyBodyInScope(t *testing.T) {
	g := testGate(t, &stubAssignments{}, nil)

	// An empty body evaluates as an empty document: isEnabled is absent,
	// so the disabled-first check denies.
	c, _ := newContext(t, http.MethodPost, "/api/devices", "", adminPrincipal())
	verdict := g.Admit(c, AdminOnly())

	assert.False(t, verdict.Allowed)
	assert.Equal(t, ReasonDisabledResource, verdict.Reason)
}
