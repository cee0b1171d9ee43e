package handler

import (
	"net/http"
	"strings"

	"asset-service/internal/audit"
	"asset-service/internal/auth"
	"asset-service/pkg/password"

	"github.com/labstack/echo/v4"
)

// Pre-computed bcrypt hash (cost 12) used to equalize timing on failed lookups.
// The actual plaintext is irrelevant — this just ensures constant-time response.
const dummyBcryptHash = "$2a$12$dWR5CQpS4zNHLavLSIr4o.P6QDQEUJKv7mJ7WekUHHqyRSRMJzH0S"

type AuthHandler struct {
	accounts   AccountStore
	jwtService *auth.JWTService
	auditLog   AuditLogger
}

func NewAuthHandler(accounts AccountStore, jwtService *auth.JWTService, auditLog AuditLogger) *AuthHandler {
	return &AuthHandler{
		accounts:   accounts,
		jwtService: jwtService,
		auditLog:   auditLog,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		password.Verify("", dummyBcryptHash)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	acct, err := h.accounts.GetByUsername(c.Request().Context(), req.Username)
	if err != nil {
		// Run bcrypt against a dummy hash to prevent timing oracle.
		// Without this, "account not found" returns in ~1ms while
		// "wrong password" takes ~200ms, leaking username existence.
		password.Verify(req.Password, dummyBcryptHash)
		h.auditLog.LogFromContext(c, audit.ResourceTypeAccount, nil, audit.ActionLogin, audit.StatusFailure, map[string]any{"username": req.Username})
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	if !password.Verify(req.Password, acct.PasswordHash) {
		h.auditLog.LogFromContext(c, audit.ResourceTypeAccount, &acct.ID, audit.ActionLogin, audit.StatusFailure, nil)
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	token, err := h.jwtService.Generate(acct.Username, auth.Role(acct.RoleName))
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgGenerateTokenFail)
	}

	h.auditLog.LogFromContext(c, audit.ResourceTypeAccount, &acct.ID, audit.ActionLogin, audit.StatusSuccess, nil)

	return c.JSON(http.StatusOK, LoginResponse{
		Token: token,
	})
}
