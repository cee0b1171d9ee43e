package auth

import (
	apperrors "asset-service/pkg/errors"

	"github.com/labstack/echo/v4"
)

// Role is the coarse account role carried in the token.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// Principal is the resolved caller identity for one request: verified token
// subject plus the account and employee linkage looked up from data. Built
// once per request by RequireJWT, immutable, discarded at request end.
type Principal struct {
	AccountID  int
	Username   string
	Role       Role
	EmployeeID *int
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// GetPrincipal extracts the request principal set by RequireJWT.
func GetPrincipal(c echo.Context) (*Principal, error) {
	raw := c.Get(ContextKeyPrincipal)
	if raw == nil {
		return nil, apperrors.Unauthorized(msgUserNotAuthenticated)
	}

	principal, ok := raw.(*Principal)
	if !ok {
		return nil, apperrors.InternalServer(msgInvalidPrincipalCtx, nil)
	}

	return principal, nil
}
