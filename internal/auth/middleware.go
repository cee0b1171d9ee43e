package auth

import (
	"net/http"
	"strings"

	"asset-service/internal/repository"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	jwtService *JWTService
	accounts   repository.AccountReader
}

func NewMiddleware(jwtService *JWTService, accounts repository.AccountReader) *Middleware {
	return &Middleware{
		jwtService: jwtService,
		accounts:   accounts,
	}
}

// RequireJWT verifies the bearer token and resolves the full Principal from
// the account row, so downstream policies see the current employee linkage
// rather than whatever the token was minted with.
func (m *Middleware) RequireJWT() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				return respondError(c, http.StatusUnauthorized, msgMissingAuthorization)
			}

			claims, err := m.jwtService.Verify(token)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgInvalidOrExpiredToken)
			}

			acct, err := m.accounts.GetByUsername(c.Request().Context(), claims.Username)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgUnknownAccount)
			}

			principal := &Principal{
				AccountID:  acct.ID,
				Username:   acct.Username,
				Role:       Role(claims.Role),
				EmployeeID: acct.EmployeeID,
			}
			c.Set(ContextKeyPrincipal, principal)

			return next(c)
		}
	}
}

func extractBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(headerAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != authHeaderParts || strings.ToLower(parts[0]) != bearerScheme {
		return ""
	}

	return parts[1]
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}
