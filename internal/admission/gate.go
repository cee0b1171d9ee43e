package admission

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"asset-service/internal/auth"

	"github.com/labstack/echo/v4"
)

// DenialAuditor records denied requests. Implemented by the audit logger;
// nil disables recording.
type DenialAuditor interface {
	DeniedRequest(c echo.Context, reason, detail string)
}

// Gate is the single admission entry point for a request: policy resolution
// first, then - for in-scope routes carrying a body - ruleset validation.
// The gate only inspects; it never mutates the payload or resource state.
type Gate struct {
	resolver *Resolver
	engine   *Engine
	auditor  DenialAuditor
}

func NewGate(store *RuleStore, assignments AssignmentLookup, auditor DenialAuditor) *Gate {
	return &Gate{
		resolver: NewResolver(assignments),
		engine:   NewEngine(store),
		auditor:  auditor,
	}
}

// RequireAdmin gates a route on the AdminOnly policy.
func (g *Gate) RequireAdmin() echo.MiddlewareFunc {
	return g.require(func(echo.Context) (Policy, error) {
		return AdminOnly(), nil
	})
}

// RequireAccountOwner gates a route on SelfOrAdmin for the :id account.
func (g *Gate) RequireAccountOwner() echo.MiddlewareFunc {
	return g.require(func(c echo.Context) (Policy, error) {
		id, err := pathID(c)
		if err != nil {
			return Policy{}, err
		}
		return SelfOrAdmin(id), nil
	})
}

// RequireEmployeeOwner gates a route on OwnedEmployeeOrAdmin for the :id
// employee.
func (g *Gate) RequireEmployeeOwner() echo.MiddlewareFunc {
	return g.require(func(c echo.Context) (Policy, error) {
		id, err := pathID(c)
		if err != nil {
			return Policy{}, err
		}
		return OwnedEmployeeOrAdmin(id), nil
	})
}

// RequireDeviceOwner gates a route on OwnedDeviceOrAdmin for the :id device.
func (g *Gate) RequireDeviceOwner() echo.MiddlewareFunc {
	return g.require(func(c echo.Context) (Policy, error) {
		id, err := pathID(c)
		if err != nil {
			return Policy{}, err
		}
		return OwnedDeviceOrAdmin(id), nil
	})
}

func (g *Gate) require(policyFor func(echo.Context) (Policy, error)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			policy, err := policyFor(c)
			if err != nil {
				return respondError(c, http.StatusBadRequest, msgInvalidResourceID)
			}

			verdict := g.Admit(c, policy)
			if !verdict.Allowed {
				if g.auditor != nil {
					g.auditor.DeniedRequest(c, string(verdict.Reason), verdict.Detail)
				}
				return respondError(c, verdict.StatusCode(), verdict.Detail)
			}

			return next(c)
		}
	}
}

// Admit produces the single verdict for one request: access first, then body
// validation when the route is in scope. The first denial is terminal.
func (g *Gate) Admit(c echo.Context, policy Policy) Verdict {
	principal, _ := auth.GetPrincipal(c)

	if verdict := g.resolver.Resolve(c.Request().Context(), principal, policy); !verdict.Allowed {
		return verdict
	}

	if !g.inScope(c.Request().Method, c.Request().URL.Path) {
		return Admitted()
	}

	doc, verdict := g.peekBody(c)
	if verdict != nil {
		return *verdict
	}

	return g.engine.Evaluate(doc)
}

// inScope limits body validation to create/update operations on the device
// route family.
func (g *Gate) inScope(method, path string) bool {
	if method != http.MethodPost && method != http.MethodPut {
		return false
	}
	return strings.HasPrefix(path, gatedPathPrefix)
}

// peekBody reads the request body fully and replaces it with a replayable
// buffer so the downstream handler still sees the original, unmodified body.
func (g *Gate) peekBody(c echo.Context) (map[string]any, *Verdict) {
	req := c.Request()

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, deny(ReasonMalformedBody, msgUnreadableBody)
	}
	req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(body))

	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}, nil
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, deny(ReasonMalformedBody, msgMalformedBody)
	}

	return doc, nil
}

func pathID(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param(paramID))
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}
