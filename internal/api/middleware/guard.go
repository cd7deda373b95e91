// Package middleware holds the per-route authorization gate shared by both
// services.
package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/urlmin/minify-system/internal/api/metrics"
	"github.com/urlmin/minify-system/internal/core/auth"
	"github.com/urlmin/minify-system/internal/core/domain"
)

// PrincipalKey is the echo context key under which the gate stores the
// resolved principal for the downstream handler.
const PrincipalKey = "principal"

// Guard wraps protected routes: resolve principal → check the permission
// table (with per-resource overrides) → invoke the handler or reject.
type Guard struct {
	resolver *auth.Resolver
	table    auth.Table
	log      zerolog.Logger
}

// NewGuard builds a Guard over one service's permission table.
func NewGuard(resolver *auth.Resolver, table auth.Table, log zerolog.Logger) *Guard {
	return &Guard{resolver: resolver, table: table, log: log}
}

// Option tweaks how a single route is guarded.
type Option func(*routeRules)

type routeRules struct {
	selfParam       string
	restrictedParam string
}

// AllowSelf grants access when the path parameter named param equals the
// principal's own id, regardless of the permission table. Use only on
// routes whose action a principal may always perform on their own resource.
func AllowSelf(param string) Option {
	return func(r *routeRules) { r.selfParam = param }
}

// DenyNormalOnParam denies normal-role principals whenever the path
// parameter named param is present — even when it names their own id. It is
// applied after every grant, so it also overrides AllowSelf.
func DenyNormalOnParam(param string) Option {
	return func(r *routeRules) { r.restrictedParam = param }
}

// Require returns middleware enforcing action for one route.
//
// A failed principal resolution short-circuits before the handler runs and
// surfaces as 403 through the central error handler, indistinguishable from
// an authorization denial.
func (g *Guard) Require(action auth.Action, opts ...Option) echo.MiddlewareFunc {
	var rules routeRules
	for _, opt := range opts {
		opt(&rules)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, err := g.resolver.Resolve(c.Request().Context(), c.Request().Header.Get("Authorization"))
			if err != nil {
				metrics.AuthDenialsTotal.WithLabelValues(string(action)).Inc()
				return err
			}

			allowed := g.table.Allows(principal.Role, action)

			if rules.selfParam != "" {
				if id := c.Param(rules.selfParam); id != "" && id == principal.ID {
					allowed = true
				}
			}
			if rules.restrictedParam != "" && principal.Role == domain.RoleNormal {
				if c.Param(rules.restrictedParam) != "" {
					allowed = false
				}
			}

			if !allowed {
				metrics.AuthDenialsTotal.WithLabelValues(string(action)).Inc()
				g.log.Warn().
					Str("email", principal.Email).
					Str("role", string(principal.Role)).
					Str("action", string(action)).
					Msg("operation denied")
				return &auth.ForbiddenError{Email: principal.Email, Action: action}
			}

			c.Set(PrincipalKey, principal)
			return next(c)
		}
	}
}
