package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/urlmin/minify-system/internal/api/middleware"
	"github.com/urlmin/minify-system/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the authorization gate.
// Its absence means a guarded handler was wired without the gate — a
// programming error, not a client failure — but the request is still
// rejected rather than served unauthenticated.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := c.Get(middleware.PrincipalKey).(domain.Principal)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusForbidden, "missing authentication claims")
	}
	return p, nil
}
