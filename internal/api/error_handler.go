package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/urlmin/minify-system/internal/core/auth"
	"github.com/urlmin/minify-system/internal/core/domain"
)

// messageResponse is the canonical error envelope for all API errors:
// exactly one JSON body {"message": ...}, finalized exactly once.
type messageResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to deterministic HTTP status codes.
//   - Collapses authentication and authorization failures into 403 without
//     revealing which occurred.
//   - Logs unexpected errors internally and returns a generic 500 body so
//     internal details never reach the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			// Headers already sent; writing a second body would corrupt the
			// response. Escalate in the log instead.
			log.Error().Err(err).Str("path", c.Path()).Msg("error after response committed")
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, messageResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, router 404s, method mismatches).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// An authenticated principal lacking permission keeps its detailed
	// "'email' is not allowed operation 'action'" message.
	var fe *auth.ForbiddenError
	if errors.As(err, &fe) {
		return http.StatusForbidden, fe.Error()
	}

	switch {
	case errors.Is(err, domain.ErrAuthentication):
		return http.StatusForbidden, "not authenticated"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrLinkNotFound):
		return http.StatusNotFound, "no such shortened url exists"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
