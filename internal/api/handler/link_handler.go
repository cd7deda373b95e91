package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/urlmin/minify-system/internal/core/domain"
	"github.com/urlmin/minify-system/internal/core/ports"
)

// LinkHandler handles HTTP requests of the URL-shortening service.
type LinkHandler struct {
	service ports.LinkService
	baseURL string
}

// NewLinkHandler builds a LinkHandler. baseURL is the public base under
// which minified URLs are minted; the redirect route uses it to rebuild the
// full minified URL from its path token.
func NewLinkHandler(service ports.LinkService, baseURL string) *LinkHandler {
	return &LinkHandler{service: service, baseURL: baseURL}
}

// Minify handles POST /url/minify.
//
// @Summary      Shorten a URL
// @Tags         links
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      minifyRequest  true  "URL to shorten"
// @Success      200   {object}  urlStatsResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /url/minify [post]
func (h *LinkHandler) Minify(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req minifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	rec, err := h.service.Minify(c.Request().Context(), req.URL, principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStatsResponse(*rec))
}

// Redirect handles GET /r/:token — the public resolution path. No guard:
// anyone holding a minified URL may follow it.
//
// @Summary      Resolve a short link
// @Tags         links
// @Param        token  path  string  true  "Short token"
// @Success      302
// @Failure      404  {object}  messageResponse
// @Router       /r/{token} [get]
func (h *LinkHandler) Redirect(c echo.Context) error {
	minifiedURL := fmt.Sprintf("%s/r/%s", h.baseURL, c.Param("token"))

	target, err := h.service.Redirect(c.Request().Context(), minifiedURL)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, target)
}

// StatsByURL handles POST /url/stats — stats for one of the caller's links.
//
// @Summary      Stats for one URL
// @Tags         links
// @Security     BasicAuth
// @Param        body  body      statsByURLRequest  true  "Canonical URL"
// @Success      200   {object}  urlStatsResponse
// @Failure      404   {object}  messageResponse
// @Router       /url/stats [post]
func (h *LinkHandler) StatsByURL(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req statsByURLRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	rec, err := h.service.StatsByURL(c.Request().Context(), req.URL, principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStatsResponse(*rec))
}

// StatsByUser handles GET /url/stats/user/:userId.
//
// @Summary      Stats for one user's links
// @Tags         links
// @Security     BasicAuth
// @Param        userId  path  string  true  "User id"
// @Success      200  {array}  urlStatsResponse
// @Router       /url/stats/user/{userId} [get]
func (h *LinkHandler) StatsByUser(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	userID := c.Param("userId")
	if userID == "" {
		userID = principal.ID
	}

	recs, err := h.service.StatsByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	resp := make([]urlStatsResponse, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, toStatsResponse(rec))
	}
	return c.JSON(http.StatusOK, resp)
}

// SearchStats handles POST /url/stats/search — records across all owners
// whose canonical URL matches a pattern.
//
// @Summary      Search stats by URL pattern
// @Tags         links
// @Security     BasicAuth
// @Param        body  body      searchStatsRequest  true  "URL pattern"
// @Success      200   {array}   urlStatsResponse
// @Failure      403   {object}  messageResponse
// @Router       /url/stats/search [post]
func (h *LinkHandler) SearchStats(c echo.Context) error {
	var req searchStatsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	recs, err := h.service.StatsByPattern(c.Request().Context(), req.Pattern)
	if err != nil {
		return err
	}

	resp := make([]urlStatsResponse, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, toStatsResponse(rec))
	}
	return c.JSON(http.StatusOK, resp)
}

// AllStats handles GET /url/stats — every record grouped by owning user.
//
// @Summary      All stats grouped by user
// @Tags         links
// @Security     BasicAuth
// @Success      200  {object}  map[string][]urlStatsResponse
// @Failure      403  {object}  messageResponse
// @Router       /url/stats [get]
func (h *LinkHandler) AllStats(c echo.Context) error {
	grouped, err := h.service.AllStatsByUser(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make(map[string][]urlStatsResponse, len(grouped))
	for userID, recs := range grouped {
		views := make([]urlStatsResponse, 0, len(recs))
		for _, rec := range recs {
			views = append(views, toStatsResponse(rec))
		}
		resp[userID] = views
	}
	return c.JSON(http.StatusOK, resp)
}

func toStatsResponse(rec domain.UrlStats) urlStatsResponse {
	return urlStatsResponse{
		URL:           rec.URL,
		UserID:        rec.UserID,
		MinifiedURL:   rec.MinifiedURL,
		MinifyCount:   rec.MinifyCount,
		RedirectCount: rec.RedirectCount,
	}
}
