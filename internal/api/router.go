package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/urlmin/minify-system/internal/api/handler"
	"github.com/urlmin/minify-system/internal/api/middleware"
	"github.com/urlmin/minify-system/internal/core/auth"
	"github.com/urlmin/minify-system/internal/core/service"
	mongodb "github.com/urlmin/minify-system/internal/infrastructure/db/mongo"
	redisdb "github.com/urlmin/minify-system/internal/infrastructure/db/redis"
)

// Deps carries everything a router needs. Redis may be nil: the URL service
// then runs without the redirect cache and the readiness probe skips it.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	TokenTTL  time.Duration
	BaseURL   string
	Bootstrap *auth.Bootstrap
	Log       zerolog.Logger
}

// NewUserRouter builds the Echo instance of the user-identity service.
func NewUserRouter(d Deps) *echo.Echo {
	e, guard := newRouter(d, "userapi", auth.UserPermissions)

	users := mongodb.NewUserRepository(d.DB)
	codec := auth.NewCodec(d.JWTSecret, d.TokenTTL)
	svc := service.NewUserService(users, codec, d.Bootstrap, d.BaseURL, d.Log)
	h := handler.NewUserHandler(svc)

	e.POST("/users/login", h.Login)
	e.POST("/users", h.Register, guard.Require(auth.ActionAddUser))
	e.POST("/users/search", h.Search, guard.Require(auth.ActionListUsers))
	e.GET("/users/:id", h.Get, guard.Require(auth.ActionViewUser, middleware.AllowSelf("id")))
	e.PATCH("/users/:id", h.Update, guard.Require(auth.ActionUpdateUser, middleware.AllowSelf("id")))
	e.PATCH("/users/:id/role", h.UpdateRole, guard.Require(auth.ActionUpdateRole))
	e.DELETE("/users/:id", h.Delete, guard.Require(auth.ActionDeleteUser))

	return e
}

// NewLinkRouter builds the Echo instance of the URL-shortening service.
func NewLinkRouter(d Deps) *echo.Echo {
	e, guard := newRouter(d, "urlapi", auth.URLPermissions)

	links := mongodb.NewLinkRepository(d.DB)
	var cache service.LinkCache
	if d.Redis != nil {
		cache = redisdb.NewLinkCache(d.Redis, d.Log)
	}
	svc := service.NewLinkService(links, cache, d.BaseURL, d.Log)
	h := handler.NewLinkHandler(svc, d.BaseURL)

	e.POST("/url/minify", h.Minify, guard.Require(auth.ActionMinifyURL))
	e.GET("/r/:token", h.Redirect) // unguarded, anyone may follow a short link
	e.GET("/url/stats", h.AllStats, guard.Require(auth.ActionAllStats))
	e.POST("/url/stats/search", h.SearchStats, guard.Require(auth.ActionAllStats))
	e.POST("/url/stats", h.StatsByURL, guard.Require(auth.ActionStatsByURL))
	e.GET("/url/stats/user/:userId", h.StatsByUser,
		guard.Require(auth.ActionStatsByUser, middleware.DenyNormalOnParam("userId")))

	return e
}

// newRouter assembles the shared plumbing: global middleware, validator,
// error handler, authorization gate, health probes, and /metrics.
func newRouter(d Deps, subsystem string, table auth.Table) (*echo.Echo, *middleware.Guard) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware(subsystem))

	users := mongodb.NewUserRepository(d.DB)
	codec := auth.NewCodec(d.JWTSecret, d.TokenTTL)
	resolver := auth.NewResolver(codec, users, d.Bootstrap)
	guard := middleware.NewGuard(resolver, table, d.Log)

	health := handler.NewHealthHandler()
	ready := handler.NewReadinessHandler(d.DB, d.Redis)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", ready.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, guard
}
