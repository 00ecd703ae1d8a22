package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authsvc "nippo/pkg/auth/service"
	"nippo/pkg/middleware"
)

type groupRoutes interface{ Register(g *echo.Group) }

type splitRoutes interface{ Register(g, admin *echo.Group) }

func New(
	e *echo.Echo,
	tokens authsvc.TokenService,
	authCtrl interface {
		Login(echo.Context) error
		WhoAmI(echo.Context) error
	},
	reportCtrl groupRoutes,
	feedbackCtrl groupRoutes,
	planCtrl groupRoutes,
	notifCtrl groupRoutes,
	userCtrl splitRoutes,
	storeCtrl splitRoutes,
	exportCtrl interface{ Register(admin *echo.Group) },
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(middleware.RequestLog())

	e.GET("/health", healthCtrl.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.POST("/login", authCtrl.Login)

	authed := api.Group("", middleware.Auth(tokens))
	admin := authed.Group("", middleware.RequireAdmin())

	authed.GET("/whoami", authCtrl.WhoAmI)
	reportCtrl.Register(authed)
	feedbackCtrl.Register(authed)
	planCtrl.Register(authed)
	notifCtrl.Register(authed)
	userCtrl.Register(authed, admin)
	storeCtrl.Register(authed, admin)
	exportCtrl.Register(admin)
	return e
}
