// Package webserver hosts the echo HTTP server and the authenticated
// /api route group that the admin handlers register themselves on.
package webserver

import (
	"fmt"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/brightline/catalogd/internal/app"
	"github.com/brightline/catalogd/internal/oplog"
)

type AdminServer struct {
	root *echo.Echo
	api  *echo.Group
	app  *app.Application
}

var server *AdminServer

// Init builds the echo instance and the JWT-protected /api group.
func Init(application *app.Application) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Debug("http request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	}))

	server = &AdminServer{
		root: e,
		app:  application,
	}

	e.POST("/login", server.handleLogin)

	api := e.Group("/api")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(application.Config().Web.JwtSecret),
	}))
	server.api = api
}

// Listen blocks serving HTTP on the configured address.
func Listen() error {
	cfg := GetApp().Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("admin api listening on %s", addr)
	err := server.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// GetApp returns the application bound at Init time.
func GetApp() *app.Application {
	return server.app
}

func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}

// RequestContext builds the audit context for the current request from
// the JWT identity and transport details.
func RequestContext(c echo.Context) oplog.RequestContext {
	return oplog.RequestContext{
		Operator:   OperatorName(c),
		IP:         c.RealIP(),
		UserAgent:  c.Request().UserAgent(),
		RequestURI: c.Request().RequestURI,
		Method:     c.Request().Method,
	}
}
