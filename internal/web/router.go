// Package web assembles the echo application: routes, guards, rendering,
// and observability endpoints.
package web

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/conectapg/portal/internal/core/ports"
	"github.com/conectapg/portal/internal/gateway"
	"github.com/conectapg/portal/internal/infrastructure/config"
	"github.com/conectapg/portal/internal/web/handler"
	"github.com/conectapg/portal/internal/web/middleware"
	"github.com/conectapg/portal/internal/web/render"
)

// Deps bundles everything the router needs.
type Deps struct {
	Config    *config.Config
	Sessions  ports.SessionStore
	Incidents ports.IncidentService
	Users     ports.UserService
	Redis     *redis.Client
	Gateway   *gateway.Client
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = render.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("conectapg"))

	// --- Probes and metrics (no session handling) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Redis, d.Gateway)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Pages ---
	authHandler := handler.NewAuthHandler(d.Users, d.Sessions)
	incidentHandler := handler.NewIncidentHandler(d.Incidents)
	profileHandler := handler.NewProfileHandler(d.Users, d.Sessions)
	dashboardHandler := handler.NewDashboardHandler(d.Incidents)

	cookie := middleware.CookieOptions{
		Name:   d.Config.Session.CookieName,
		TTL:    time.Duration(d.Config.Session.TTLDays) * 24 * time.Hour,
		Secure: d.Config.Session.CookieSecure,
	}
	pages := e.Group("", middleware.LoadSession(d.Sessions, cookie, d.Log))

	pages.GET("/login", authHandler.LoginPage)
	pages.POST("/login", authHandler.Login)
	pages.GET("/registro", authHandler.RegisterPage)
	pages.POST("/registro", authHandler.Register)
	pages.GET("/logout", authHandler.Logout)

	authed := pages.Group("", middleware.RequireAuth)
	authed.GET("/", incidentHandler.List)
	authed.GET("/ocorrencias", incidentHandler.List)
	authed.GET("/ocorrencias/nova", incidentHandler.NewPage)
	authed.POST("/ocorrencias/nova", incidentHandler.Create)
	authed.GET("/ocorrencias/:id", incidentHandler.Detail)
	authed.POST("/ocorrencias/:id/status", incidentHandler.UpdateStatus, middleware.RequireStaff)
	authed.GET("/perfil", profileHandler.ProfilePage)
	authed.POST("/perfil", profileHandler.Update)
	authed.GET("/painel", dashboardHandler.Painel, middleware.RequireStaff)

	// Catch-all: anything unrouted goes home, matching the SPA behavior.
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/")
	})

	return e
}
